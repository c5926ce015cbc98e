package host

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/viant/venu/codec"
	"github.com/viant/venu/flow"
	"github.com/viant/venu/schema"
	"go.uber.org/zap"
)

const (
	discountScheme = "venu://discount"
	receiptScheme  = "venu://receipt"
)

// Simulator answers requests the way the terminal service does in demo mode:
// cards with a positive total are offered a discount flow and accepted
// transactions get a receipt flow.
type Simulator struct {
	codec  codec.Codec
	logger *zap.Logger
}

// Handle implements transport.Handler.
func (s *Simulator) Handle(_ context.Context, kind schema.Kind, payload string) (string, error) {
	s.logger.Debug("simulator request", zap.Stringer("kind", kind), zap.String("payload", payload))
	switch kind {
	case schema.KindInitialise:
		if _, err := codec.Decode[schema.InitialiseRequest](s.codec, payload); err != nil {
			return "", err
		}
		return codec.Encode(s.codec, schema.NoneReply())
	case schema.KindCardPresented:
		request, err := codec.Decode[schema.CardRequest](s.codec, payload)
		if err != nil {
			return "", err
		}
		if request.Amount.Total == "" || strings.Trim(request.Amount.Total, "0.") == "" {
			return codec.Encode(s.codec, schema.NoneReply())
		}
		query := url.Values{}
		query.Set("token", request.Card.Token)
		query.Set("total", request.Amount.Total)
		return s.launch(discountScheme + "?" + query.Encode())
	case schema.KindTransactionAccepted:
		request, err := codec.Decode[schema.CardRequest](s.codec, payload)
		if err != nil {
			return "", err
		}
		intent := receiptScheme
		if request.ExternalID != nil {
			intent += "?" + url.Values{"external_id": {*request.ExternalID}}.Encode()
		}
		return s.launch(intent)
	}
	return "", fmt.Errorf("unsupported request kind: %v", kind)
}

func (s *Simulator) launch(intent string) (string, error) {
	return codec.Encode(s.codec, &schema.Reply{Action: schema.ActionLaunchIntent, Intent: schema.String(intent)})
}

// NewSimulator creates a simulator exchanging JSON payloads.
func NewSimulator(logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{codec: codec.JSON(), logger: logger}
}

// SimulatedLauncher completes discount flows with discount and any other flow without data.
func SimulatedLauncher(discount string) flow.Launcher {
	return flow.LauncherFunc(func(_ context.Context, launch *flow.Launch, done flow.ResultFunc) error {
		if !strings.HasPrefix(launch.Descriptor, discountScheme) || discount == "" {
			go done(nil)
			return nil
		}
		payload, err := codec.Encode(codec.JSON(), &schema.CardPresentedResult{DiscountAmount: schema.String(discount)})
		if err != nil {
			return err
		}
		go done(&payload)
		return nil
	})
}
