package client

import (
	"context"
	"time"

	"github.com/viant/venu/codec"
	"github.com/viant/venu/connection"
	"github.com/viant/venu/flow"
	"github.com/viant/venu/rpc"
	"github.com/viant/venu/schema"
	"github.com/viant/venu/transport"
	"go.uber.org/zap"
)

// Client talks to the terminal service and presents the flows it asks for.
type Client struct {
	manager *connection.Manager
	calls   *rpc.Correlator
	flows   *flow.Correlator
	codec   codec.Codec
	logger  *zap.Logger

	connectTimeout time.Duration
	requestTimeout time.Duration
	flowTimeout    time.Duration
}

// Connect binds the service eagerly.
func (c *Client) Connect(ctx context.Context) error {
	return c.manager.Connect(ctx)
}

// Disconnect unbinds the service.
func (c *Client) Disconnect() error {
	return c.manager.Disconnect()
}

// State returns the connection state.
func (c *Client) State() connection.State {
	return c.manager.State()
}

// Flows returns the flow correlator, e.g. to mount flow.NewHandler.
func (c *Client) Flows() *flow.Correlator {
	return c.flows
}

// Initialise identifies the terminal to the service. Failures yield the NONE reply.
func (c *Client) Initialise(ctx context.Context, request *schema.InitialiseRequest) *schema.Reply {
	return callWithFallback(ctx, c, schema.KindInitialise, request)
}

// CardPresented reports a presented card and runs the flow the service asks
// for; a result without a discount is returned when no flow runs or it
// yields no data.
func (c *Client) CardPresented(ctx context.Context, request *schema.CardRequest) *schema.CardPresentedResult {
	reply := callWithFallback(ctx, c, schema.KindCardPresented, request)
	target, ok := reply.LaunchTarget()
	if !ok {
		return &schema.CardPresentedResult{}
	}
	payload, err := c.flows.LaunchAndAwait(ctx, target)
	if err != nil {
		c.logger.Debug("card presented flow without result", zap.Error(err))
		return &schema.CardPresentedResult{}
	}
	if payload == nil {
		return &schema.CardPresentedResult{}
	}
	result, err := codec.Decode[schema.CardPresentedResult](c.codec, *payload)
	if err != nil {
		c.logger.Error("failed to parse card presented result", zap.Error(err))
		return &schema.CardPresentedResult{}
	}
	return result
}

// TransactionAccepted reports an accepted transaction and runs the flow the
// service asks for, discarding its result.
func (c *Client) TransactionAccepted(ctx context.Context, request *schema.CardRequest) {
	reply := callWithFallback(ctx, c, schema.KindTransactionAccepted, request)
	target, ok := reply.LaunchTarget()
	if !ok {
		return
	}
	if _, err := c.flows.LaunchAndAwait(ctx, target); err != nil {
		c.logger.Debug("transaction accepted flow without result", zap.Error(err))
	}
}

func callWithFallback[P any](ctx context.Context, c *Client, kind schema.Kind, request *P) *schema.Reply {
	reply, err := call(ctx, c, kind, request)
	if err != nil {
		c.logger.Debug("exception while calling service", zap.Stringer("kind", kind), zap.Int("code", schema.Code(err)), zap.Error(err))
		return schema.NoneReply()
	}
	return reply
}

func call[P any](ctx context.Context, c *Client, kind schema.Kind, request *P) (*schema.Reply, error) {
	if err := c.manager.EnsureConnected(ctx); err != nil {
		return nil, err
	}
	payload, err := codec.Encode(c.codec, request)
	if err != nil {
		return nil, err
	}
	replyPayload, err := c.calls.Send(ctx, c.manager, kind, payload)
	if err != nil {
		return nil, err
	}
	return codec.Decode[schema.Reply](c.codec, replyPayload)
}

// New creates a client binding the service with binder and presenting flows with launcher.
func New(binder transport.Binder, launcher flow.Launcher, options ...Option) *Client {
	ret := &Client{
		codec:          codec.JSON(),
		logger:         zap.NewNop(),
		connectTimeout: connection.DefaultTimeout,
		requestTimeout: rpc.DefaultTimeout,
		flowTimeout:    flow.DefaultTimeout,
	}
	for _, opt := range options {
		opt(ret)
	}
	if launcher == nil {
		launcher = flow.Cancelled()
	}
	ret.calls = rpc.New(rpc.WithTimeout(ret.requestTimeout), rpc.WithLogger(ret.logger))
	ret.flows = flow.New(launcher, flow.WithTimeout(ret.flowTimeout), flow.WithLogger(ret.logger))
	ret.manager = connection.New(binder, ret.calls, connection.WithTimeout(ret.connectTimeout), connection.WithLogger(ret.logger))
	return ret
}
