package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/viant/venu"
	"github.com/viant/venu/client"
	"github.com/viant/venu/flow"
	"github.com/viant/venu/logger"
	"github.com/viant/venu/schema"
	"github.com/viant/venu/transport/conn"
	"go.uber.org/zap"
)

func Run(args []string) error {
	options := &Options{}
	_, err := flags.ParseArgs(options, args)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if options.Serve {
		return serve(ctx, options)
	}
	return run(ctx, options, os.Stdout)
}

func run(ctx context.Context, options *Options, out io.Writer) error {
	clientOptions, err := venu.LoadOptions(ctx, options.ConfigURL)
	if err != nil {
		return err
	}
	options.apply(clientOptions)
	log, err := logger.New(&clientOptions.Log)
	if err != nil {
		return err
	}
	if options.Simulate {
		clientOptions.Transport.Type = venu.TransportMem
		clientOptions.Handler = NewSimulator(log).Handle
		if clientOptions.Flow.Command == "" {
			clientOptions.Launcher = SimulatedLauncher(options.Discount)
		}
	}
	cli, err := venu.NewClient(clientOptions)
	if err != nil {
		return err
	}
	defer cli.Disconnect()

	if address := clientOptions.Flow.CallbackAddress; address != "" {
		server := &http.Server{Addr: address, Handler: flow.NewHandler(cli.Flows())}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("flow callback server failed", zap.Error(err))
			}
		}()
		defer server.Close()
	}
	if err = cli.Connect(ctx); err != nil {
		log.Warn("eager connect failed", zap.Error(err))
	}
	return perform(ctx, cli, options, out)
}

func perform(ctx context.Context, cli *client.Client, options *Options, out io.Writer) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	request := options.Card.request()
	all := options.Action == "all" || options.Action == ""
	if all || options.Action == "initialise" {
		reply := cli.Initialise(ctx, &schema.InitialiseRequest{Metadata: map[string]string{"source": "venu-cli"}})
		if err := encoder.Encode(map[string]any{"initialise": reply}); err != nil {
			return err
		}
	}
	if all || options.Action == "card" {
		result := cli.CardPresented(ctx, request)
		if err := encoder.Encode(map[string]any{"cardPresented": map[string]string{"discount_amount": result.DiscountOrZero()}}); err != nil {
			return err
		}
	}
	if all || options.Action == "accept" {
		cli.TransactionAccepted(ctx, request)
		if err := encoder.Encode(map[string]any{"transactionAccepted": "done"}); err != nil {
			return err
		}
	}
	return nil
}

func serve(ctx context.Context, options *Options) error {
	clientOptions, err := venu.LoadOptions(ctx, options.ConfigURL)
	if err != nil {
		return err
	}
	options.apply(clientOptions)
	log, err := logger.New(&clientOptions.Log)
	if err != nil {
		return err
	}
	network, address := clientOptions.Transport.Network, clientOptions.Transport.Address
	if network == "unix" {
		_ = os.Remove(address)
	}
	listener, err := net.Listen(network, address)
	if err != nil {
		return fmt.Errorf("failed to listen on %v %v: %w", network, address, err)
	}
	log.Info("terminal simulator listening", zap.String("network", network), zap.String("address", address))
	return conn.NewServer(NewSimulator(log).Handle, conn.WithLogger(log)).Serve(ctx, listener)
}

func (o *Options) apply(c *venu.ClientOptions) {
	if o.Network != "" {
		c.Transport.Network = o.Network
	}
	if o.Address != "" {
		c.Transport.Address = o.Address
	}
	if o.Timeout > 0 {
		c.Timeout = o.Timeout
		c.ConnectTimeout, c.RequestTimeout, c.FlowTimeout = 0, 0, 0
	}
	if o.FlowCommand != "" {
		c.Flow.Command = o.FlowCommand
	}
	if o.Detached {
		c.Flow.Detached = true
	}
	if o.Callback != "" {
		c.Flow.CallbackAddress = o.Callback
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
		if len(c.Log.Outputs) == 0 {
			c.Log.Outputs = []string{"stderr"}
		}
	}
}

func (c *Card) request() *schema.CardRequest {
	ret := &schema.CardRequest{
		Card:   schema.Card{Token: c.Token, PresentationMethod: c.Method},
		Amount: schema.Amount{Total: c.Total},
	}
	ret.Card.Bin = optional(c.Bin)
	ret.Card.Last4 = optional(c.Last4)
	ret.Amount.Cashout = optional(c.Cashout)
	ret.Amount.Surcharge = optional(c.Surcharge)
	ret.Amount.Gratuity = optional(c.Gratuity)
	ret.ExternalID = optional(c.ExternalID)
	return ret
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
