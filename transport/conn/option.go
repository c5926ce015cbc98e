package conn

import (
	"context"
	"net"

	"github.com/viant/venu/codec"
	"go.uber.org/zap"
)

type dialFunc func(ctx context.Context, network, address string) (net.Conn, error)

type config struct {
	codec  codec.Codec
	logger *zap.Logger
	dial   dialFunc
}

func newConfig(options []Option) config {
	dialer := &net.Dialer{}
	ret := config{codec: codec.CBOR(), logger: zap.NewNop(), dial: dialer.DialContext}
	for _, opt := range options {
		opt(&ret)
	}
	return ret
}

// Option represents option
type Option func(c *config)

// WithCodec sets the frame codec; CBOR by default.
func WithCodec(frameCodec codec.Codec) Option {
	return func(c *config) {
		c.codec = frameCodec
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithDialer replaces the network dialer.
func WithDialer(dial func(ctx context.Context, network, address string) (net.Conn, error)) Option {
	return func(c *config) {
		c.dial = dial
	}
}
