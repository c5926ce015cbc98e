package client

import (
	"time"

	"github.com/viant/venu/codec"
	"go.uber.org/zap"
)

// Option represents option
type Option func(c *Client)

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithCodec sets the payload codec; JSON by default.
func WithCodec(payloadCodec codec.Codec) Option {
	return func(c *Client) {
		c.codec = payloadCodec
	}
}

// WithTimeout sets connect, request and flow timeouts at once.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.connectTimeout = timeout
		c.requestTimeout = timeout
		c.flowTimeout = timeout
	}
}

// WithConnectTimeout sets how long to wait for the service to become ready.
func WithConnectTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.connectTimeout = timeout
	}
}

// WithRequestTimeout sets how long to wait for a reply.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.requestTimeout = timeout
	}
}

// WithFlowTimeout sets how long to wait for a flow result.
func WithFlowTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.flowTimeout = timeout
	}
}
