package flow

import (
	"time"

	"go.uber.org/zap"
)

// Option represents option
type Option func(c *Correlator)

// WithTimeout sets how long LaunchAndAwait waits for a result.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Correlator) {
		c.timeout = timeout
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Correlator) {
		c.logger = logger
	}
}
