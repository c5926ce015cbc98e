package connection

import (
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds EnsureConnected.
const DefaultTimeout = 45 * time.Second

// Option represents option
type Option func(m *Manager)

// WithTimeout sets how long EnsureConnected waits for the service to become ready.
func WithTimeout(timeout time.Duration) Option {
	return func(m *Manager) {
		m.timeout = timeout
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}
