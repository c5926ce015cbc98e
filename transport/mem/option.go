package mem

import "time"

// Option represents option
type Option func(s *Service)

// WithReadyDelay delays OnReady after each bind.
func WithReadyDelay(delay time.Duration) Option {
	return func(s *Service) {
		s.readyDelay = delay
	}
}

// WithoutReady makes binds never complete.
func WithoutReady() Option {
	return func(s *Service) {
		s.noReady = true
	}
}

// WithoutIDEcho makes replies carry no correlation id.
func WithoutIDEcho() Option {
	return func(s *Service) {
		s.echoID = false
	}
}

// WithSendError makes every send fail with err.
func WithSendError(err error) Option {
	return func(s *Service) {
		s.sendErr = err
	}
}
