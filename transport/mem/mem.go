// Package mem provides an in-process terminal service used by tests and by
// the sample host in simulation mode.
package mem

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/viant/venu/schema"
	"github.com/viant/venu/transport"
)

// ErrNotBound is returned when sending to a service that is not bound.
var ErrNotBound = errors.New("mem: service not bound")

// ErrDropped is reported to the listener when the service is dropped.
var ErrDropped = errors.New("mem: service dropped")

// Service is an in-process remote implementing both transport.Binder and transport.Remote.
type Service struct {
	handler    transport.Handler
	readyDelay time.Duration
	noReady    bool
	echoID     bool
	sendErr    error

	binds atomic.Int32
	sent  atomic.Int32

	mu       sync.Mutex
	listener transport.Listener
	bound    bool
	ctx      context.Context
	cancel   context.CancelFunc
}

// Bind schedules OnReady on the listener.
func (s *Service) Bind(_ context.Context, listener transport.Listener) error {
	s.binds.Add(1)
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.listener = listener
	ctx := s.ctx
	s.mu.Unlock()
	if s.noReady {
		return nil
	}
	go func() {
		if s.readyDelay > 0 {
			select {
			case <-time.After(s.readyDelay):
			case <-ctx.Done():
				return
			}
		}
		s.mu.Lock()
		if ctx.Err() != nil {
			s.mu.Unlock()
			return
		}
		s.bound = true
		s.mu.Unlock()
		listener.OnReady(s)
	}()
	return nil
}

// Unbind releases the binding without notifying the listener.
func (s *Service) Unbind() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bound = false
	s.listener = nil
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return nil
}

// Send dispatches msg to the handler and routes its reply to msg.ReplyTo.
func (s *Service) Send(msg *transport.Message) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.mu.Lock()
	bound, ctx := s.bound, s.ctx
	s.mu.Unlock()
	if !bound {
		return ErrNotBound
	}
	s.sent.Add(1)
	request := *msg
	go s.serve(ctx, &request)
	return nil
}

func (s *Service) serve(ctx context.Context, request *transport.Message) {
	payload, err := s.handler(ctx, request.Kind, request.Payload)
	if err != nil || ctx.Err() != nil {
		return
	}
	reply := &transport.Message{Kind: schema.KindReply, Payload: payload, To: request.ReplyTo}
	if s.echoID {
		reply.ID = request.ID
	}
	_ = transport.Deliver(reply)
}

// Drop emulates the service dying while bound.
func (s *Service) Drop() {
	s.mu.Lock()
	listener := s.listener
	s.bound = false
	s.listener = nil
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
	if listener != nil {
		listener.OnLost(ErrDropped)
	}
}

// Reply posts an unsolicited reply to a mailbox address.
func (s *Service) Reply(to string, id uint64, payload string) error {
	return transport.Deliver(&transport.Message{Kind: schema.KindReply, ID: id, Payload: payload, To: to})
}

// Binds returns the number of bind attempts observed.
func (s *Service) Binds() int {
	return int(s.binds.Load())
}

// Sent returns the number of requests accepted.
func (s *Service) Sent() int {
	return int(s.sent.Load())
}

// New creates a service answering requests with handler.
func New(handler transport.Handler, options ...Option) *Service {
	ret := &Service{handler: handler, echoID: true}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
