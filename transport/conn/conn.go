// Package conn binds to a terminal service over a stream connection (unix
// socket or TCP) using length-prefixed frames encoded with a codec.
package conn

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"github.com/viant/venu/transport"
	"go.uber.org/zap"
)

// Binder dials the service on Bind and reports the session to the listener.
type Binder struct {
	config
	network string
	address string

	mu         sync.Mutex
	generation uint64
	session    *session
}

// Bind dials asynchronously; the listener gets OnReady with the session, or
// OnLost when dialing fails or the session later drops.
func (b *Binder) Bind(ctx context.Context, listener transport.Listener) error {
	b.mu.Lock()
	b.generation++
	generation := b.generation
	b.mu.Unlock()

	go func() {
		c, err := b.dial(ctx, b.network, b.address)
		if err != nil {
			listener.OnLost(fmt.Errorf("conn: failed to dial %v: %w", b.address, err))
			return
		}
		s := newSession(c, b.config)
		b.mu.Lock()
		if generation != b.generation {
			b.mu.Unlock()
			s.close()
			return
		}
		b.session = s
		b.mu.Unlock()

		b.logger.Debug("session established", zap.String("address", b.address))
		listener.OnReady(s)
		err = s.readLoop()
		if s.closed.Load() {
			return
		}
		s.close()
		listener.OnLost(fmt.Errorf("conn: session closed: %w", err))
	}()
	return nil
}

// Unbind closes the current session without notifying the listener.
func (b *Binder) Unbind() error {
	b.mu.Lock()
	b.generation++
	s := b.session
	b.session = nil
	b.mu.Unlock()
	if s == nil {
		return nil
	}
	return s.close()
}

// New creates a stream binder for network ("unix", "tcp") and address.
func New(network, address string, options ...Option) *Binder {
	return &Binder{
		config:  newConfig(options),
		network: network,
		address: address,
	}
}

type session struct {
	config
	conn   net.Conn
	reader *bufio.Reader
	mu     sync.Mutex
	closed atomic.Bool
}

// Send encodes msg into a single frame.
func (s *session) Send(msg *transport.Message) error {
	if s.closed.Load() {
		return net.ErrClosed
	}
	data, err := s.codec.Marshal(msg)
	if err != nil {
		return fmt.Errorf("conn: failed to encode message: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeFrame(s.conn, data)
}

// readLoop routes inbound frames to their mailboxes until the connection fails.
func (s *session) readLoop() error {
	for {
		data, err := readFrame(s.reader)
		if err != nil {
			return err
		}
		msg := &transport.Message{}
		if err := s.codec.Unmarshal(data, msg); err != nil {
			s.logger.Warn("dropped malformed frame", zap.Error(err))
			continue
		}
		if err := transport.Deliver(msg); err != nil {
			s.logger.Debug("dropped message", zap.Stringer("kind", msg.Kind), zap.Error(err))
		}
	}
}

func (s *session) close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.conn.Close()
}

func newSession(c net.Conn, cfg config) *session {
	return &session{config: cfg, conn: c, reader: bufio.NewReader(c)}
}
