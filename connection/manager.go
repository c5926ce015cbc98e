// Package connection owns the binding to the remote terminal service: it
// connects lazily or eagerly, waits for readiness, observes disconnection and
// runs the receiver loop for the lifetime of each connection.
package connection

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/viant/venu/schema"
	"github.com/viant/venu/transport"
	"go.uber.org/zap"
)

var errDisconnected = errors.New("disconnected")

// Receiver consumes what the receiver loop observes.
type Receiver interface {
	// Receive is called with every reply message.
	Receive(msg *transport.Message)
	// Abort is called when the connection drops or is closed.
	Abort(err error)
}

// attempt tracks one bind; done is closed when it becomes ready or fails.
type attempt struct {
	done chan struct{}
	err  error
}

// Manager manages the connection lifecycle.
type Manager struct {
	binder   transport.Binder
	receiver Receiver
	timeout  time.Duration
	logger   *zap.Logger

	connectMux sync.Mutex // guards the Disconnected -> Connecting transition
	mux        sync.Mutex
	state      State
	attempt    *attempt
	remote     transport.Remote
	mailbox    *transport.Mailbox
}

// State returns a snapshot of the connection state.
func (m *Manager) State() State {
	m.mux.Lock()
	defer m.mux.Unlock()
	return m.state
}

// Connect starts a bind unless one is already in flight or established.
func (m *Manager) Connect(ctx context.Context) error {
	m.connectMux.Lock()
	defer m.connectMux.Unlock()

	m.mux.Lock()
	if m.state != Disconnected {
		m.mux.Unlock()
		return nil
	}
	a := &attempt{done: make(chan struct{})}
	m.state = Connecting
	m.attempt = a
	m.mux.Unlock()

	m.logger.Debug("binding service")
	if err := m.binder.Bind(ctx, &listener{manager: m, attempt: a}); err != nil {
		m.lost(a, err)
		return fmt.Errorf("%w: failed to bind: %v", schema.ErrConnectionLost, err)
	}
	return nil
}

// EnsureConnected returns once the service is connected, connecting if needed.
// It fails with schema.ErrConnectionTimeout when the service is not ready in time;
// the bind itself is left in flight.
func (m *Manager) EnsureConnected(ctx context.Context) error {
	if m.State() == Connected {
		return nil
	}
	if err := m.Connect(ctx); err != nil {
		return err
	}
	m.mux.Lock()
	state, a := m.state, m.attempt
	m.mux.Unlock()
	if state == Connected {
		return nil
	}
	if a == nil {
		return fmt.Errorf("%w: bind abandoned", schema.ErrConnectionLost)
	}

	timer := time.NewTimer(m.timeout)
	defer timer.Stop()
	select {
	case <-a.done:
		if a.err != nil {
			return fmt.Errorf("%w: %v", schema.ErrConnectionLost, a.err)
		}
		return nil
	case <-timer.C:
		m.logger.Warn("service not ready", zap.Duration("timeout", m.timeout))
		return fmt.Errorf("%w: not ready after %s", schema.ErrConnectionTimeout, m.timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Send transmits msg to the service with this connection's reply address attached.
func (m *Manager) Send(msg *transport.Message) error {
	m.mux.Lock()
	remote, mailbox := m.remote, m.mailbox
	m.mux.Unlock()
	if remote == nil || mailbox == nil {
		return schema.ErrNotConnected
	}
	msg.ReplyTo = mailbox.Address()
	if err := remote.Send(msg); err != nil {
		return err
	}
	m.logger.Debug("sent message", zap.Stringer("kind", msg.Kind), zap.Uint64("id", msg.ID))
	return nil
}

// Disconnect unbinds the service and stops the receiver loop; it is safe to
// call when never connected.
func (m *Manager) Disconnect() error {
	m.mux.Lock()
	prev, a, mailbox := m.state, m.attempt, m.mailbox
	m.state = Disconnected
	m.attempt = nil
	m.remote = nil
	m.mailbox = nil
	if prev == Connecting && a != nil {
		a.err = errDisconnected
		close(a.done)
	}
	m.mux.Unlock()

	err := m.binder.Unbind()
	if mailbox != nil {
		_ = mailbox.Post(&transport.Message{Kind: schema.KindQuit})
	}
	if prev != Disconnected {
		m.logger.Debug("service unbound")
		m.receiver.Abort(fmt.Errorf("%w: %v", schema.ErrConnectionLost, errDisconnected))
	}
	return err
}

func (m *Manager) ready(a *attempt, remote transport.Remote) {
	m.mux.Lock()
	if m.attempt != a || m.state != Connecting {
		m.mux.Unlock()
		m.logger.Debug("ignored stale ready")
		return
	}
	mailbox := transport.NewMailbox()
	m.state = Connected
	m.remote = remote
	m.mailbox = mailbox
	close(a.done)
	m.mux.Unlock()

	m.logger.Debug("service connected", zap.String("replyTo", mailbox.Address()))
	go m.receive(mailbox)
}

func (m *Manager) lost(a *attempt, err error) {
	m.mux.Lock()
	if m.attempt != a {
		m.mux.Unlock()
		return
	}
	prev, mailbox := m.state, m.mailbox
	m.state = Disconnected
	m.attempt = nil
	m.remote = nil
	m.mailbox = nil
	if prev == Connecting {
		a.err = err
		close(a.done)
	}
	m.mux.Unlock()

	m.logger.Debug("service disconnected", zap.Stringer("previous", prev), zap.Error(err))
	if mailbox != nil {
		_ = mailbox.Post(&transport.Message{Kind: schema.KindQuit})
	}
	m.receiver.Abort(fmt.Errorf("%w: %v", schema.ErrConnectionLost, err))
}

// receive is the receiver loop; it lives until a quit message arrives.
func (m *Manager) receive(mailbox *transport.Mailbox) {
	defer mailbox.Close()
	for {
		select {
		case msg := <-mailbox.C():
			switch msg.Kind {
			case schema.KindQuit:
				return
			case schema.KindReply:
				m.logger.Debug("message received", zap.Uint64("id", msg.ID), zap.String("payload", msg.Payload))
				m.receiver.Receive(msg)
			default:
				m.logger.Warn("unexpected message", zap.Stringer("kind", msg.Kind))
			}
		case <-mailbox.Done():
			return
		}
	}
}

// listener binds transport callbacks to the attempt they belong to.
type listener struct {
	manager *Manager
	attempt *attempt
}

func (l *listener) OnReady(remote transport.Remote) { l.manager.ready(l.attempt, remote) }
func (l *listener) OnLost(err error)                 { l.manager.lost(l.attempt, err) }

// New creates a connection manager; replies are handed to receiver.
func New(binder transport.Binder, receiver Receiver, options ...Option) *Manager {
	ret := &Manager{
		binder:   binder,
		receiver: receiver,
		timeout:  DefaultTimeout,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
