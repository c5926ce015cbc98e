// Package rpc pairs one outgoing request with the next inbound reply.
//
// The primary channel is half-duplex: at most one call is outstanding per
// Correlator and a second Send fails with schema.ErrConcurrentCall rather
// than queuing.
package rpc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/viant/venu/schema"
	"github.com/viant/venu/transport"
	"go.uber.org/zap"
)

// DefaultTimeout bounds the wait for a reply.
const DefaultTimeout = 45 * time.Second

// Sender transmits a message over an established connection.
type Sender interface {
	Send(msg *transport.Message) error
}

type outcome struct {
	payload string
	err     error
}

// call is the outstanding request; done receives exactly one outcome.
type call struct {
	id   uint64
	kind schema.Kind
	done chan outcome
}

// Correlator owns the single outstanding call slot.
type Correlator struct {
	timeout time.Duration
	logger  *zap.Logger

	mux     sync.Mutex
	seq     uint64
	pending *call
}

// Send transmits payload tagged with kind and waits for its reply.
func (c *Correlator) Send(ctx context.Context, sender Sender, kind schema.Kind, payload string) (string, error) {
	aCall, err := c.register(kind)
	if err != nil {
		return "", err
	}
	msg := &transport.Message{Kind: kind, ID: aCall.id, Payload: payload}
	if err := sender.Send(msg); err != nil {
		c.release(aCall)
		return "", fmt.Errorf("%w: %v", schema.ErrSendFailure, err)
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()
	select {
	case out := <-aCall.done:
		return out.payload, out.err
	case <-timer.C:
		if c.release(aCall) {
			c.logger.Warn("request timed out", zap.Stringer("kind", kind), zap.Uint64("id", aCall.id), zap.Duration("timeout", c.timeout))
			return "", fmt.Errorf("%w: %s after %s", schema.ErrRequestTimeout, kind, c.timeout)
		}
	case <-ctx.Done():
		if c.release(aCall) {
			return "", ctx.Err()
		}
	}
	// resolved concurrently with the timeout
	out := <-aCall.done
	return out.payload, out.err
}

// Receive resolves the outstanding call with a reply. Replies without an
// outstanding call, or carrying another call's id, are discarded.
func (c *Correlator) Receive(msg *transport.Message) {
	c.mux.Lock()
	aCall := c.pending
	if aCall == nil {
		c.mux.Unlock()
		c.logger.Warn("discarded unsolicited reply", zap.Uint64("id", msg.ID))
		return
	}
	if msg.ID != 0 && msg.ID != aCall.id {
		c.mux.Unlock()
		c.logger.Warn("discarded stale reply", zap.Uint64("id", msg.ID), zap.Uint64("pending", aCall.id))
		return
	}
	c.pending = nil
	aCall.done <- outcome{payload: msg.Payload}
	c.mux.Unlock()
}

// Abort fails the outstanding call, if any, with err.
func (c *Correlator) Abort(err error) {
	c.mux.Lock()
	defer c.mux.Unlock()
	if c.pending == nil {
		return
	}
	c.pending.done <- outcome{err: err}
	c.pending = nil
}

// Pending returns the id of the outstanding call.
func (c *Correlator) Pending() (uint64, bool) {
	c.mux.Lock()
	defer c.mux.Unlock()
	if c.pending == nil {
		return 0, false
	}
	return c.pending.id, true
}

func (c *Correlator) register(kind schema.Kind) (*call, error) {
	c.mux.Lock()
	defer c.mux.Unlock()
	if c.pending != nil {
		return nil, fmt.Errorf("%w: %s in flight", schema.ErrConcurrentCall, c.pending.kind)
	}
	c.seq++
	c.pending = &call{id: c.seq, kind: kind, done: make(chan outcome, 1)}
	return c.pending, nil
}

// release clears the slot if it still holds aCall.
func (c *Correlator) release(aCall *call) bool {
	c.mux.Lock()
	defer c.mux.Unlock()
	if c.pending != aCall {
		return false
	}
	c.pending = nil
	return true
}

// New creates a correlator.
func New(options ...Option) *Correlator {
	ret := &Correlator{timeout: DefaultTimeout, logger: zap.NewNop()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
