package flow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viant/venu/schema"
	"go.uber.org/zap"
)

// DefaultTimeout bounds the wait for a flow result.
const DefaultTimeout = 45 * time.Second

type outcome struct {
	payload *string
	err     error
}

type pending struct {
	id     string
	done   chan outcome
	cancel context.CancelFunc
}

// Correlator owns the single pending flow slot.
type Correlator struct {
	launcher Launcher
	timeout  time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	pending *pending
}

// LaunchAndAwait launches descriptor and waits for its result.
func (c *Correlator) LaunchAndAwait(ctx context.Context, descriptor string) (*string, error) {
	launchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	flow := &pending{id: uuid.NewString(), done: make(chan outcome, 1), cancel: cancel}
	c.mu.Lock()
	if prev := c.pending; prev != nil {
		prev.done <- outcome{err: schema.ErrFlowSuperseded}
		prev.cancel()
		c.logger.Debug("flow superseded", zap.String("id", prev.id))
	}
	c.pending = flow
	c.mu.Unlock()

	launch := &Launch{ID: flow.id, Descriptor: descriptor}
	c.logger.Debug("launching flow", zap.String("id", flow.id), zap.String("descriptor", descriptor))
	if err := c.launcher.Launch(launchCtx, launch, func(payload *string) { c.Deliver(flow.id, payload) }); err != nil {
		if c.release(flow) {
			return nil, fmt.Errorf("failed to launch flow %v: %w", descriptor, err)
		}
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()
	select {
	case out := <-flow.done:
		return out.payload, out.err
	case <-timer.C:
		if c.release(flow) {
			c.logger.Warn("flow timed out", zap.String("id", flow.id), zap.Duration("timeout", c.timeout))
			return nil, fmt.Errorf("%w: %v after %s", schema.ErrFlowTimeout, descriptor, c.timeout)
		}
	case <-ctx.Done():
		if c.release(flow) {
			return nil, ctx.Err()
		}
	}
	out := <-flow.done
	return out.payload, out.err
}

// Deliver resolves the pending flow with payload. An empty id matches the
// current flow; a result for any other launch is discarded. It reports
// whether the result was accepted.
func (c *Correlator) Deliver(id string, payload *string) bool {
	c.mu.Lock()
	flow := c.pending
	if flow == nil || (id != "" && id != flow.id) {
		c.mu.Unlock()
		c.logger.Warn("discarded flow result", zap.String("id", id))
		return false
	}
	c.pending = nil
	flow.done <- outcome{payload: payload}
	c.mu.Unlock()
	return true
}

// Pending returns the id of the pending flow.
func (c *Correlator) Pending() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return "", false
	}
	return c.pending.id, true
}

func (c *Correlator) release(flow *pending) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != flow {
		return false
	}
	c.pending = nil
	return true
}

// New creates a flow correlator presenting flows with launcher.
func New(launcher Launcher, options ...Option) *Correlator {
	ret := &Correlator{launcher: launcher, timeout: DefaultTimeout, logger: zap.NewNop()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
