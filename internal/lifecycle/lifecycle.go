// Package lifecycle coordinates startup and shutdown across server subsystems.
// Subsystems register startup work that must finish before the server reports
// ready, and shutdown work that drains when the coordinator's context is
// cancelled.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ReadinessChecker reports whether startup has completed. The readiness
// endpoint depends on this interface rather than the full Coordinator.
type ReadinessChecker interface {
	Ready() bool
}

// Coordinator tracks startup and shutdown goroutines and owns the root
// context for background work.
type Coordinator struct {
	ctx      context.Context
	cancel   context.CancelFunc
	startup  sync.WaitGroup
	shutdown sync.WaitGroup
	ready    atomic.Bool
}

// New creates a Coordinator with a live context and no registered work.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{ctx: ctx, cancel: cancel}
}

// Context returns the coordinator's root context. Shutdown cancels it.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// Ready reports whether all startup work has completed.
func (c *Coordinator) Ready() bool {
	return c.ready.Load()
}

// OnStartup runs fn in a tracked goroutine. WaitForStartup blocks until
// every registered startup function returns.
func (c *Coordinator) OnStartup(fn func()) {
	c.startup.Add(1)
	go func() {
		defer c.startup.Done()
		fn()
	}()
}

// OnShutdown runs fn in a tracked goroutine. Shutdown functions should block
// on Context().Done() before draining so they run for the life of the server.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdown.Add(1)
	go func() {
		defer c.shutdown.Done()
		fn()
	}()
}

// WaitForStartup blocks until all startup work completes, then marks the
// coordinator ready.
func (c *Coordinator) WaitForStartup() {
	c.startup.Wait()
	c.ready.Store(true)
}

// Shutdown cancels the coordinator's context and waits up to timeout for all
// shutdown work to drain.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.ready.Store(false)
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.shutdown.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timed out after %s", timeout)
	}
}
