// Package lifecycle coordinates startup and shutdown across service subsystems.
// Subsystems register startup functions that must complete before the service
// reports ready, and shutdown functions that run when the coordinator's context
// is cancelled.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ReadinessChecker reports whether startup has completed.
type ReadinessChecker interface {
	Ready() bool
}

// Coordinator tracks registered startup and shutdown functions and owns the
// context that signals shutdown to all subsystems.
type Coordinator struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	startup []func()

	shutdownWg sync.WaitGroup
	ready      atomic.Bool
}

// New creates a Coordinator with an open shutdown context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context returns the context that is cancelled when Shutdown begins.
// Shutdown functions block on this context's Done channel.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// Ready reports whether WaitForStartup has completed.
func (c *Coordinator) Ready() bool {
	return c.ready.Load()
}

// OnStartup registers a function to run during WaitForStartup.
func (c *Coordinator) OnStartup(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startup = append(c.startup, fn)
}

// WaitForStartup runs all registered startup functions in registration order
// and marks the coordinator ready.
func (c *Coordinator) WaitForStartup() {
	c.mu.Lock()
	fns := c.startup
	c.startup = nil
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}

	c.ready.Store(true)
}

// OnShutdown registers a function that participates in graceful shutdown.
// The function runs immediately in its own goroutine and is expected to block
// on Context().Done() before doing its teardown work; Shutdown waits for all
// registered functions to return.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdownWg.Add(1)
	go func() {
		defer c.shutdownWg.Done()
		fn()
	}()
}

// Shutdown cancels the coordinator context and waits up to timeout for all
// shutdown functions to return.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.shutdownWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timed out after %s", timeout)
	}
}
