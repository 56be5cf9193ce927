package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
)

// Deferred is a cancelable single-shot action.
// Scheduling replaces any pending action.
type Deferred struct {
	clock driven.Clock

	mu    sync.Mutex
	timer driven.Timer
	gen   uint64
}

// NewDeferred creates a deferred action on the given clock.
func NewDeferred(clock driven.Clock) *Deferred {
	return &Deferred{clock: clock}
}

// Schedule runs f once after delay unless cancelled first.
func (d *Deferred) Schedule(delay time.Duration, f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(delay, func() {
		d.mu.Lock()
		// A Stop that lost the race with the timer still invalidates it.
		if gen != d.gen || d.timer == nil {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		f()
	})
}

// Cancel stops the pending action. Returns true if one was pending.
func (d *Deferred) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.gen++
	return true
}

// Pending reports whether an action is scheduled and has not fired.
func (d *Deferred) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// lifetime bounds the requests of one state machine.
type lifetime struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func newLifetime() lifetime {
	ctx, cancel := context.WithCancel(context.Background())
	return lifetime{ctx: ctx, cancel: cancel}
}

// bind derives a request context cancelled by either ctx or the lifetime.
func (l lifetime) bind(ctx context.Context) (context.Context, func()) {
	reqCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(l.ctx, cancel)
	return reqCtx, func() {
		stop()
		cancel()
	}
}

func (l lifetime) closed() bool {
	return l.ctx.Err() != nil
}
