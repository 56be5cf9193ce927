// Package clock provides driven.Clock implementations.
package clock

import (
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
)

// Ensure implementations satisfy the interface.
var (
	_ driven.Clock = Real{}
	_ driven.Clock = (*Manual)(nil)
)

// Real schedules actions on the runtime timer.
type Real struct{}

// AfterFunc runs f in its own goroutine after d.
func (Real) AfterFunc(d time.Duration, f func()) driven.Timer {
	return time.AfterFunc(d, f)
}

// Manual is a clock that only moves when Advance is called.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	pending []*manualTimer
}

// NewManual creates a manual clock at time zero.
func NewManual() *Manual {
	return &Manual{}
}

type manualTimer struct {
	clock *Manual
	at    time.Duration
	f     func()
	done  bool
}

// AfterFunc schedules f to run once the clock has advanced by d.
func (m *Manual) AfterFunc(d time.Duration, f func()) driven.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &manualTimer{clock: m, at: m.now + d, f: f}
	m.pending = append(m.pending, t)
	return t
}

// Stop prevents the timer from firing.
func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	return true
}

// Advance moves the clock forward and runs every action that became due,
// in deadline order, on the calling goroutine.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var due []*manualTimer
	kept := m.pending[:0]
	for _, t := range m.pending {
		switch {
		case t.done:
		case t.at <= m.now:
			t.done = true
			due = append(due, t)
		default:
			kept = append(kept, t)
		}
	}
	m.pending = kept
	m.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

// Pending returns the number of timers that have not fired or been stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.pending {
		if !t.done {
			n++
		}
	}
	return n
}
