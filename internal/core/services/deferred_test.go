package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/drivelink-cli/internal/adapters/driven/clock"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
)

func TestDeferred_RunsOnceAfterDelay(t *testing.T) {
	clk := clock.NewManual()
	d := NewDeferred(clk)
	runs := 0

	d.Schedule(time.Second, func() { runs++ })
	assert.True(t, d.Pending())

	clk.Advance(500 * time.Millisecond)
	assert.Equal(t, 0, runs)

	clk.Advance(500 * time.Millisecond)
	assert.Equal(t, 1, runs)
	assert.False(t, d.Pending())

	clk.Advance(time.Minute)
	assert.Equal(t, 1, runs)
}

func TestDeferred_Cancel(t *testing.T) {
	clk := clock.NewManual()
	d := NewDeferred(clk)
	runs := 0

	d.Schedule(time.Second, func() { runs++ })
	assert.True(t, d.Cancel())
	assert.False(t, d.Cancel())

	clk.Advance(time.Minute)
	assert.Equal(t, 0, runs)
}

func TestDeferred_ScheduleReplacesPending(t *testing.T) {
	clk := clock.NewManual()
	d := NewDeferred(clk)
	var got []string

	d.Schedule(time.Second, func() { got = append(got, "first") })
	d.Schedule(2*time.Second, func() { got = append(got, "second") })

	clk.Advance(time.Second)
	assert.Empty(t, got)

	clk.Advance(time.Second)
	assert.Equal(t, []string{"second"}, got)
}

// lateClock hands back timers whose Stop never wins, like a runtime timer
// whose function has already started.
type lateClock struct {
	f func()
}

type lateTimer struct{}

func (lateTimer) Stop() bool { return false }

func (c *lateClock) AfterFunc(_ time.Duration, f func()) driven.Timer {
	c.f = f
	return lateTimer{}
}

func TestDeferred_CancelWinsOverLateFire(t *testing.T) {
	clk := &lateClock{}
	d := NewDeferred(clk)
	runs := 0

	d.Schedule(time.Second, func() { runs++ })
	d.Cancel()
	clk.f()

	assert.Equal(t, 0, runs)
}

func TestLifetime_BindCancelledByLifetime(t *testing.T) {
	life := newLifetime()
	ctx, done := life.bind(context.Background())
	defer done()

	assert.NoError(t, ctx.Err())
	life.cancel()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.True(t, life.closed())
}

func TestLifetime_BindCancelledByCaller(t *testing.T) {
	life := newLifetime()
	parent, cancel := context.WithCancel(context.Background())
	ctx, done := life.bind(parent)
	defer done()

	cancel()
	<-ctx.Done()
	assert.False(t, life.closed())
}
