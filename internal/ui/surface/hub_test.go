package surface

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fptclock/internal/core/countdown"
	"fptclock/internal/core/model"
	"fptclock/internal/render"
)

type countingSource struct {
	ticks atomic.Int32
}

func (source *countingSource) Tick() countdown.Snapshot {
	source.ticks.Add(1)
	return countdown.Snapshot{
		State:      countdown.StateRunning,
		Stage:      model.Stage{Name: "Intro"},
		Duration:   time.Minute,
		Remaining:  time.Minute,
		StageIndex: 0,
	}
}

type recorder struct {
	frames []render.Frame
}

func (rec *recorder) Render(frame render.Frame) {
	rec.frames = append(rec.frames, frame)
}

func TestRefreshPushesSameFrameToEverySurface(t *testing.T) {
	source := &countingSource{}
	hub := NewHub(source, clockwork.NewFakeClock(), 0)
	main, controls, monitor := &recorder{}, &recorder{}, &recorder{}
	hub.Attach("main", main)
	hub.Attach("controls", controls)
	hub.Attach("monitor", monitor)

	frame := hub.Refresh()

	assert.Equal(t, int32(1), source.ticks.Load())
	for _, rec := range []*recorder{main, controls, monitor} {
		require.Len(t, rec.frames, 1)
		assert.Equal(t, frame, rec.frames[0])
	}
	assert.Equal(t, "01:00", frame.Text)
}

func TestAttachRendersLatestFrame(t *testing.T) {
	hub := NewHub(&countingSource{}, clockwork.NewFakeClock(), 0)
	hub.Refresh()

	late := &recorder{}
	hub.Attach("monitor", late)
	require.Len(t, late.frames, 1)

	last, ok := hub.Last()
	assert.True(t, ok)
	assert.Equal(t, last, late.frames[0])
}

func TestDetachStopsUpdates(t *testing.T) {
	hub := NewHub(&countingSource{}, clockwork.NewFakeClock(), 0)
	monitor := &recorder{}
	hub.Attach("monitor", monitor)
	hub.Attach("main", &recorder{})

	hub.Detach("monitor")
	hub.Refresh()

	assert.Empty(t, monitor.frames)
	assert.False(t, hub.Attached("monitor"))
	assert.True(t, hub.Attached("main"))
}

func TestAttachReplacesByName(t *testing.T) {
	hub := NewHub(&countingSource{}, clockwork.NewFakeClock(), 0)
	first, second := &recorder{}, &recorder{}
	hub.Attach("monitor", first)
	hub.Attach("monitor", second)

	hub.Refresh()
	assert.Empty(t, first.frames)
	assert.Len(t, second.frames, 1)
}

func TestRunTicksOnClock(t *testing.T) {
	clock := clockwork.NewFakeClock()
	source := &countingSource{}
	hub := NewHub(source, clock, 10*time.Millisecond)
	hub.SetDispatcher(nil)

	var rendered atomic.Int32
	hub.Attach("main", SurfaceFunc(func(render.Frame) { rendered.Add(1) }))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	blockCtx, blockCancel := context.WithTimeout(ctx, time.Second)
	defer blockCancel()
	require.NoError(t, clock.BlockUntilContext(blockCtx, 1))

	for i := 0; i < 3; i++ {
		clock.Advance(10 * time.Millisecond)
		want := int32(i + 1)
		require.Eventually(t, func() bool { return rendered.Load() >= want }, time.Second, time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop after cancel")
	}
}

func TestSetIntervalRetimesRunningHub(t *testing.T) {
	clock := clockwork.NewFakeClock()
	hub := NewHub(&countingSource{}, clock, 10*time.Millisecond)
	hub.SetDispatcher(nil)

	var rendered atomic.Int32
	hub.Attach("main", SurfaceFunc(func(render.Frame) { rendered.Add(1) }))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	blockCtx, blockCancel := context.WithTimeout(ctx, time.Second)
	defer blockCancel()
	require.NoError(t, clock.BlockUntilContext(blockCtx, 1))

	clock.Advance(10 * time.Millisecond)
	require.Eventually(t, func() bool { return rendered.Load() == 1 }, time.Second, time.Millisecond)

	hub.SetInterval(100 * time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, hub.Interval())
	require.Eventually(t, func() bool { return hub.activeInterval() == 100*time.Millisecond }, time.Second, time.Millisecond)

	for i := 0; i < 5; i++ {
		clock.Advance(10 * time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), rendered.Load())

	clock.Advance(60 * time.Millisecond)
	require.Eventually(t, func() bool { return rendered.Load() == 2 }, time.Second, time.Millisecond)
}

func TestSetIntervalIgnoresNonPositive(t *testing.T) {
	hub := NewHub(&countingSource{}, clockwork.NewFakeClock(), 20*time.Millisecond)
	hub.SetInterval(0)
	hub.SetInterval(-time.Second)
	assert.Equal(t, 20*time.Millisecond, hub.Interval())
}
