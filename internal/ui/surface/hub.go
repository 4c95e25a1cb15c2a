package surface

import (
	"context"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"github.com/jonboulle/clockwork"

	"fptclock/internal/core/countdown"
	"fptclock/internal/render"
)

// DefaultInterval is the redraw cadence shared by every surface.
const DefaultInterval = 10 * time.Millisecond

// Surface draws a frame. Surfaces hold no countdown state of their own.
type Surface interface {
	Render(frame render.Frame)
}

// Source produces the snapshot for a tick.
type Source interface {
	Tick() countdown.Snapshot
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(frame render.Frame)

// Render calls fn(frame).
func (fn SurfaceFunc) Render(frame render.Frame) {
	fn(frame)
}

type entry struct {
	name    string
	surface Surface
}

// Hub reads the countdown once per tick and pushes the same frame to every
// attached surface, in attach order.
type Hub struct {
	mu       sync.Mutex
	source   Source
	clock    clockwork.Clock
	interval time.Duration
	dispatch func(func())
	entries  []entry
	last     render.Frame
	hasLast  bool
	reset    chan time.Duration
	// active is the cadence the running ticker uses; zero while not running.
	active time.Duration
}

// NewHub creates a hub ticking every interval on clock. Ticks run through
// fyne.Do so surfaces are only touched from the UI goroutine.
func NewHub(source Source, clock clockwork.Clock, interval time.Duration) *Hub {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Hub{
		source:   source,
		clock:    clock,
		interval: interval,
		dispatch: fyne.Do,
		reset:    make(chan time.Duration, 1),
	}
}

// SetDispatcher replaces the function used to run ticks on the UI goroutine.
func (hub *Hub) SetDispatcher(dispatch func(func())) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	hub.dispatch = dispatch
}

// Attach registers a surface under name, replacing any previous one, and
// renders the latest frame to it right away.
func (hub *Hub) Attach(name string, surface Surface) {
	hub.mu.Lock()
	replaced := false
	for i := range hub.entries {
		if hub.entries[i].name == name {
			hub.entries[i].surface = surface
			replaced = true
		}
	}
	if !replaced {
		hub.entries = append(hub.entries, entry{name: name, surface: surface})
	}
	last, hasLast := hub.last, hub.hasLast
	hub.mu.Unlock()

	if hasLast {
		surface.Render(last)
	}
}

// Detach drops the surface registered under name.
func (hub *Hub) Detach(name string) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	kept := hub.entries[:0]
	for _, existing := range hub.entries {
		if existing.name != name {
			kept = append(kept, existing)
		}
	}
	for i := len(kept); i < len(hub.entries); i++ {
		hub.entries[i] = entry{}
	}
	hub.entries = kept
}

// Attached reports whether a surface is registered under name.
func (hub *Hub) Attached(name string) bool {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	for _, existing := range hub.entries {
		if existing.name == name {
			return true
		}
	}
	return false
}

// Last returns the most recently rendered frame.
func (hub *Hub) Last() (render.Frame, bool) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	return hub.last, hub.hasLast
}

// Refresh ticks the source and renders the resulting frame everywhere.
func (hub *Hub) Refresh() render.Frame {
	frame := render.NewFrame(hub.source.Tick())

	hub.mu.Lock()
	hub.last = frame
	hub.hasLast = true
	surfaces := make([]Surface, 0, len(hub.entries))
	for _, existing := range hub.entries {
		surfaces = append(surfaces, existing.surface)
	}
	hub.mu.Unlock()

	for _, surface := range surfaces {
		surface.Render(frame)
	}
	return frame
}

// SetInterval changes the tick cadence of a running hub.
func (hub *Hub) SetInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}
	hub.mu.Lock()
	hub.interval = interval
	hub.mu.Unlock()
	select {
	case <-hub.reset:
	default:
	}
	hub.reset <- interval
}

// Interval returns the configured tick cadence.
func (hub *Hub) Interval() time.Duration {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	return hub.interval
}

// Run ticks until ctx is cancelled.
func (hub *Hub) Run(ctx context.Context) {
	hub.mu.Lock()
	interval := hub.interval
	hub.active = interval
	hub.mu.Unlock()

	ticker := hub.clock.NewTicker(interval)
	defer func() {
		ticker.Stop()
		hub.setActive(0)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case next := <-hub.reset:
			ticker.Reset(next)
			hub.setActive(next)
		case <-ticker.Chan():
			hub.mu.Lock()
			dispatch := hub.dispatch
			hub.mu.Unlock()
			dispatch(func() {
				hub.Refresh()
			})
		}
	}
}

func (hub *Hub) setActive(interval time.Duration) {
	hub.mu.Lock()
	hub.active = interval
	hub.mu.Unlock()
}

func (hub *Hub) activeInterval() time.Duration {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	return hub.active
}
