package render

import (
	"image"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fptclock/internal/core/countdown"
	"fptclock/internal/core/model"
)

func TestSweepAngle(t *testing.T) {
	assert.Equal(t, 0.0, SweepAngle(0, time.Minute))
	assert.InDelta(t, -math.Pi, SweepAngle(30*time.Second, time.Minute), 1e-9)
	assert.InDelta(t, -2*math.Pi, SweepAngle(time.Minute, time.Minute), 1e-9)
	assert.True(t, math.IsInf(SweepAngle(time.Second, 0), -1))
}

func TestRegimeBoundaries(t *testing.T) {
	duration := 100 * time.Second

	assert.Equal(t, RegimeRemaining, RegimeFor(SweepAngle(0, duration)))
	assert.Equal(t, RegimeRemaining, RegimeFor(SweepAngle(duration, duration)))
	assert.Equal(t, RegimeOvertimeLap, RegimeFor(SweepAngle(duration+time.Millisecond, duration)))
	assert.Equal(t, RegimeOvertimeLap, RegimeFor(SweepAngle(2*duration, duration)))
	assert.Equal(t, RegimeSaturated, RegimeFor(SweepAngle(2*duration+time.Millisecond, duration)))
	assert.Equal(t, RegimeSaturated, RegimeFor(SweepAngle(10*duration, duration)))
}

func TestFormatRemaining(t *testing.T) {
	cases := map[time.Duration]string{
		300 * time.Second:         "05:00",
		299500 * time.Millisecond: "04:59",
		0:                         "00:00",
		-500 * time.Millisecond:   "-00:00",
		-time.Second:              "-00:01",
		-125 * time.Second:        "-02:05",
		75 * time.Minute:          "75:00",
	}
	for remaining, want := range cases {
		assert.Equal(t, want, FormatRemaining(remaining), "remaining %s", remaining)
	}
}

func TestNewFrameRemaining(t *testing.T) {
	snapshot := countdown.Snapshot{
		State:      countdown.StateRunning,
		StageIndex: 0,
		Stage:      model.Stage{Name: "Intro<br/>Welcome", Duration: 300 * time.Second},
		Duration:   300 * time.Second,
		Remaining:  300 * time.Second,
	}
	frame := NewFrame(snapshot)

	assert.Equal(t, "05:00", frame.Text)
	assert.Equal(t, "Time remaining : 05:00", frame.CaptionedText())
	assert.Equal(t, []string{"Intro", "Welcome"}, frame.Title)
	assert.Equal(t, "IntroWelcome", frame.Label)
	assert.Equal(t, RegimeRemaining, frame.Regime)
	assert.Equal(t, StyleNormal, frame.Style)
}

func TestNewFrameOvertime(t *testing.T) {
	snapshot := countdown.Snapshot{
		State:      countdown.StateOvertime,
		StageIndex: 0,
		Stage:      model.Stage{Name: "Intro", Duration: 300 * time.Second},
		Duration:   300 * time.Second,
		Elapsed:    301 * time.Second,
		Remaining:  -time.Second,
		Overtime:   true,
		Paused:     true,
	}
	frame := NewFrame(snapshot)

	assert.Equal(t, "-00:01", frame.Text)
	assert.Equal(t, "Overtime : -00:01", frame.CaptionedText())
	assert.Equal(t, RegimeOvertimeLap, frame.Regime)
	assert.Equal(t, StyleOvertime, frame.Style)
}

func TestNewFrameDoubleOvertimeSaturates(t *testing.T) {
	snapshot := countdown.Snapshot{
		State:      countdown.StateOvertime,
		Stage:      model.Stage{Name: "Intro", Duration: 300 * time.Second},
		Duration:   300 * time.Second,
		Elapsed:    600 * time.Second,
		Remaining:  -300 * time.Second,
		Overtime:   true,
	}
	assert.Equal(t, RegimeOvertimeLap, NewFrame(snapshot).Regime)

	snapshot.DoubleOvertime = true
	frame := NewFrame(snapshot)
	assert.Equal(t, RegimeSaturated, frame.Regime)
	assert.Equal(t, StyleOvertime, frame.Style)
}

func TestNewFramePausedStyle(t *testing.T) {
	frame := NewFrame(countdown.Snapshot{
		State:     countdown.StatePaused,
		Stage:     model.Stage{Name: "Talk"},
		Duration:  time.Minute,
		Remaining: time.Minute,
		Paused:    true,
	})
	assert.Equal(t, StylePaused, frame.Style)
}

func TestNewFrameEnded(t *testing.T) {
	frame := NewFrame(countdown.Snapshot{State: countdown.StateEnded, StageIndex: countdown.Ended, Paused: true})

	assert.True(t, frame.Ended)
	assert.Equal(t, countdown.Ended, frame.StageIndex)
	assert.Equal(t, "--:--", frame.Text)
	assert.Empty(t, PieFor(frame).Sectors)
}

func TestPieForRegimes(t *testing.T) {
	quarter := PieFor(Frame{Angle: -math.Pi / 2, Regime: RegimeRemaining})
	require.Len(t, quarter.Sectors, 1)
	assert.Equal(t, FillRemaining, quarter.Sectors[0].Fill)
	assert.InDelta(t, -math.Pi/2, quarter.Sectors[0].Sweep, 1e-9)
	assert.InDelta(t, 0, quarter.Hand, 1e-9)

	lap := PieFor(Frame{Angle: -2*math.Pi - math.Pi/2, Regime: RegimeOvertimeLap})
	require.Len(t, lap.Sectors, 2)
	assert.Equal(t, FillRemaining, lap.Sectors[0].Fill)
	assert.InDelta(t, -2*math.Pi, lap.Sectors[0].Sweep, 1e-9)
	assert.Equal(t, FillOvertime, lap.Sectors[1].Fill)
	assert.InDelta(t, -math.Pi/2, lap.Sectors[1].Sweep, 1e-9)

	saturated := PieFor(Frame{Angle: -5 * math.Pi, Regime: RegimeSaturated})
	require.Len(t, saturated.Sectors, 1)
	assert.Equal(t, FillOvertime, saturated.Sectors[0].Fill)
}

func TestDrawPaintsSectors(t *testing.T) {
	const size = 200
	// Probe points sit at 45 degrees inside the upper-right and lower-left
	// quadrants, away from the outline and hand.
	upperRight := image.Pt(size/2+30, size/2-30)
	lowerLeft := image.Pt(size/2-30, size/2+30)

	tests := []struct {
		name       string
		frame      Frame
		upperRight string
		lowerLeft  string
	}{
		{"quarter consumed", Frame{Angle: -math.Pi / 2, Regime: RegimeRemaining}, "green", "white"},
		{"overtime lap", Frame{Angle: -2*math.Pi - math.Pi/2, Regime: RegimeOvertimeLap}, "red", "green"},
		{"saturated", Frame{Angle: -5 * math.Pi, Regime: RegimeSaturated}, "red", "red"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, size, size))
			Draw(img, PieFor(tc.frame), DefaultPalette())

			assert.Equal(t, tc.upperRight, classify(img, upperRight))
			assert.Equal(t, tc.lowerLeft, classify(img, lowerLeft))
		})
	}
}

func TestDrawEmptyImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	assert.NotPanics(t, func() {
		Draw(img, PieFor(Frame{}), DefaultPalette())
	})
}

func classify(img *image.RGBA, at image.Point) string {
	c := img.RGBAAt(at.X, at.Y)
	switch {
	case c.R > 200 && c.G > 200 && c.B > 200:
		return "white"
	case c.G > 150 && c.R < 60:
		return "green"
	case c.R > 150 && c.G < 60:
		return "red"
	default:
		return "other"
	}
}
