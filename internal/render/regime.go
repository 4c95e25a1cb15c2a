package render

import (
	"fmt"
	"math"
	"time"
)

// Regime selects how the pie is painted for a given sweep angle.
type Regime int

const (
	// RegimeRemaining paints the consumed part of the first lap.
	RegimeRemaining Regime = iota
	// RegimeOvertimeLap paints overtime as a second lap over a full disc.
	RegimeOvertimeLap
	// RegimeSaturated paints a full overtime disc.
	RegimeSaturated
)

func (regime Regime) String() string {
	switch regime {
	case RegimeRemaining:
		return "remaining"
	case RegimeOvertimeLap:
		return "overtime_lap"
	case RegimeSaturated:
		return "saturated"
	default:
		return fmt.Sprintf("regime(%d)", int(regime))
	}
}

const fullTurn = 2 * math.Pi

// SweepAngle returns the consumed fraction of the clock as a negative
// (clockwise) angle in radians: -2π·elapsed/duration.
func SweepAngle(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return math.Inf(-1)
	}
	return -fullTurn * float64(elapsed) / float64(duration)
}

// RegimeFor maps a sweep angle to its paint regime.
func RegimeFor(angle float64) Regime {
	magnitude := math.Abs(angle)
	switch {
	case magnitude <= fullTurn:
		return RegimeRemaining
	case magnitude <= 2*fullTurn:
		return RegimeOvertimeLap
	default:
		return RegimeSaturated
	}
}

// FormatRemaining renders a remaining duration as mm:ss, or -mm:ss once
// negative. Fractional seconds are truncated; minutes are not wrapped.
func FormatRemaining(remaining time.Duration) string {
	sign := ""
	if remaining < 0 {
		sign = "-"
		remaining = -remaining
	}
	seconds := int64(remaining / time.Second)
	return fmt.Sprintf("%s%02d:%02d", sign, seconds/60, seconds%60)
}
