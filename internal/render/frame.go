package render

import "fptclock/internal/core/countdown"

// Style is the emphasis applied to countdown text.
type Style int

const (
	StyleNormal Style = iota
	StylePaused
	StyleOvertime
)

const (
	captionRemaining = "Time remaining : "
	captionOvertime  = "Overtime : "
	endedTitle       = "End"
	endedText        = "--:--"
)

// Frame is everything a surface needs to draw one tick. It is composed once
// per tick and handed unchanged to every surface.
type Frame struct {
	StageIndex int
	Title      []string
	Label      string
	Text       string
	Caption    string
	Angle      float64
	Regime     Regime
	Paused     bool
	Ended      bool
	Style      Style
	Snapshot   countdown.Snapshot
}

// CaptionedText returns the countdown text prefixed with its caption.
func (frame Frame) CaptionedText() string {
	return frame.Caption + frame.Text
}

// NewFrame derives a frame from a countdown snapshot.
func NewFrame(snapshot countdown.Snapshot) Frame {
	if snapshot.Ended() {
		return Frame{
			StageIndex: countdown.Ended,
			Title:      []string{endedTitle},
			Label:      endedTitle,
			Text:       endedText,
			Paused:     true,
			Ended:      true,
			Style:      StylePaused,
			Snapshot:   snapshot,
		}
	}

	angle := SweepAngle(snapshot.Elapsed, snapshot.Duration)
	regime := RegimeFor(angle)
	if snapshot.DoubleOvertime {
		regime = RegimeSaturated
	}
	frame := Frame{
		StageIndex: snapshot.StageIndex,
		Title:      snapshot.Stage.Lines(),
		Label:      snapshot.Stage.Label(),
		Text:       FormatRemaining(snapshot.Remaining),
		Caption:    captionRemaining,
		Angle:      angle,
		Regime:     regime,
		Paused:     snapshot.Paused,
		Style:      StyleNormal,
		Snapshot:   snapshot,
	}
	switch {
	case regime != RegimeRemaining:
		frame.Caption = captionOvertime
		frame.Style = StyleOvertime
	case snapshot.Paused:
		frame.Style = StylePaused
	}
	return frame
}
