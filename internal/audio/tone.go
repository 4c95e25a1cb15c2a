package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ToneSpec describes the synthesized fallback warning: a few short sine pips.
type ToneSpec struct {
	Frequency float64
	Pip       time.Duration
	Gap       time.Duration
	Count     int
	Volume    float64
}

// DefaultTone returns three 880Hz pips.
func DefaultTone() ToneSpec {
	return ToneSpec{
		Frequency: 880,
		Pip:       180 * time.Millisecond,
		Gap:       120 * time.Millisecond,
		Count:     3,
		Volume:    0.6,
	}
}

// sine streams a fixed number of samples of a sine wave with a short linear
// fade at both ends to avoid clicks.
type sine struct {
	freq     float64
	volume   float64
	rate     beep.SampleRate
	total    int
	fade     int
	position int
}

func newSine(freq, volume float64, duration time.Duration, rate beep.SampleRate) *sine {
	total := rate.N(duration)
	fade := rate.N(5 * time.Millisecond)
	if fade*2 > total {
		fade = total / 2
	}
	return &sine{freq: freq, volume: volume, rate: rate, total: total, fade: fade}
}

func (s *sine) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}
		gain := s.volume
		if s.fade > 0 {
			if s.position < s.fade {
				gain *= float64(s.position) / float64(s.fade)
			} else if tail := s.total - s.position; tail < s.fade {
				gain *= float64(tail) / float64(s.fade)
			}
		}
		value := gain * math.Sin(2*math.Pi*s.freq*float64(s.position)/float64(s.rate))
		samples[i][0] = value
		samples[i][1] = value
		s.position++
	}
	return len(samples), true
}

func (s *sine) Err() error { return nil }

// Synthesize builds the tone as a finite streamer at rate.
func Synthesize(spec ToneSpec, rate beep.SampleRate) beep.Streamer {
	if spec.Count <= 0 {
		spec.Count = 1
	}
	parts := make([]beep.Streamer, 0, spec.Count*2)
	for i := 0; i < spec.Count; i++ {
		parts = append(parts, newSine(spec.Frequency, spec.Volume, spec.Pip, rate))
		if i < spec.Count-1 && spec.Gap > 0 {
			parts = append(parts, beep.Silence(rate.N(spec.Gap)))
		}
	}
	return beep.Seq(parts...)
}
