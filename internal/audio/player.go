package audio

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/rs/zerolog/log"
)

// ErrUnavailable indicates no audio device could be opened.
var ErrUnavailable = errors.New("audio output unavailable")

const fallbackRate = beep.SampleRate(44100)

// Output is the device a Player writes to.
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(streamer beep.Streamer)
	Lock()
	Unlock()
	Close()
}

type speakerOutput struct{}

// SpeakerOutput returns the system speaker.
func SpeakerOutput() Output {
	return speakerOutput{}
}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (speakerOutput) Play(streamer beep.Streamer) { speaker.Play(streamer) }
func (speakerOutput) Lock()                       { speaker.Lock() }
func (speakerOutput) Unlock()                     { speaker.Unlock() }
func (speakerOutput) Close()                      { speaker.Close() }

// Player plays the warning tone. The first failure to open the device is
// reported; afterwards the player stays silent.
type Player struct {
	mu          sync.Mutex
	output      Output
	format      beep.Format
	buffer      *beep.Buffer
	ctrl        *beep.Ctrl
	initialized bool
	silent      bool
}

// NewPlayer decodes wavData into memory. Invalid or empty data falls back to
// the synthesized tone.
func NewPlayer(wavData []byte, output Output) *Player {
	if output == nil {
		output = SpeakerOutput()
	}
	format, buffer, err := decodeWAV(wavData)
	if err != nil {
		if len(wavData) > 0 {
			log.Warn().Err(err).Msg("warning tone unreadable, using synthesized tone")
		}
		format = beep.Format{SampleRate: fallbackRate, NumChannels: 2, Precision: 2}
		buffer = beep.NewBuffer(format)
		buffer.Append(Synthesize(DefaultTone(), fallbackRate))
	}
	return &Player{output: output, format: format, buffer: buffer}
}

// Format returns the format of the loaded tone.
func (player *Player) Format() beep.Format {
	return player.format
}

// Length returns the tone length.
func (player *Player) Length() time.Duration {
	return player.format.SampleRate.D(player.buffer.Len())
}

// Play starts the tone from the beginning, cutting off any earlier playback.
func (player *Player) Play() error {
	player.mu.Lock()
	defer player.mu.Unlock()

	if err := player.initLocked(); err != nil {
		return err
	}
	if player.silent {
		return nil
	}
	player.stopLocked()
	player.ctrl = &beep.Ctrl{Streamer: player.buffer.Streamer(0, player.buffer.Len())}
	player.output.Play(player.ctrl)
	return nil
}

// Stop cuts off playback.
func (player *Player) Stop() {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.stopLocked()
}

// Playing reports whether a tone was started and not stopped.
func (player *Player) Playing() bool {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.ctrl != nil
}

// Close stops playback and releases the device.
func (player *Player) Close() {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.stopLocked()
	if player.initialized && !player.silent {
		player.output.Close()
	}
	player.initialized = false
}

func (player *Player) initLocked() error {
	if player.initialized {
		return nil
	}
	player.initialized = true
	rate := player.format.SampleRate
	if err := player.output.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		player.silent = true
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (player *Player) stopLocked() {
	if player.ctrl == nil {
		return
	}
	if !player.silent {
		player.output.Lock()
		player.ctrl.Streamer = nil
		player.output.Unlock()
	}
	player.ctrl = nil
}

func decodeWAV(data []byte) (beep.Format, *beep.Buffer, error) {
	if len(data) == 0 {
		return beep.Format{}, nil, errors.New("no wav data")
	}
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return beep.Format{}, nil, fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return beep.Format{}, nil, fmt.Errorf("read wav: %w", err)
	}
	if buffer.Len() == 0 {
		return beep.Format{}, nil, errors.New("wav contains no samples")
	}
	return format, buffer, nil
}
