package display

import (
	"image/color"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fptclock/internal/core/countdown"
	"fptclock/internal/core/model"
	"fptclock/internal/render"
)

func frameFor(name string, elapsed, duration time.Duration, paused bool) render.Frame {
	return render.NewFrame(countdown.Snapshot{
		State:      countdown.StateRunning,
		StageIndex: 0,
		Stage:      model.Stage{Name: name, Duration: duration},
		Duration:   duration,
		Elapsed:    elapsed,
		Remaining:  duration - elapsed,
		Paused:     paused,
	})
}

func TestRenderUpdatesTitleAndCountdown(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	display := New(app, Config{})
	display.Window().Resize(fyne.NewSize(400, 300))

	display.Render(frameFor("Opening<br/>Keynote", time.Minute, 5*time.Minute, false))

	require.Len(t, display.titleLines, 2)
	assert.Equal(t, "Opening", display.titleLines[0].Text)
	assert.Equal(t, "Keynote", display.titleLines[1].Text)
	assert.Equal(t, "Time remaining : 04:00", display.countdown.Text)

	display.Render(frameFor("Talk", 6*time.Minute, 5*time.Minute, false))
	require.Len(t, display.titleLines, 1)
	assert.Equal(t, "Talk", display.titleLines[0].Text)
	assert.Equal(t, "Overtime : -01:00", display.countdown.Text)
}

func TestRenderEndedFrame(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	display := New(app, Config{})
	display.Render(render.NewFrame(countdown.Snapshot{State: countdown.StateEnded, StageIndex: countdown.Ended, Paused: true}))

	require.Len(t, display.titleLines, 1)
	assert.Equal(t, "End", display.titleLines[0].Text)
	assert.Equal(t, "--:--", display.countdown.Text)
}

func TestPieRasterUsesPalette(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	display := New(app, Config{})
	display.Render(frameFor("Talk", 15*time.Minute, 5*time.Minute, false))
	require.Equal(t, render.RegimeSaturated, display.Last().Regime)

	img := display.drawPie(100, 100)
	palette := render.DefaultPalette()
	assert.Equal(t, color.RGBAModel.Convert(palette.Background), img.At(1, 1))
	assert.Equal(t, color.RGBAModel.Convert(palette.Overtime), img.At(40, 60))
}

func TestFontsFollowWindowHeight(t *testing.T) {
	assert.Equal(t, float32(40), scaledSize(600, titleSizeDivisor))
	assert.Equal(t, float32(30), scaledSize(600, countdownDivisor))
	assert.Equal(t, minTextSize, scaledSize(10, countdownDivisor))
}
