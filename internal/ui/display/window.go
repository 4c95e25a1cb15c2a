package display

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"fptclock/internal/render"
	"fptclock/resources"
)

// Title of the main clock window.
const Title = "FPT clock"

const (
	defaultWidth  = float32(800)
	defaultHeight = float32(600)

	logoColumnFraction = float32(0.25)
	titleSizeDivisor   = float32(15)
	countdownDivisor   = float32(20)
	minTextSize        = float32(8)
)

var textColor = color.NRGBA{R: 0, G: 0, B: 0, A: 255}

// Config holds the main window assets.
type Config struct {
	// AssetDir is searched for logo overrides before the embedded ones.
	AssetDir string
	Palette  render.Palette
}

// Window is the audience-facing clock: logos on the left, the stage title,
// the pie and the countdown line on the right.
type Window struct {
	window     fyne.Window
	palette    render.Palette
	background *canvas.Rectangle
	leftLogo   *canvas.Image
	rightLogo  *canvas.Image
	face       *fyne.Container
	title      *fyne.Container
	titleLines []*canvas.Text
	pie        *canvas.Raster
	countdown  *canvas.Text
	geometry   render.Pie
	last       render.Frame
}

// New creates the main window. Closing it quits the application.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow(Title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)
	window.SetMaster()

	palette := config.Palette
	if palette.Remaining == nil {
		palette = render.DefaultPalette()
	}

	background := canvas.NewRectangle(palette.Background)

	leftLogo := canvas.NewImageFromResource(resources.LogoFrom(config.AssetDir, resources.LeftLogo))
	leftLogo.FillMode = canvas.ImageFillContain
	rightLogo := canvas.NewImageFromResource(resources.LogoFrom(config.AssetDir, resources.RightLogo))
	rightLogo.FillMode = canvas.ImageFillContain

	countdown := canvas.NewText("", textColor)
	countdown.Alignment = fyne.TextAlignCenter

	display := &Window{
		window:     window,
		palette:    palette,
		background: background,
		leftLogo:   leftLogo,
		rightLogo:  rightLogo,
		title:      container.NewWithoutLayout(),
		countdown:  countdown,
	}
	display.pie = canvas.NewRaster(display.drawPie)

	display.face = container.New(&faceLayout{display: display}, leftLogo, rightLogo, display.title, display.pie, countdown)
	window.SetContent(container.NewStack(background, display.face))
	window.Resize(fyne.NewSize(defaultWidth, defaultHeight))

	return display
}

// Window exposes the underlying Fyne window.
func (display *Window) Window() fyne.Window {
	return display.window
}

// Show displays the window.
func (display *Window) Show() {
	display.window.Show()
}

// SetOnClosed registers a callback run when the window is closed.
func (display *Window) SetOnClosed(handler func()) {
	display.window.SetOnClosed(handler)
}

// Last returns the most recently rendered frame.
func (display *Window) Last() render.Frame {
	return display.last
}

// Render draws frame. It must run on the UI goroutine.
func (display *Window) Render(frame render.Frame) {
	display.last = frame
	display.geometry = render.PieFor(frame)
	display.setTitle(frame.Title)

	display.countdown.Text = frame.CaptionedText()
	display.countdown.Refresh()
	display.pie.Refresh()
}

func (display *Window) setTitle(lines []string) {
	if len(lines) != len(display.titleLines) {
		display.titleLines = make([]*canvas.Text, len(lines))
		objects := make([]fyne.CanvasObject, len(lines))
		for i := range lines {
			text := canvas.NewText("", textColor)
			text.Alignment = fyne.TextAlignCenter
			text.TextStyle = fyne.TextStyle{Bold: true}
			text.TextSize = display.titleSize()
			display.titleLines[i] = text
			objects[i] = text
		}
		display.title.Objects = objects
		display.face.Refresh()
	}
	for i, line := range lines {
		if display.titleLines[i].Text == line {
			continue
		}
		display.titleLines[i].Text = line
		display.titleLines[i].Refresh()
	}
}

func (display *Window) titleSize() float32 {
	return scaledSize(display.window.Canvas().Size().Height, titleSizeDivisor)
}

func (display *Window) drawPie(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	render.Draw(img, display.geometry, display.palette)
	return img
}

func scaledSize(height, divisor float32) float32 {
	size := height / divisor
	if size < minTextSize {
		return minTextSize
	}
	return size
}

// faceLayout places the logo column and the clock column. Font sizes follow
// the window height.
type faceLayout struct {
	display *Window
}

func (layout *faceLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 5 {
		return
	}
	leftLogo, rightLogo, title, pie, countdown := objects[0], objects[1], objects[2], objects[3], objects[4]

	pad := size.Height * 0.03
	columnWidth := size.Width * logoColumnFraction
	logoHeight := (size.Height - pad*3) / 2
	if logoHeight < 0 {
		logoHeight = 0
	}
	leftLogo.Move(fyne.NewPos(pad, pad))
	leftLogo.Resize(fyne.NewSize(columnWidth-pad*2, logoHeight))
	rightLogo.Move(fyne.NewPos(pad, pad*2+logoHeight))
	rightLogo.Resize(fyne.NewSize(columnWidth-pad*2, logoHeight))

	titleSize := scaledSize(size.Height, titleSizeDivisor)
	x := columnWidth
	width := size.Width - columnWidth - pad
	if width < 0 {
		width = 0
	}

	y := pad
	for _, object := range layout.display.titleLines {
		object.TextSize = titleSize
		lineHeight := object.MinSize().Height
		object.Move(fyne.NewPos(0, y-pad))
		object.Resize(fyne.NewSize(width, lineHeight))
		y += lineHeight
	}
	title.Move(fyne.NewPos(x, pad))
	title.Resize(fyne.NewSize(width, y-pad))

	layout.display.countdown.TextSize = scaledSize(size.Height, countdownDivisor)
	countdownHeight := countdown.MinSize().Height
	countdownY := size.Height - pad - countdownHeight
	countdown.Move(fyne.NewPos(x, countdownY))
	countdown.Resize(fyne.NewSize(width, countdownHeight))

	pieHeight := countdownY - y - pad
	if pieHeight < 0 {
		pieHeight = 0
	}
	pie.Move(fyne.NewPos(x, y))
	pie.Resize(fyne.NewSize(width, pieHeight))
}

func (layout *faceLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(320, 240)
}
