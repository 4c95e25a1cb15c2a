package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// StartBearing is 12 o'clock, in radians counter-clockwise from 3 o'clock.
const StartBearing = math.Pi / 2

const (
	radiusFraction = 0.8 / 2
	arcSegments    = 180
	strokeWidth    = 2
)

// Fill identifies which palette color a sector uses.
type Fill int

const (
	FillRemaining Fill = iota
	FillOvertime
)

// Sector is a filled pie slice. Sweep is negative for clockwise slices.
type Sector struct {
	Start float64
	Sweep float64
	Fill  Fill
}

// Pie is the geometry of one clock face.
type Pie struct {
	Sectors []Sector
	Hand    float64
}

// Palette holds the clock colors.
type Palette struct {
	Remaining  color.Color
	Overtime   color.Color
	Outline    color.Color
	Background color.Color
}

// DefaultPalette returns green for remaining time and red for overtime.
func DefaultPalette() Palette {
	return Palette{
		Remaining:  color.NRGBA{R: 0, G: 200, B: 0, A: 255},
		Overtime:   color.NRGBA{R: 200, G: 0, B: 0, A: 255},
		Outline:    color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		Background: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// PieFor builds the clock geometry for a frame.
func PieFor(frame Frame) Pie {
	pie := Pie{Hand: StartBearing + frame.Angle}
	switch frame.Regime {
	case RegimeRemaining:
		if frame.Angle != 0 {
			pie.Sectors = []Sector{{Start: StartBearing, Sweep: frame.Angle, Fill: FillRemaining}}
		}
	case RegimeOvertimeLap:
		pie.Sectors = []Sector{
			{Start: StartBearing, Sweep: -fullTurn, Fill: FillRemaining},
			{Start: StartBearing, Sweep: frame.Angle + fullTurn, Fill: FillOvertime},
		}
	case RegimeSaturated:
		pie.Sectors = []Sector{{Start: StartBearing, Sweep: -fullTurn, Fill: FillOvertime}}
	}
	return pie
}

// Draw paints pie onto img, centered, with a radius of 40% of the shorter side.
func Draw(img draw.Image, pie Pie, palette Palette) {
	bounds := img.Bounds()
	draw.Draw(img, bounds, image.NewUniform(palette.Background), image.Point{}, draw.Src)

	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return
	}
	cx := float64(bounds.Min.X) + float64(width)/2
	cy := float64(bounds.Min.Y) + float64(height)/2
	radius := math.Min(float64(width), float64(height)) * radiusFraction

	scanner := rasterx.NewScannerGV(width, height, img, bounds)
	filler := rasterx.NewFiller(width, height, scanner)
	for _, sector := range pie.Sectors {
		if sector.Sweep == 0 {
			continue
		}
		filler.SetColor(fillColor(palette, sector.Fill))
		if math.Abs(sector.Sweep) >= fullTurn {
			rasterx.AddCircle(cx, cy, radius, filler)
		} else {
			addSector(filler, cx, cy, radius, sector)
		}
		filler.Draw()
		filler.Clear()
	}

	stroker := rasterx.NewStroker(width, height, scanner)
	stroker.SetStroke(fixed.Int26_6(strokeWidth*64), fixed.Int26_6(4*64), rasterx.ButtCap, rasterx.ButtCap, rasterx.RoundGap, rasterx.Round)
	stroker.SetColor(palette.Outline)
	rasterx.AddCircle(cx, cy, radius, stroker)
	stroker.Start(rasterx.ToFixedP(cx, cy))
	stroker.Line(rasterx.ToFixedP(point(cx, cy, radius, pie.Hand)))
	stroker.Stop(false)
	stroker.Draw()
	stroker.Clear()
}

func addSector(filler *rasterx.Filler, cx, cy, radius float64, sector Sector) {
	steps := int(math.Ceil(arcSegments * math.Abs(sector.Sweep) / fullTurn))
	if steps < 1 {
		steps = 1
	}
	filler.Start(rasterx.ToFixedP(cx, cy))
	for i := 0; i <= steps; i++ {
		angle := sector.Start + sector.Sweep*float64(i)/float64(steps)
		filler.Line(rasterx.ToFixedP(point(cx, cy, radius, angle)))
	}
	filler.Stop(true)
}

// point converts a bearing to image coordinates, where y grows downward.
func point(cx, cy, radius, angle float64) (float64, float64) {
	return cx + radius*math.Cos(angle), cy - radius*math.Sin(angle)
}

func fillColor(palette Palette, fill Fill) color.Color {
	if fill == FillOvertime {
		return palette.Overtime
	}
	return palette.Remaining
}
