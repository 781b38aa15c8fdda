package render

import (
	"image"
	"image/color"
)

// linearGradient is a two-stop gradient along the segment from→to. Points
// are projected onto the segment at pixel centres and clamped to the stops.
type linearGradient struct {
	from, to   Point
	start, end color.NRGBA
	bounds     image.Rectangle
}

func newLinearGradient(from, to Point, start, end color.Color, bounds image.Rectangle) *linearGradient {
	return &linearGradient{
		from:   from,
		to:     to,
		start:  color.NRGBAModel.Convert(start).(color.NRGBA),
		end:    color.NRGBAModel.Convert(end).(color.NRGBA),
		bounds: bounds,
	}
}

func (g *linearGradient) ColorModel() color.Model { return color.NRGBAModel }

func (g *linearGradient) Bounds() image.Rectangle { return g.bounds }

func (g *linearGradient) At(x, y int) color.Color {
	return g.colorAt(g.offset(float64(x)+0.5, float64(y)+0.5))
}

func (g *linearGradient) offset(px, py float64) float64 {
	dx := g.to.X - g.from.X
	dy := g.to.Y - g.from.Y
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return 0
	}
	t := ((px-g.from.X)*dx + (py-g.from.Y)*dy) / lengthSq
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func (g *linearGradient) colorAt(t float64) color.NRGBA {
	return color.NRGBA{
		R: lerp(g.start.R, g.end.R, t),
		G: lerp(g.start.G, g.end.G, t),
		B: lerp(g.start.B, g.end.B, t),
		A: lerp(g.start.A, g.end.A, t),
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
