package render

import (
	"image"
	"image/color"
)

// Surface size and the fixed palette used by the drawing rules.
var (
	CanvasWidth  = 240
	CanvasHeight = 240

	Blank = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF} // #ffffff

	NightSky = color.RGBA{R: 0x1A, G: 0x23, B: 0x7E, A: 0xFF} // #1a237e

	SunsetTop    = color.RGBA{R: 0xFF, G: 0x6B, B: 0x6B, A: 0xFF} // #ff6b6b
	SunsetBottom = color.RGBA{R: 0x4E, G: 0xCD, B: 0xC4, A: 0xFF} // #4ecdc4

	DayStart = color.RGBA{R: 0x74, G: 0xB9, B: 0xFF, A: 0xFF} // #74b9ff
	DayEnd   = color.RGBA{R: 0xA2, G: 0x9B, B: 0xFE, A: 0xFF} // #a29bfe

	Rock   = color.RGBA{R: 0x2D, G: 0x34, B: 0x36, A: 0xFF} // #2d3436
	Sun    = color.RGBA{R: 0xFD, G: 0xCB, B: 0x6E, A: 0xFF} // #fdcb6e
	Canopy = color.RGBA{R: 0x00, G: 0xB8, B: 0x94, A: 0xFF} // #00b894

	// Label is white at 10% opacity.
	Label = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x1A}

	LabelSize   = 12
	LabelOrigin = image.Point{X: 10, Y: 20}
	LabelPrefix = "Prompt: "
)
