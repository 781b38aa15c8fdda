package render

import (
	"image"
	"image/color"
)

// Renderer turns a prompt into a freshly allocated surface.
type Renderer interface {
	Render(prompt string) *image.RGBA
}

// Drawer is the drawing context the rules paint through. Coordinates are in
// surface pixels with the origin at the top-left corner.
type Drawer interface {
	Size() (width int, height int)

	Fill(c color.Color)
	FillLinearGradient(from, to Point, start, end color.Color)
	FillRect(rect image.Rectangle, c color.Color)
	FillPolygon(points []Point, c color.Color)
	FillCircle(center Point, radius float64, c color.Color)

	// DrawText draws text with its baseline starting at (x, y).
	DrawText(text string, x, y int, style TextStyle)
}

type Point struct {
	X, Y float64
}

// TextStyle describes how to render text.
type TextStyle struct {
	Color color.Color
	Size  int // font size in pixels; 0 means renderer default
}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(string, string, ...interface{})  {}
func (noopLogger) Errorf(string, string, ...interface{}) {}
