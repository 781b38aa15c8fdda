package display

import (
	"context"
	"image/color"

	"github.com/rook-computer/promptcanvas/internal/state"
)

// Display shows the controller's state somewhere outside the process.
type Display interface {
	Start(ctx context.Context) error
	Stop() error
	RunLoop(ctx context.Context, store *state.Store)
}

type NoopDisplay struct{}

func (NoopDisplay) Start(ctx context.Context) error                 { return nil }
func (NoopDisplay) Stop() error                                     { return nil }
func (NoopDisplay) RunLoop(ctx context.Context, store *state.Store) {}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Screen colors and logical canvas; the canvas is scaled to the device.
var (
	Foreground = color.RGBA{R: 0xEE, G: 0xEE, B: 0xF5, A: 0xFF}
	Background = color.RGBA{R: 0x1E, G: 0x1E, B: 0x2E, A: 0xFF}
	Alert      = color.RGBA{R: 0xFF, G: 0x6B, B: 0x6B, A: 0xFF}

	CanvasWidth  = 640
	CanvasHeight = 480

	paddingPx    = 24
	statusHeight = 72
)

const (
	idleMessage    = "describe an image and press enter"
	loadingMessage = "generating..."
)
