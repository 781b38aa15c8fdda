package display

import (
	"context"
	"image"
	"image/color"
	"sync/atomic"
	"time"

	fb "github.com/gonutz/framebuffer"
	"github.com/rook-computer/promptcanvas/internal/assets"
	"github.com/rook-computer/promptcanvas/internal/state"
	"github.com/rook-computer/promptcanvas/internal/system"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

const DefaultDevice = "/dev/fb0"

// FBDisplay shows the state on the Linux framebuffer using an offscreen
// logical canvas.
type FBDisplay struct {
	Device string
	// Console switches the active VT to graphics mode while running.
	Console bool
	Logger  Logger

	fbDev       *fb.Device
	canvas      *image.RGBA
	fontFace    font.Face
	running     atomic.Bool
	lastVersion uint64
	drawn       bool
}

func NewFBDisplay(device string) *FBDisplay {
	if device == "" {
		device = DefaultDevice
	}
	return &FBDisplay{Device: device, Logger: noopLogger{}}
}

func (d *FBDisplay) Start(ctx context.Context) error {
	logger := d.logger()
	dev, err := fb.Open(d.Device)
	if err != nil {
		return err
	}
	d.fbDev = dev
	bounds := dev.Bounds()
	logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())

	d.canvas = image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	d.fontFace = loadFace(logger)

	if d.Console {
		_ = system.SetGraphicsModeWithLog(logger)
		_ = system.HideCursorWithLog(logger)
	}

	d.drawn = false
	d.running.Store(true)
	return nil
}

func (d *FBDisplay) Stop() error {
	d.running.Store(false)
	if d.Console {
		_ = system.ShowCursorWithLog(d.logger())
		_ = system.RestoreTextModeWithLog(d.logger())
	}
	if d.fbDev != nil {
		d.fbDev.Close()
		d.fbDev = nil
	}
	return nil
}

// RedrawWithState draws snap unless it is the state already on screen.
func (d *FBDisplay) RedrawWithState(snap state.State) {
	if !d.running.Load() || d.fbDev == nil {
		return
	}
	if d.drawn && snap.Version == d.lastVersion {
		return
	}
	Compose(d.canvas, d.fontFace, snap)
	blitToFB(d.fbDev, d.canvas)
	d.lastVersion = snap.Version
	d.drawn = true
	d.logger().Infof("fb", "redraw done, phase=%s", snap.Phase)
}

// RunLoop polls the store at ~30 FPS until the context is done.
func (d *FBDisplay) RunLoop(ctx context.Context, store *state.Store) {
	ticker := time.NewTicker(time.Second / 30)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.RedrawWithState(store.Snapshot())
		}
	}
}

func (d *FBDisplay) logger() Logger {
	if d.Logger == nil {
		return noopLogger{}
	}
	return d.Logger
}

func loadFace(logger Logger) font.Face {
	fnt, err := opentype.Parse(assets.FontTTF)
	if err != nil {
		logger.Errorf("fb", "font parse failed, using basicfont: %v", err)
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: 22, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		logger.Errorf("fb", "font face create failed, using basicfont: %v", err)
		return basicfont.Face7x13
	}
	return face
}

// blitToFB copies canvas to the device with nearest-neighbor scaling.
func blitToFB(dev *fb.Device, canvas *image.RGBA) {
	bounds := dev.Bounds()
	fbWidth := bounds.Dx()
	fbHeight := bounds.Dy()
	canvasWidth := canvas.Bounds().Dx()
	canvasHeight := canvas.Bounds().Dy()
	for y := 0; y < fbHeight; y++ {
		sy := (y * canvasHeight) / fbHeight
		for x := 0; x < fbWidth; x++ {
			sx := (x * canvasWidth) / fbWidth
			pixel := canvas.RGBAAt(sx, sy)
			dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
}

type noopLogger struct{}

func (noopLogger) Infof(string, string, ...interface{})  {}
func (noopLogger) Errorf(string, string, ...interface{}) {}
