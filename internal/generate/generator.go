package generate

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/rook-computer/promptcanvas/internal/render"
)

const (
	DefaultDelay = 5 * time.Second
	DefaultSteps = 10
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(string, string, ...interface{})  {}
func (noopLogger) Errorf(string, string, ...interface{}) {}

// Generator stands in for a model: it waits Delay to simulate inference and
// then asks the renderer for the picture.
type Generator struct {
	Renderer render.Renderer
	Delay    time.Duration
	Logger   Logger
}

func New(renderer render.Renderer, delay time.Duration) *Generator {
	return &Generator{Renderer: renderer, Delay: delay, Logger: noopLogger{}}
}

// Ready reports whether a renderer is loaded.
func (g *Generator) Ready() bool { return g != nil && g.Renderer != nil }

// Generate produces an image for prompt. steps is accepted for parity with a
// real diffusion backend and has no effect on the output. Every failure is
// returned as a *GenerationError.
func (g *Generator) Generate(ctx context.Context, prompt string, steps int) (*image.RGBA, error) {
	if !g.Ready() {
		return nil, &GenerationError{Err: ErrNotReady}
	}
	logger := g.logger()
	logger.Infof("generate", "start steps=%d delay=%s", steps, g.Delay)

	if err := wait(ctx, g.Delay); err != nil {
		logger.Errorf("generate", "wait interrupted: %v", err)
		return nil, &GenerationError{Err: err}
	}

	img, err := g.render(prompt)
	if err != nil {
		logger.Errorf("generate", "render failed: %v", err)
		return nil, &GenerationError{Err: err}
	}
	logger.Infof("generate", "done steps=%d", steps)
	return img, nil
}

func (g *Generator) render(prompt string) (img *image.RGBA, err error) {
	defer func() {
		if r := recover(); r != nil {
			img = nil
			err = fmt.Errorf("renderer panic: %v", r)
		}
	}()
	img = g.Renderer.Render(prompt)
	if img == nil {
		return nil, fmt.Errorf("renderer returned no image")
	}
	return img, nil
}

func (g *Generator) logger() Logger {
	if g.Logger == nil {
		return noopLogger{}
	}
	return g.Logger
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
