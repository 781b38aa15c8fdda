package app

import (
	"context"
	"errors"
	"image"
	"strings"
	"sync"

	"github.com/rook-computer/promptcanvas/internal/display"
	"github.com/rook-computer/promptcanvas/internal/generate"
	"github.com/rook-computer/promptcanvas/internal/state"
)

// Generator produces the picture for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, steps int) (*image.RGBA, error)
}

// Controller owns the UI state machine around a generation:
// IDLE → LOADING → RESULT | ERROR, with Reset returning to IDLE. Only one
// generation is live at a time; a newer Submit supersedes a pending one.
type Controller struct {
	Store     *state.Store
	Generator Generator
	Display   display.Display
	Logger    Logger

	mu      sync.Mutex
	pending context.CancelFunc

	loopCancel context.CancelFunc
	loopWG     sync.WaitGroup
}

func New(store *state.Store, generator Generator, out display.Display) *Controller {
	if store == nil {
		store = state.NewStore()
	}
	return &Controller{Store: store, Generator: generator, Display: out, Logger: NoopLogger{}}
}

// Start brings up the display, if any, and its redraw loop.
func (c *Controller) Start(ctx context.Context) error {
	if c.Display == nil {
		return nil
	}
	if err := c.Display.Start(ctx); err != nil {
		c.logger().Errorf("app", "display start error: %v", err)
		return err
	}

	loopCtx, cancel := context.WithCancel(ctx)
	c.loopCancel = cancel
	c.loopWG.Add(1)
	go func() {
		defer c.loopWG.Done()
		c.Display.RunLoop(loopCtx, c.Store)
	}()
	return nil
}

// Stop cancels any pending generation and shuts the display down.
func (c *Controller) Stop() error {
	c.transition(nil, nil)
	if c.loopCancel != nil {
		c.loopCancel()
		c.loopWG.Wait()
		c.loopCancel = nil
	}
	if c.Display == nil {
		return nil
	}
	return c.Display.Stop()
}

// Submit runs one generation. A blank prompt goes straight to ERROR with an
// *EmptyPromptError and never reaches LOADING. Generation failures end in
// ERROR and are returned as *generate.GenerationError. If a newer Submit or
// a Reset happens first, Submit leaves state alone and returns ErrSuperseded.
func (c *Controller) Submit(ctx context.Context, prompt string, steps int) error {
	logger := c.logger()
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		err := &EmptyPromptError{}
		c.transition(nil, func() { c.Store.Fail(prompt, steps, err.Error()) })
		logger.Errorf("app", "submit rejected: %v", err)
		return err
	}

	genCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	var gen uint64
	c.transition(cancel, func() { gen = c.Store.Begin(prompt, steps) })
	logger.Infof("app", "generation %d loading, steps=%d", gen, steps)

	img, err := c.generate(genCtx, prompt, steps)
	if err != nil {
		if !c.Store.CompleteWithError(gen, err.Error()) {
			logger.Infof("app", "generation %d superseded", gen)
			return ErrSuperseded
		}
		logger.Errorf("app", "generation %d failed: %v", gen, err)
		return err
	}
	if !c.Store.Complete(gen, img) {
		logger.Infof("app", "generation %d superseded", gen)
		return ErrSuperseded
	}
	logger.Infof("app", "generation %d done", gen)
	return nil
}

// Reset returns to IDLE and drops any result, error or pending generation.
func (c *Controller) Reset() {
	c.transition(nil, c.Store.Reset)
	c.logger().Infof("app", "reset to idle")
}

func (c *Controller) generate(ctx context.Context, prompt string, steps int) (*image.RGBA, error) {
	if c.Generator == nil {
		return nil, &generate.GenerationError{Err: generate.ErrNotReady}
	}
	img, err := c.Generator.Generate(ctx, prompt, steps)
	if err != nil {
		var genErr *generate.GenerationError
		if !errors.As(err, &genErr) {
			err = &generate.GenerationError{Err: err}
		}
		return nil, err
	}
	return img, nil
}

// transition cancels the pending generation, records next as the new one and
// applies fn under the same lock, so the newest request always owns state.
func (c *Controller) transition(next context.CancelFunc, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.pending
	c.pending = next
	if fn != nil {
		fn()
	}
	// Cancel after fn: once fn has moved the generation on, prev can no
	// longer settle state with its cancellation error.
	if prev != nil {
		prev()
	}
}

func (c *Controller) logger() Logger {
	if c.Logger == nil {
		return NoopLogger{}
	}
	return c.Logger
}
