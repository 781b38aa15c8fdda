package generate

import "errors"

// ErrNotReady is returned when no renderer has been loaded.
var ErrNotReady = errors.New("model not loaded")

// GenerationError wraps any failure that happens while producing an image.
// Its message keeps the cause's message.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error { return e.Err }
