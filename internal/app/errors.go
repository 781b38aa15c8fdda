package app

import "errors"

// EmptyPromptError is returned when the prompt is blank.
type EmptyPromptError struct{}

func (*EmptyPromptError) Error() string { return "enter a description" }

// ErrSuperseded is returned by a Submit whose request was replaced by a newer
// Submit or a Reset before it finished. State is left to the newer request.
var ErrSuperseded = errors.New("generation superseded by a newer request")
