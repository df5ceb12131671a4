package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNilVersion is returned when a Filler is built without a form.
	ErrNilVersion = errors.New("tui: nil form version")
)
