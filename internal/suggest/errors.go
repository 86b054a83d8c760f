package suggest

import "errors"

var (
	// ErrNotSuggesting indicates Select was called without an active trigger.
	ErrNotSuggesting = errors.New("no active suggestion")

	// ErrNoEditor indicates Select was called on a session without an editor.
	ErrNoEditor = errors.New("session has no editor")

	// ErrLineOutOfRange indicates an edit addressed a line the editor does not have.
	ErrLineOutOfRange = errors.New("line out of range")
)
