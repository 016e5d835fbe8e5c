package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrDriverRequired is returned by Fill without a driver.
	ErrDriverRequired = errors.New("prompt: driver is required")
	// ErrTooManyAttempts is returned when a field keeps failing validation.
	ErrTooManyAttempts = errors.New("prompt: too many invalid answers")
)
