package config

import (
	"errors"
	"fmt"
)

// ErrValidationFailed is wrapped by every ValidationError.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError reports an invalid configuration value.
type ValidationError struct {
	Path    string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Path, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
