package editor

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoImage is returned by every operation when no image is loaded.
var ErrNoImage = errors.New("no image loaded")

// LoadError reports an image that could not be read or decoded. The store is
// unchanged when a load fails.
type LoadError struct {
	Source string // "file", "base64" or "bytes"
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load image from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// OperationError reports a failed operation. History is unchanged when an
// operation fails.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }
