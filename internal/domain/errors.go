package domain

import (
	"errors"
	"fmt"
)

// Error kinds shared by the tree scanner and the safe file reader. Callers
// match them with errors.Is.
var (
	ErrNotFound      = errors.New("path does not exist or is not accessible")
	ErrNotADirectory = errors.New("path is not a directory")
	ErrNotAFile      = errors.New("path is not a file")
	ErrForbidden     = errors.New("path escapes the base directory")
	ErrInternal      = errors.New("filesystem operation failed")
)

// PathError describes a failed filesystem operation against a single path.
type PathError struct {
	Op   string
	Kind error
	Path string
	Err  error
}

// NewPathError builds a PathError. A nil kind defaults to ErrInternal.
func NewPathError(op string, kind error, path string, err error) *PathError {
	if kind == nil {
		kind = ErrInternal
	}
	return &PathError{Op: op, Kind: kind, Path: path, Err: err}
}

func (e *PathError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is the kind of this error.
func (e *PathError) Is(target error) bool {
	return e != nil && target == e.Kind
}

func (e *PathError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// KindOf returns the error kind carried by err, or nil when err is not a
// PathError.
func KindOf(err error) error {
	var pathErr *PathError
	if errors.As(err, &pathErr) {
		return pathErr.Kind
	}
	return nil
}
