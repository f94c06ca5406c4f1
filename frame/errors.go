// Package frame implements the frame store: the ordered set of decoded
// still images for one sequence, with batched concurrent loading and
// progress reporting.
//
// This file defines sentinel errors and the LoadError wrapper for
// classifying frame load failures. Callers use errors.Is/errors.As for
// typed assertions rather than string matching.
package frame

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Sentinel errors for load failure classification.
var (
	// ErrNotFound indicates the frame file does not exist (ENOENT, 404, NoSuchKey).
	ErrNotFound = errors.New("frame not found")

	// ErrDecode indicates the frame bytes could not be decoded as an image.
	ErrDecode = errors.New("frame decode failed")

	// ErrPermission indicates a permission/access failure (EACCES, 403).
	ErrPermission = errors.New("permission denied")

	// ErrNetwork indicates a network-level failure fetching the frame.
	ErrNetwork = errors.New("network error")
)

// LoadError reports the failure of a single frame load. Any one frame
// failing aborts the whole load sequence, so at most one LoadError
// surfaces per session.
type LoadError struct {
	// Number is the 1-based frame number that failed.
	Number int
	// Path is the constructed frame path.
	Path string
	// Kind is the sentinel classification, when one applies.
	Kind error
	// Err is the underlying error.
	Err error
}

func (e *LoadError) Error() string {
	if e.Kind != nil {
		return fmt.Sprintf("load frame %d (%s): %v: %v", e.Number, e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("load frame %d (%s): %v", e.Number, e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chain traversal.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is reports whether the error matches the target sentinel.
func (e *LoadError) Is(target error) bool {
	return e.Kind != nil && errors.Is(e.Kind, target)
}

// newLoadError classifies and wraps a frame load failure.
func newLoadError(number int, path string, err error) *LoadError {
	return &LoadError{
		Number: number,
		Path:   path,
		Kind:   classify(err),
		Err:    err,
	}
}

// classify determines the sentinel for an underlying error, or nil when
// no classification applies. Typed checks run first; S3 and HTTP failures
// only surface as strings, so those fall back to message patterns.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	if errors.Is(err, fs.ErrPermission) {
		return ErrPermission
	}
	if errors.Is(err, ErrDecode) {
		return ErrDecode
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "no such file", "does not exist", "not found", "404", "nosuchkey"):
		return ErrNotFound
	case containsAny(msg, "permission denied", "access denied", "forbidden", "403"):
		return ErrPermission
	case containsAny(msg, "unknown image format", "invalid format", "unexpected eof"):
		return ErrDecode
	case containsAny(msg, "connection refused", "no route to host", "network unreachable",
		"dial tcp", "i/o timeout", "timeout", "deadline exceeded"):
		return ErrNetwork
	default:
		return nil
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
