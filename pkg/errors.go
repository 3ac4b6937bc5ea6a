package dupcmp

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// ErrInterrupted is returned when a shutdown signal stops a run early
var ErrInterrupted = errors.New("interrupted by shutdown")

// ErrorKind categorises a per-path failure
type ErrorKind int

const (
	ErrorOther ErrorKind = iota
	ErrorNotFound
	ErrorPermissionDenied
	ErrorIoRead
)

// String returns the name used when reporting the error kind
func (k ErrorKind) String() string {
	switch k {
	case ErrorNotFound:
		return "NotFound"
	case ErrorPermissionDenied:
		return "PermissionDenied"
	case ErrorIoRead:
		return "IoReadError"
	default:
		return "Other"
	}
}

// kindOf maps an OS error onto the error taxonomy
func kindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrorNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrorPermissionDenied
	default:
		return ErrorOther
	}
}

// TraversalError records a failure isolated to a single path.
// Op is one of "classify", "lstat", "readdir", "open" or "read".
type TraversalError struct {
	Op   string
	Path string
	Kind ErrorKind
	Err  error
}

func newTraversalError(op, path string, err error) *TraversalError {
	return &TraversalError{Op: op, Path: path, Kind: kindOf(err), Err: err}
}

// newReadError builds a comparison failure; these are always IoReadError
func newReadError(op, path string, err error) *TraversalError {
	return &TraversalError{Op: op, Path: path, Kind: ErrorIoRead, Err: err}
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *TraversalError) Unwrap() error {
	return e.Err
}

// ErrorList accumulates per-path failures in the order they happened
type ErrorList []error

// Add appends err if it is not nil
func (l *ErrorList) Add(err error) {
	if err != nil {
		*l = append(*l, err)
	}
}

// Len returns the number of recorded errors
func (l ErrorList) Len() int {
	return len(l)
}

// Paths returns the offending path of every TraversalError in the list
func (l ErrorList) Paths() []string {
	var paths []string
	for _, err := range l {
		var te *TraversalError
		if errors.As(err, &te) {
			paths = append(paths, te.Path)
		}
	}
	return paths
}

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	msgs := make([]string, len(l))
	for i, err := range l {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d errors: %s", len(l), strings.Join(msgs, "; "))
}
