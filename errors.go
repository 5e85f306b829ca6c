package deepaccess

import (
	"errors"
	"fmt"
)

// Base error types for path resolution failures.
var (
	// ErrConfiguration reports a structurally invalid path: an Override with
	// zero or multiple discriminants set, an attempt to vivify a method-call
	// target during a write, or an empty write path. It is always a caller
	// bug and is never suppressed.
	ErrConfiguration = errors.New("invalid path configuration")

	// ErrTraversal reports that the actual data shape conflicts with what
	// the path demands, such as descending into a scalar. Exists and Get do
	// not fold this into a false/absent result: it marks a violated shape
	// assumption, not ordinary absence.
	ErrTraversal = errors.New("path conflicts with data shape")
)

// ErrDocument reports an unparseable serialized document handed to one of
// the document helpers.
var ErrDocument = errors.New("invalid document")

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

func traversalErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrTraversal, fmt.Sprintf(format, args...))
}

// segmentErrorf wraps err with the position of the offending segment.
func segmentErrorf(pos int, err error) error {
	return fmt.Errorf("segment %d: %w", pos, err)
}
