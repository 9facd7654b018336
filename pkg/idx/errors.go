// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package idx

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies the failures reported while decoding IDX files or validating them against
// a dataset's expected shape.
type Kind int

const (
	// MissingOrUnreadableFile means the path does not exist, or it could not be opened or read.
	MissingOrUnreadableFile Kind = iota + 1

	// TruncatedHeader means the input ended before all header integers could be read.
	TruncatedHeader

	// TruncatedData means the input ended before all records promised by the header were read.
	TruncatedData

	// FormatMismatch means a decoded header field (or record) disagrees with the expected value.
	FormatMismatch
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case MissingOrUnreadableFile:
		return "MissingOrUnreadableFile"
	case TruncatedHeader:
		return "TruncatedHeader"
	case TruncatedData:
		return "TruncatedData"
	case FormatMismatch:
		return "FormatMismatch"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the error type returned by this package and by the dataset loaders built on it.
//
// Use KindOf or IsKind to inspect an error, since it is usually wrapped with a stack trace.
type Error struct {
	Kind Kind

	// Path of the file being decoded, if known.
	Path string

	// Split names the dataset partition (e.g. "train-images"), set by dataset loaders.
	Split string

	// Field, Expected and Actual are only set for FormatMismatch.
	Field            string
	Expected, Actual int64

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	if e.Split != "" {
		fmt.Fprintf(&sb, " in %s", e.Split)
	}
	if e.Path != "" {
		fmt.Fprintf(&sb, " (%q)", e.Path)
	}
	if e.Kind == FormatMismatch {
		fmt.Fprintf(&sb, ": field %q expected %d, got %d", e.Field, e.Expected, e.Actual)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// newError creates an *Error of the given kind, with a stack trace attached.
func newError(kind Kind, path string, cause error) error {
	return errors.WithStack(&Error{Kind: kind, Path: path, Err: cause})
}

// Mismatch returns a FormatMismatch error for the given field.
func Mismatch(path, field string, expected, actual int64) error {
	return errors.WithStack(&Error{
		Kind:     FormatMismatch,
		Path:     path,
		Field:    field,
		Expected: expected,
		Actual:   actual,
	})
}

// AsError returns the *Error wrapped in err, or nil if there is none.
func AsError(err error) *Error {
	var idxErr *Error
	if errors.As(err, &idxErr) {
		return idxErr
	}
	return nil
}

// KindOf returns the Kind of the *Error wrapped in err.
// It returns false if err doesn't wrap an *Error.
func KindOf(err error) (Kind, bool) {
	idxErr := AsError(err)
	if idxErr == nil {
		return 0, false
	}
	return idxErr.Kind, true
}

// IsKind reports whether err wraps an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
