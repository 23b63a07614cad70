// Package rssgerr defines the small closed error taxonomy every subsystem
// reports through: which failures are recoverable at the file or token
// level, and which abort the build outright.
package rssgerr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. Only InputError and InvariantViolation ever
// abort a build; everything else is recovered by the caller and logged.
type Kind int

const (
	// InputError means the repo path is missing, a file, or the language
	// is unsupported. Surfaced directly to the CLI caller.
	InputError Kind = iota
	// IoError means a file read failed. The file is dropped.
	IoError
	// DecodeError means content isn't valid UTF-8 and lossy decode still
	// failed. The file is treated as empty.
	DecodeError
	// ParseError means tree-sitter failed or returned an unusable tree.
	// The file is skipped for this pass.
	ParseError
	// ResolveError means the import resolver couldn't map a token.
	// Nothing is emitted; logged at trace level by the caller.
	ResolveError
	// InvariantViolation means an internal consistency check failed, e.g.
	// a bidirectional insert didn't produce its inverse. Fatal.
	InvariantViolation
)

func (k Kind) String() string {
	switch k {
	case InputError:
		return "InputError"
	case IoError:
		return "IoError"
	case DecodeError:
		return "DecodeError"
	case ParseError:
		return "ParseError"
	case ResolveError:
		return "ResolveError"
	case InvariantViolation:
		return "InvariantViolation"
	default:
		return "UnknownError"
	}
}

// Error wraps an underlying error with a Kind so callers can recover
// selectively with errors.As.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap attaches kind to err. Wrapping a nil error returns nil.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
