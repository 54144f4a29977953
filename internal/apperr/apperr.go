// Package apperr classifies failures crossing the service boundary.
//
// Services raise classified errors at the point of detection; the HTTP
// layer translates them at a single point, converting anything
// unclassified into a generic internal error so no detail leaks to the
// caller.
package apperr

import "errors"

// Kind identifies the class of a failure.
type Kind int

const (
	// BadRequest covers malformed or semantically invalid input.
	BadRequest Kind = iota + 1
	// NotFound covers absent referenced entities.
	NotFound
	// Forbidden covers ownership violations.
	Forbidden
	// Conflict covers uniqueness violations.
	Conflict
	// Internal covers everything unclassified.
	Internal
)

// String returns a stable name for the kind, used in error codes.
func (k Kind) String() string {
	switch k {
	case BadRequest:
		return "bad_request"
	case NotFound:
		return "not_found"
	case Forbidden:
		return "forbidden"
	case Conflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a classified failure with a caller-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error with a caller-safe message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies an underlying error while keeping it in the chain.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind of a classified error.
// Unclassified errors report Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// IsKind reports whether err is classified with the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
