// Package apperr defines the error taxonomy shared by the domain services:
// NotFound, InvalidData and Unexpected. Errors are raised where a condition
// is detected and travel unchanged to the HTTP boundary, which maps the kind
// to a status code.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindInvalidData
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidData:
		return "invalid_data"
	default:
		return "unexpected"
	}
}

// Error is the concrete error type for every taxonomy kind.
type Error struct {
	Kind    Kind
	Field   string // offending field for KindInvalidData
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports that no record of the given entity exists under id.
func NotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found: %s", entity, id)}
}

// InvalidData reports a validation failure or an unresolvable reference.
func InvalidData(field, message string) *Error {
	return &Error{Kind: KindInvalidData, Field: field, Message: message}
}

// Unexpected wraps an infrastructure failure.
func Unexpected(message string, err error) *Error {
	return &Error{Kind: KindUnexpected, Message: message, Err: err}
}

// KindOf returns the taxonomy kind of err. Errors outside the taxonomy are
// unexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

func IsNotFound(err error) bool    { return err != nil && KindOf(err) == KindNotFound }
func IsInvalidData(err error) bool { return err != nil && KindOf(err) == KindInvalidData }

// FieldOf returns the offending field carried by an InvalidData error.
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}
