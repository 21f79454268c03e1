// Package apperr defines the error kinds surfaced by the content pipeline.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure
type Kind string

const (
	// KindConfiguration means the completion backend is unusable until fixed
	// (missing or rejected credentials).
	KindConfiguration Kind = "configuration"
	// KindTransport covers network failures and timeouts talking to the backend.
	KindTransport Kind = "transport"
	// KindValidation means the request was rejected before any external call.
	KindValidation Kind = "validation"
	// KindParse means structured backend output could not be decoded.
	KindParse Kind = "parse"
)

// Error is a classified error
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := string(e.Kind) + " error"
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a classified error
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Configuration wraps err as a configuration error
func Configuration(op string, err error) *Error { return New(KindConfiguration, op, err) }

// Transport wraps err as a transport error
func Transport(op string, err error) *Error { return New(KindTransport, op, err) }

// Parse wraps err as a parse error
func Parse(op string, err error) *Error { return New(KindParse, op, err) }

// Validation creates a validation error with a formatted message
func Validation(op, format string, args ...any) *Error {
	return New(KindValidation, op, fmt.Errorf(format, args...))
}

// KindOf returns the kind of the first classified error in err's chain
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
