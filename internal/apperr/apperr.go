// Package apperr defines the structured errors returned across the
// application
package apperr

import "fmt"

// Error is an application error with a message template. Copies produced by
// Fmt or Wrap still match the original value with errors.Is.
type Error struct {
	Cause   error
	Message string
	Context []any
}

func (e *Error) Error() string {
	msg := e.Message

	if len(e.Context) > 0 {
		msg = fmt.Sprintf(msg, e.Context...)
	}

	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}

	return msg
}

// Fmt returns a copy of the error with the message template filled in.
func (e *Error) Fmt(args ...any) *Error {
	ne := *e
	ne.Context = args

	return &ne
}

// Wrap returns a copy of the error that wraps the provided cause.
func (e *Error) Wrap(err error) *Error {
	ne := *e
	ne.Cause = err

	return &ne
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same message template.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Message == e.Message
}
