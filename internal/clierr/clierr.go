// Package clierr gives CLI entry points a uniform way to carry an exit
// code alongside an error, so main can translate any returned error into
// the right process exit status (spec.md §7).
package clierr

import (
	"errors"
	"fmt"
)

// Error pairs an operational failure with the process exit code it should
// produce.
type Error struct {
	ExitCode int
	Err      error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error with code whose message is formatted from format and
// args.
func New(code int, format string, args ...any) *Error {
	return &Error{ExitCode: code, Err: fmt.Errorf(format, args...)}
}

// Wrap attaches an exit code to an existing error.
func Wrap(code int, err error) *Error {
	return &Error{ExitCode: code, Err: err}
}

// ExitCode extracts the exit code from err if it (or something it wraps)
// is a *Error, defaulting to 1 for any other non-nil error and 0 for nil.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce.ExitCode
	}
	return 1
}
