// Package errors gives railfill failures a machine-readable [Code].
//
// The CLI prints [UserMessage] and the HTTP server maps codes to status
// codes, so callers should construct errors with [New] or [Wrap] and test
// them with [Is] rather than comparing strings.
//
// Running out of budget and being cancelled are not errors. A generation
// run reports those as a status on its result.
//
//	if lo > hi {
//		return errors.New(errors.ErrCodeInvalidParams, "min length %.1f exceeds max length %.1f", lo, hi)
//	}
//	...
//	if errors.Is(err, errors.ErrCodeInvalidParams) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an error.
type Code string

const (
	ErrCodeInvalidInput     Code = "INVALID_INPUT"     // malformed request or file
	ErrCodeInvalidParams    Code = "INVALID_PARAMS"    // a parameter out of range
	ErrCodeInvalidStrategy  Code = "INVALID_STRATEGY"  // unknown placement strategy
	ErrCodeInvalidEvaluator Code = "INVALID_EVALUATOR" // unknown evaluator kind
	ErrCodeInvalidFrame     Code = "INVALID_FRAME"     // frame definition is inconsistent
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"    // unparsable TOML or JSON

	ErrCodeDegenerateGeometry Code = "DEGENERATE_GEOMETRY"
	ErrCodeRunInProgress      Code = "RUN_IN_PROGRESS"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a [Code] with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

// New formats a message under code.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is [New] with a cause, which stays reachable through errors.Is and
// errors.As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// find returns the outermost *Error in err's chain.
func find(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := find(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	if e, ok := find(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage strips the code and cause from err for display.
func UserMessage(err error) string {
	if e, ok := find(err); ok {
		return e.Message
	}
	return err.Error()
}

// Join folds validation failures into one error whose code is that of the
// first failure (INVALID_INPUT if it has none) and whose message lists them
// all. Nil errors are skipped; a lone failure is returned as is.
func Join(errs ...error) error {
	var set []error
	for _, err := range errs {
		if err != nil {
			set = append(set, err)
		}
	}
	if len(set) < 2 {
		if len(set) == 0 {
			return nil
		}
		return set[0]
	}

	code := GetCode(set[0])
	if code == "" {
		code = ErrCodeInvalidInput
	}
	msg := UserMessage(set[0])
	for _, err := range set[1:] {
		msg += "; " + UserMessage(err)
	}
	return &Error{Code: code, Message: msg, Cause: errors.Join(set...)}
}
