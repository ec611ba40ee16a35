// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-vram library.

package api

import "fmt"

// Common errors used across the library.
var (
	// ErrCapacityExhausted reports that no contiguous free region of the
	// requested size exists in a bank. It is the only failure kind of the
	// allocating entry points; it never resolves by retry, only by some
	// other handle being released first.
	ErrCapacityExhausted = fmt.Errorf("hardware memory capacity exhausted")

	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidHandle   = fmt.Errorf("invalid handle")
	ErrBankClosed      = fmt.Errorf("bank is closed")
	ErrNotSupported    = fmt.Errorf("operation not supported")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeCapacityExhausted
	ErrCodeInvalidHandle
	ErrCodeBankClosed
	ErrCodeNotSupported
	ErrCodeInternal
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap maps the error code back to its package sentinel so errors.Is
// works against structured errors.
func (e *Error) Unwrap() error {
	switch e.Code {
	case ErrCodeInvalidArgument:
		return ErrInvalidArgument
	case ErrCodeCapacityExhausted:
		return ErrCapacityExhausted
	case ErrCodeInvalidHandle:
		return ErrInvalidHandle
	case ErrCodeBankClosed:
		return ErrBankClosed
	case ErrCodeNotSupported:
		return ErrNotSupported
	default:
		return nil
	}
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
