package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Scope evaluation errors
	ErrScopeEval ErrorCode = "SCOPE_EVAL"

	// Title derivation errors
	ErrNoTitle ErrorCode = "NO_TITLE"

	// Storage errors
	ErrStorageRead  ErrorCode = "STORAGE_READ"
	ErrStorageWrite ErrorCode = "STORAGE_WRITE"
	ErrNoteNotFound ErrorCode = "NOTE_NOT_FOUND"
	ErrNoteExists   ErrorCode = "NOTE_EXISTS"
)

// HeadlineError represents a structured error with code and details
type HeadlineError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *HeadlineError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *HeadlineError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *HeadlineError) Is(target error) bool {
	var targetErr *HeadlineError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new HeadlineError with the given code and message
func New(code ErrorCode, message string) *HeadlineError {
	return &HeadlineError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new HeadlineError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *HeadlineError {
	return &HeadlineError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a HeadlineError
func Wrap(err error, code ErrorCode, message string) *HeadlineError {
	if err == nil {
		return nil
	}
	return &HeadlineError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *HeadlineError {
	if err == nil {
		return nil
	}
	return &HeadlineError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *HeadlineError) WithDetail(key string, value interface{}) *HeadlineError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var hlErr *HeadlineError
	if errors.As(err, &hlErr) {
		return hlErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a HeadlineError
func GetErrorCode(err error) ErrorCode {
	var hlErr *HeadlineError
	if errors.As(err, &hlErr) {
		return hlErr.Code
	}
	return ErrUnknown
}
