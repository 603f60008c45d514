package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// InvalidArgument reports a rejected argument.
func InvalidArgument(arg, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid %s: %s", arg, reason),
		Details: map[string]any{"argument": arg},
	}
}

// IndexOutOfRange reports a positional operation outside [0, length).
func IndexOutOfRange(index, length int) *AppError {
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("index %d out of range [0, %d)", index, length),
		Details: map[string]any{"index": index, "length": length},
	}
}

// IncompatibleType reports a value whose type cannot be stored under key.
func IncompatibleType(key, actual string) *AppError {
	return &AppError{
		Code: ErrCodeIncompatibleType, Message: fmt.Sprintf("%s is not assignable to %s", actual, key),
		Details: map[string]any{"key": key, "actual": actual},
	}
}

// NotFound reports a missing entry.
func NotFound(key string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("no entry registered for %s", key),
		Details: map[string]any{"key": key},
	}
}

// AlreadyExists reports a registration refused because key is taken.
func AlreadyExists(key string) *AppError {
	return &AppError{
		Code: ErrCodeAlreadyExists, Message: fmt.Sprintf("an entry for %s already exists", key),
		Details: map[string]any{"key": key},
	}
}

// ConstructionFailed wraps a factory error.
func ConstructionFailed(key string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeConstructionFailed, Message: fmt.Sprintf("factory for %s failed", key),
		Details: map[string]any{"key": key}, Cause: cause,
	}
}

// InvalidConfig reports a configuration validation failure.
func InvalidConfig(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidConfig, Message: message}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err is, or wraps, an AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
