package errors

import (
	stderrors "errors"
	"fmt"
)

// EngineError is the unified error type for the parakit engine.
type EngineError struct {
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
func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *EngineError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *EngineError) WithCause(cause error) *EngineError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *EngineError) WithDetail(key string, value any) *EngineError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new EngineError.
func New(code ErrorCode, message string) *EngineError {
	return &EngineError{Code: code, Message: message}
}

// --- Common Error Constructors ---

// Processing creates a new EngineError for a work item whose process
// function failed. The failing item's label is recorded in the details;
// callers should attach the original error with WithCause so that
// errors.Is and errors.As still reach it.
func Processing(item string) *EngineError {
	return &EngineError{
		Code: ErrCodeProcessingFailed, Message: fmt.Sprintf("processing %s failed", item),
		Details: map[string]any{"item": item},
	}
}

// InvalidConfig creates a new EngineError for an invalid engine configuration.
func InvalidConfig(reason string) *EngineError {
	return &EngineError{
		Code: ErrCodeInvalidConfig, Message: fmt.Sprintf("invalid configuration: %s", reason),
	}
}

// Canceled creates a new EngineError for an operation canceled before
// delivering any work.
func Canceled(operation string) *EngineError {
	return &EngineError{
		Code: ErrCodeCanceled, Message: fmt.Sprintf("%s canceled", operation),
		Details: map[string]any{"operation": operation},
	}
}

// Validation creates a new EngineError for invalid caller input.
func Validation(message string) *EngineError {
	return &EngineError{Code: ErrCodeInvalidInput, Message: message}
}

// Internal creates a new EngineError for an unexpected internal failure.
func Internal(message string) *EngineError {
	return &EngineError{Code: ErrCodeInternal, Message: message}
}

// --- Inspection helpers ---

// AsEngineError extracts an *EngineError from err's chain, or nil.
func AsEngineError(err error) *EngineError {
	var ee *EngineError
	if stderrors.As(err, &ee) {
		return ee
	}
	return nil
}

// IsCode reports whether err carries the given engine error code.
func IsCode(err error, code ErrorCode) bool {
	if ee := AsEngineError(err); ee != nil {
		return ee.Code == code
	}
	return false
}
