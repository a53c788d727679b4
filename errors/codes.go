package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	// ErrCodeProcessingFailed indicates the user-supplied process function
	// failed for a specific work item.
	ErrCodeProcessingFailed ErrorCode = "PROCESSING_FAILED"
	// ErrCodeInvalidConfig indicates the engine configuration is invalid.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeCanceled indicates the operation was canceled before any
	// work was delivered.
	ErrCodeCanceled ErrorCode = "CANCELED"
	// ErrCodeInvalidInput indicates the caller-supplied input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInternal indicates an internal engine error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)
