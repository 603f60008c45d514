package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Argument errors
const (
	// ErrCodeInvalidArgument indicates a nil key, nil value, nil factory or an out-of-range index.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeIncompatibleType indicates a value that is not assignable to its declared type.
	ErrCodeIncompatibleType ErrorCode = "INCOMPATIBLE_TYPE"
)

// Registry errors
const (
	// ErrCodeNotFound indicates the requested entry was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAlreadyExists indicates an entry already exists and overwriting was not allowed.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	// ErrCodeConstructionFailed indicates a factory returned an error.
	ErrCodeConstructionFailed ErrorCode = "CONSTRUCTION_FAILED"
)

// Configuration errors
const (
	// ErrCodeInvalidConfig indicates a configuration struct failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)
