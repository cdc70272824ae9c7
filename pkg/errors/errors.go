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
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Revision and scanning errors
	ErrMalformedRevision ErrorCode = "MALFORMED_REVISION"
	ErrScanFailed        ErrorCode = "SCAN_FAILED"

	// Per-link errors, isolated to the link they concern
	ErrUnresolvedReference ErrorCode = "UNRESOLVED_REFERENCE"
	ErrDocumentNotFound    ErrorCode = "DOCUMENT_NOT_FOUND"
	ErrRelinkFailed        ErrorCode = "RELINK_FAILED"
	ErrReloadFailed        ErrorCode = "RELOAD_FAILED"

	// Run-level errors
	ErrLinkEnumeration ErrorCode = "LINK_ENUMERATION"
	ErrLogWrite        ErrorCode = "LOG_WRITE"
	ErrViewerLaunch    ErrorCode = "VIEWER_LAUNCH"

	// Host manifest errors
	ErrManifestRead   ErrorCode = "MANIFEST_READ"
	ErrManifestParse  ErrorCode = "MANIFEST_PARSE"
	ErrManifestWrite  ErrorCode = "MANIFEST_WRITE"
	ErrManifestFormat ErrorCode = "MANIFEST_FORMAT"

	// History errors
	ErrHistoryOpen  ErrorCode = "HISTORY_OPEN"
	ErrHistoryWrite ErrorCode = "HISTORY_WRITE"
	ErrHistoryRead  ErrorCode = "HISTORY_READ"

	// Watch errors
	ErrWatch ErrorCode = "WATCH"
)

// RelinkError represents a structured error with code and details
type RelinkError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RelinkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RelinkError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RelinkError) Is(target error) bool {
	var targetErr *RelinkError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RelinkError with the given code and message
func New(code ErrorCode, message string) *RelinkError {
	return &RelinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RelinkError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RelinkError {
	return &RelinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RelinkError
func Wrap(err error, code ErrorCode, message string) *RelinkError {
	if err == nil {
		return nil
	}
	return &RelinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RelinkError {
	if err == nil {
		return nil
	}
	return &RelinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RelinkError) WithDetail(key string, value interface{}) *RelinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var relinkErr *RelinkError
	if errors.As(err, &relinkErr) {
		return relinkErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RelinkError
func GetErrorCode(err error) ErrorCode {
	var relinkErr *RelinkError
	if errors.As(err, &relinkErr) {
		return relinkErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a RelinkError
func GetErrorDetails(err error) map[string]interface{} {
	var relinkErr *RelinkError
	if errors.As(err, &relinkErr) {
		return relinkErr.Details
	}
	return nil
}

// Message returns the innermost human-readable message of err.
// Coded wrappers are peeled so bucketed reports show the host's own text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var relinkErr *RelinkError
	if errors.As(err, &relinkErr) && relinkErr.Wrapped != nil {
		return Message(relinkErr.Wrapped)
	}
	if relinkErr != nil {
		return relinkErr.Message
	}
	return err.Error()
}
