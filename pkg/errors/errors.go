// Package errors provides typed errors for the changed-files action
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// ErrExecution indicates a git subprocess could not be launched or exited abnormally
	ErrExecution ErrorType = iota
	// ErrParse indicates structured command output did not match the expected pattern
	ErrParse
	// ErrRemoteStatus indicates the commit-comparison API returned a non-200 status
	ErrRemoteStatus
	// ErrUnsupportedStatus indicates a file entry carried an unknown change status
	ErrUnsupportedStatus
	// ErrConfiguration indicates missing or invalid action configuration
	ErrConfiguration
	// ErrValidation indicates an input or output validation failure
	ErrValidation
)

// ActionError is the base error type for all changed-files errors
type ActionError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error returns the error message
func (e *ActionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", errorTypeString(e.Type), e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", errorTypeString(e.Type), e.Message)
}

// Unwrap returns the underlying cause
func (e *ActionError) Unwrap() error {
	return e.Cause
}

// New creates a new ActionError
func New(errType ErrorType, message string, cause error) *ActionError {
	return &ActionError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	var actionErr *ActionError
	if err == nil {
		return false
	}
	if errors.As(err, &actionErr) {
		return actionErr.Type == errType
	}
	return false
}

// IsFatal returns true if the error must abort the current resolution path.
// Remote-status, unsupported-status and validation errors mark the run failed
// but allow processing to continue with whatever data is available.
func IsFatal(err error) bool {
	var actionErr *ActionError
	if !errors.As(err, &actionErr) {
		return true
	}

	switch actionErr.Type {
	case ErrRemoteStatus, ErrUnsupportedStatus, ErrValidation:
		return false
	default:
		return true
	}
}

func errorTypeString(et ErrorType) string {
	switch et {
	case ErrExecution:
		return "EXECUTION"
	case ErrParse:
		return "PARSE"
	case ErrRemoteStatus:
		return "REMOTE_STATUS"
	case ErrUnsupportedStatus:
		return "UNSUPPORTED_STATUS"
	case ErrConfiguration:
		return "CONFIG"
	case ErrValidation:
		return "VALIDATION"
	default:
		return "UNKNOWN"
	}
}

// Convenience functions for common errors

// ExecutionError creates a subprocess execution error
func ExecutionError(message string, cause error) *ActionError {
	return New(ErrExecution, message, cause)
}

// ParseError creates a command-output parse error
func ParseError(message string, cause error) *ActionError {
	return New(ErrParse, message, cause)
}

// RemoteStatusError creates a comparison-API status error
func RemoteStatusError(message string, cause error) *ActionError {
	return New(ErrRemoteStatus, message, cause)
}

// UnsupportedStatusError creates an unknown-change-status error
func UnsupportedStatusError(message string, cause error) *ActionError {
	return New(ErrUnsupportedStatus, message, cause)
}

// ConfigurationError creates a configuration error
func ConfigurationError(message string, cause error) *ActionError {
	return New(ErrConfiguration, message, cause)
}

// ValidationError creates a validation error
func ValidationError(message string, cause error) *ActionError {
	return New(ErrValidation, message, cause)
}
