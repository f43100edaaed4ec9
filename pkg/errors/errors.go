// Package errors provides structured error handling for sprigconfig
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeMissingDirectory indicates the configuration root directory does not exist
	ErrorTypeMissingDirectory ErrorType = "missing_directory"
	// ErrorTypeMissingFile indicates the mandatory base document is absent
	ErrorTypeMissingFile ErrorType = "missing_file"
	// ErrorTypeMissingProfile indicates a guarded profile's overlay is absent
	ErrorTypeMissingProfile ErrorType = "missing_profile"
	// ErrorTypeParse indicates malformed document text
	ErrorTypeParse ErrorType = "parse"
	// ErrorTypePathEscape indicates an import resolved outside the configuration root
	ErrorTypePathEscape ErrorType = "path_escape"
	// ErrorTypeCircularImport indicates an import cycle was detected
	ErrorTypeCircularImport ErrorType = "circular_import"
	// ErrorTypeSecret indicates a secret could not be resolved or decrypted
	ErrorTypeSecret ErrorType = "secret"
	// ErrorTypeConfig represents miscellaneous configuration errors (bad options, bad directives)
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeAlreadyInitialized indicates a store entry was initialized twice
	ErrorTypeAlreadyInitialized ErrorType = "already_initialized"
)

// Error represents a structured error with context
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new error with the given type and message
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new error with a formatted message
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
	}
}

// IsType checks if the error is of the given type
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// TypeOf returns the type of a structured error, or an empty string
// for plain errors.
func TypeOf(err error) ErrorType {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Type
}
