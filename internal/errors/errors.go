package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrFileNotFound    = errors.New("file not found")
	ErrNoFilesFound    = errors.New("no matching source files found")
	ErrNoInput         = errors.New("no input provided: please specify a path with -i or pipe Lua source to stdin")
	ErrInvalidFilePath = errors.New("invalid file path")
)

// ErrorType categorizes errors by pipeline stage. Extraction and cataloging
// are tolerant and never produce errors, so only the I/O stages have a type.
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeScan    ErrorType = "scan"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeServe   ErrorType = "serve"
	ErrorTypeUnknown ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewScanError creates a new error related to file discovery
func NewScanError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeScan,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// NewServeError creates a new error related to the inspection server
func NewServeError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeServe,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeScan:
			return fmt.Sprintf("File discovery error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		case ErrorTypeServe:
			return fmt.Sprintf("Server error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide Lua source to scan."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified path could not be found. Please check the path."
	}
	if errors.Is(err, ErrNoFilesFound) {
		return "Error: No matching source files were found under the input path."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a path with -i or pipe Lua source to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}

	return fmt.Sprintf("Error: %v", err)
}
