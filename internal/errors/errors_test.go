package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "error with wrapped error",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "failed to read input",
				Err:     errors.New("file not found"),
			},
			expected: "input: failed to read input: file not found",
		},
		{
			name: "error without wrapped error",
			appError: &AppError{
				Type:    ErrorTypeScan,
				Message: "no Lua files",
				Err:     nil,
			},
			expected: "scan: no Lua files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	wrappedErr := errors.New("wrapped error")
	appErr := &AppError{
		Type:    ErrorTypeInput,
		Message: "test message",
		Err:     wrappedErr,
	}

	result := appErr.Unwrap()
	assert.Equal(t, wrappedErr, result)
}

func TestAppError_Is(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		target   error
		expected bool
	}{
		{
			name:     "same type",
			appError: &AppError{Type: ErrorTypeOutput, Message: "test message"},
			target:   &AppError{Type: ErrorTypeOutput, Message: "different message", Err: errors.New("some error")},
			expected: true,
		},
		{
			name:     "different type",
			appError: &AppError{Type: ErrorTypeScan, Message: "test message"},
			target:   &AppError{Type: ErrorTypeOutput, Message: "test message"},
			expected: false,
		},
		{
			name:     "not an AppError",
			appError: &AppError{Type: ErrorTypeInput, Message: "test message"},
			target:   errors.New("standard error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.Is(tt.appError, tt.target))
		})
	}
}

func TestConstructors(t *testing.T) {
	cause := errors.New("cause")
	tests := []struct {
		err      *AppError
		expected ErrorType
	}{
		{NewInputError("m", cause), ErrorTypeInput},
		{NewScanError("m", cause), ErrorTypeScan},
		{NewOutputError("m", cause), ErrorTypeOutput},
		{NewServeError("m", cause), ErrorTypeServe},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.err.Type)
		assert.Equal(t, "m", tt.err.Message)
		assert.Equal(t, cause, tt.err.Err)
	}
}

func TestUserFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "input error",
			err:      NewInputError("no input provided", ErrNoInput),
			expected: "Input error: no input provided",
		},
		{
			name:     "scan error",
			err:      NewScanError("path missing", ErrFileNotFound),
			expected: "File discovery error: path missing",
		},
		{
			name:     "serve error",
			err:      NewServeError("port busy", errors.New("address in use")),
			expected: "Server error: port busy",
		},
		{
			name:     "bare sentinel",
			err:      ErrNoFilesFound,
			expected: "Error: No matching source files were found under the input path.",
		},
		{
			name:     "unknown error",
			err:      errors.New("something odd"),
			expected: "Error: something odd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserFriendlyError(tt.err))
		})
	}
}
