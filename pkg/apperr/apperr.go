package apperr

import "fmt"

// Error codes
const (
	CodeConfig     = "CONFIG_ERROR"
	CodeExternal   = "EXTERNAL_ERROR"
	CodeStorage    = "STORAGE_ERROR"
	CodeValidation = "VALIDATION_ERROR"
)

// AppError carries a machine code, an operator-facing message suitable for a
// flash banner, and an optional wrapped cause.
type AppError struct {
	Message     string
	UserMessage string
	Code        string
	Context     map[string]any
	Cause       error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Flash returns the operator-facing message, falling back to the internal one.
func (e *AppError) Flash() string {
	if e.UserMessage != "" {
		return e.UserMessage
	}
	return e.Message
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

type ConfigError struct {
	*AppError
	Key string
}

// NewConfigError reports a missing or unusable configuration value. The
// userMessage is what the route layer shows when the feature degrades.
func NewConfigError(message, userMessage, key string) *ConfigError {
	return &ConfigError{
		AppError: &AppError{
			Message:     message,
			UserMessage: userMessage,
			Code:        CodeConfig,
			Context:     map[string]any{"key": key},
		},
		Key: key,
	}
}

type ExternalError struct {
	*AppError
	Service string
}

// NewExternalError wraps a failed outbound call (network, non-200, bad body).
func NewExternalError(message, userMessage, service string, cause error) *ExternalError {
	return &ExternalError{
		AppError: &AppError{
			Message:     message,
			UserMessage: userMessage,
			Code:        CodeExternal,
			Context:     map[string]any{"service": service},
			Cause:       cause,
		},
		Service: service,
	}
}

type StorageError struct {
	*AppError
	Operation string
}

func NewStorageError(message, operation string, cause error) *StorageError {
	return &StorageError{
		AppError: &AppError{
			Message: message,
			Code:    CodeStorage,
			Context: map[string]any{"operation": operation},
			Cause:   cause,
		},
		Operation: operation,
	}
}

type ValidationError struct {
	*AppError
	Field string
	Value any
}

func NewValidationError(message, field string, value any) *ValidationError {
	return &ValidationError{
		AppError: &AppError{
			Message: message,
			Code:    CodeValidation,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}
