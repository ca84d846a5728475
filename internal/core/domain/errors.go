package domain

import "errors"

// FieldError describes one field-level validation issue
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// AppError is the operational error type carried by every domain failure.
// It travels unchanged up to the HTTP boundary, where the global error
// handler serializes it into the uniform envelope.
type AppError struct {
	StatusCode  int
	Message     string
	Operational bool
	Fields      []FieldError
	cause       error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// WithFields attaches field-level validation issues
func (e *AppError) WithFields(fields ...FieldError) *AppError {
	e.Fields = fields
	return e
}

// AsAppError extracts an *AppError from an error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// NewValidationError creates a 400 operational error
func NewValidationError(message string) *AppError {
	return &AppError{StatusCode: 400, Message: message, Operational: true}
}

// NewUnauthorizedError creates a 401 operational error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{StatusCode: 401, Message: message, Operational: true}
}

// NewForbiddenError creates a 403 operational error
func NewForbiddenError(message string) *AppError {
	return &AppError{StatusCode: 403, Message: message, Operational: true}
}

// NewNotFoundError creates a 404 operational error
func NewNotFoundError(message string) *AppError {
	return &AppError{StatusCode: 404, Message: message, Operational: true}
}

// NewConflictError creates a 409 operational error
func NewConflictError(message string) *AppError {
	return &AppError{StatusCode: 409, Message: message, Operational: true}
}

// NewInternalError creates a 500 non-operational error wrapping the cause
func NewInternalError(cause error) *AppError {
	return &AppError{
		StatusCode:  500,
		Message:     "Internal server error",
		Operational: false,
		cause:       cause,
	}
}
