package apperrors

import "errors"

// Common errors
var (
	// Validation errors
	ErrInvalidRequest   = errors.New("invalid request")
	ErrValidationFailed = errors.New("validation failed")

	// Resource errors
	ErrResourceNotFound   = errors.New("resource not found")
	ErrDuplicateAdmission = errors.New("admission number already registered")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")
)

// User/Student errors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrStudentNotFound = errors.New("student not found")
)

// Messcut errors
var (
	ErrMesscutNotFound      = errors.New("messcut request not found")
	ErrInvalidMesscutStatus = errors.New("invalid messcut status")
)

// NewBadRequestError creates a new custom error for invalid requests with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrInvalidRequest,
		Message: message,
	}
}

// NewNotFoundError creates a new custom error for missing resources with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for duplicate admission numbers
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrDuplicateAdmission,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
