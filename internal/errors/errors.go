package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeDuplicateEmail     = "DUPLICATE_EMAIL"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Notice severities, matching the CSS classes used by the templates.
const (
	SeveritySuccess = "success"
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityDanger  = "danger"
)

// AppError is a categorized application error. Two AppErrors match under
// errors.Is when their codes are equal, so callers can compare against the
// predefined values below regardless of the message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates an AppError that keeps err as its cause
func Wrap(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation creates a validation error carrying a user-facing message.
func Validation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

// StorageUnavailable wraps a storage failure.
func StorageUnavailable(err error) *AppError {
	return Wrap(ErrCodeStorageUnavailable, "storage unavailable", err)
}

// Predefined errors
var (
	ErrValidation         = New(ErrCodeValidation, "Invalid input")
	ErrDuplicateEmail     = New(ErrCodeDuplicateEmail, "This email is already registered.")
	ErrInvalidCredentials = New(ErrCodeInvalidCredentials, "Invalid email or password.")
	ErrUnauthorized       = New(ErrCodeUnauthorized, "Please log in.")
	ErrForbidden          = New(ErrCodeForbidden, "This action is available to admins only.")
	ErrNotFound           = New(ErrCodeNotFound, "Ticket not found.")
	ErrStorageUnavailable = New(ErrCodeStorageUnavailable, "storage unavailable")
)

// CodeOf returns the code of the first AppError in err's chain, or
// ErrCodeInternalError for anything unclassified.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternalError
}

// Recoverable reports whether err can be turned into a notice and a redirect
// instead of an error page.
func Recoverable(err error) bool {
	switch CodeOf(err) {
	case ErrCodeStorageUnavailable, ErrCodeInternalError:
		return false
	default:
		return true
	}
}

// Severity maps an error to the notice severity it is shown with.
func Severity(err error) string {
	switch CodeOf(err) {
	case ErrCodeUnauthorized, ErrCodeNotFound:
		return SeverityWarning
	default:
		return SeverityDanger
	}
}

// Message returns the user-facing message for a recoverable error.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong."
}

// RespondWithError renders the generic failure page.
func RespondWithError(c *gin.Context, statusCode int, err error) {
	_ = c.Error(err)
	c.HTML(statusCode, "error.html", gin.H{
		"Title":  http.StatusText(statusCode),
		"Status": statusCode,
		"Code":   CodeOf(err),
	})
}

// InternalError renders a 500 page and stops the handler chain.
func InternalError(c *gin.Context, err error) {
	RespondWithError(c, http.StatusInternalServerError, err)
	c.Abort()
}
