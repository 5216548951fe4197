package apperr

import "net/http"

// AppError is the single error type crossing store and auth boundaries.
// Handlers map Code to an HTTP status; Origin keeps the underlying cause
// for logs and is never sent to clients.
type AppError struct {
	Code    string
	Message string
	Origin  error
}

func (e *AppError) Error() string {
	if e.Origin != nil {
		return e.Message + ": " + e.Origin.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Origin
}

// Standard error codes for the application
const (
	ErrInvalidInput       = "INVALID_INPUT"
	ErrInvalidCredentials = "INVALID_CREDENTIALS"
	ErrInvalidToken       = "INVALID_TOKEN"
	ErrForbidden          = "FORBIDDEN"
	ErrNotFound           = "NOT_FOUND"
	ErrDuplicate          = "DUPLICATE"
	ErrDatabase           = "DATABASE_ERROR"
)

func New(code, message string, origin error) *AppError {
	return &AppError{Code: code, Message: message, Origin: origin}
}

func NotFound(message string, origin error) *AppError {
	return &AppError{Code: ErrNotFound, Message: message, Origin: origin}
}

func Duplicate(message string, origin error) *AppError {
	return &AppError{Code: ErrDuplicate, Message: message, Origin: origin}
}

func InvalidInput(message string) *AppError {
	return &AppError{Code: ErrInvalidInput, Message: message}
}

func InvalidCredentials() *AppError {
	return &AppError{Code: ErrInvalidCredentials, Message: "invalid username or password"}
}

func Database(message string, origin error) *AppError {
	return &AppError{Code: ErrDatabase, Message: message, Origin: origin}
}

// IsCode reports whether err is an *AppError with the given code.
func IsCode(err error, code string) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// HTTPStatus converts an error code to the status sent to clients.
// Unknown codes (and non-AppErrors) fall through to 500.
func HTTPStatus(code string) int {
	switch code {
	case ErrInvalidInput:
		return http.StatusBadRequest
	case ErrInvalidCredentials, ErrInvalidToken:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrNotFound:
		return http.StatusNotFound
	case ErrDuplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
