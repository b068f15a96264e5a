// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"net/http"
)

// Sentinel errors returned by repositories and services. Handlers classify
// them into AppError responses at the boundary; nothing escapes unwrapped.
var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateEmail  = errors.New("duplicate email")
	ErrNotActive       = errors.New("account not active")
	ErrBadCredentials  = errors.New("bad credentials")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrTokenInvalid    = errors.New("token invalid")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidCode     = errors.New("invalid auth code")
	ErrInvalidInput    = errors.New("invalid input")
)

type AppError struct {
	Err     error
	Message string
	Status  int
	Code    string
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, status int, code string) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
		Status:  status,
		Code:    code,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(
		ErrUnauthenticated,
		message,
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
	)
}

func TokenInvalidError() *AppError {
	return NewAppError(
		ErrTokenInvalid,
		"Invalid token",
		http.StatusUnauthorized,
		"TOKEN_INVALID",
	)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrForbidden, message, http.StatusForbidden, "FORBIDDEN")
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrNotFound, message, http.StatusNotFound, "NOT_FOUND")
}

func NotActiveError() *AppError {
	return NewAppError(
		ErrNotActive,
		"This account is not yet active.",
		http.StatusForbidden,
		"NOT_ACTIVE",
	)
}

func BadCredentialsError() *AppError {
	return NewAppError(
		ErrBadCredentials,
		"Incorrect password.",
		http.StatusBadRequest,
		"BAD_CREDENTIALS",
	)
}

func DuplicateEmailError() *AppError {
	return NewAppError(
		ErrDuplicateEmail,
		"This email is already registered.",
		http.StatusConflict,
		"DUPLICATE_EMAIL",
	)
}

func InvalidCodeError() *AppError {
	return NewAppError(
		ErrInvalidCode,
		"Invalid authentication code.",
		http.StatusNotFound,
		"INVALID_CODE",
	)
}

func BadRequestError(message string) *AppError {
	return NewAppError(
		ErrInvalidInput,
		message,
		http.StatusBadRequest,
		"BAD_REQUEST",
	)
}
