// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidCreds    = errors.New("invalid credentials")
	ErrTokenInvalid    = errors.New("token invalid")
	ErrTokenExpired    = errors.New("token expired")
	ErrLimitReached    = errors.New("limit reached")
	ErrConflictPresent = errors.New("resource still referenced")
)

// AppError carries the HTTP rendering of a failure alongside the wrapped cause.
type AppError struct {
	Err        error
	Message    string
	StatusCode int
	Code       string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, status int, code string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: status,
		Code:       code,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func ValidationError(message string) *AppError {
	return NewAppError(ErrInvalidInput, message, http.StatusBadRequest, "VALIDATION_ERROR")
}

func AuthError(message string) *AppError {
	if message == "" {
		message = "invalid credentials"
	}
	return NewAppError(ErrInvalidCreds, message, http.StatusUnauthorized, "INVALID_CREDENTIALS")
}

func UnauthorizedError(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return NewAppError(ErrUnauthorized, message, http.StatusUnauthorized, "UNAUTHORIZED")
}

func ForbiddenError(message string) *AppError {
	if message == "" {
		message = "forbidden"
	}
	return NewAppError(ErrForbidden, message, http.StatusForbidden, "FORBIDDEN")
}

func NotFoundError(resource string) *AppError {
	return NewAppError(
		ErrNotFound,
		fmt.Sprintf("%s not found", resource),
		http.StatusNotFound,
		"NOT_FOUND",
	)
}

func ConflictError(message string) *AppError {
	return NewAppError(ErrDuplicateKey, message, http.StatusConflict, "CONFLICT")
}

func DuplicateError(field string) *AppError {
	return ConflictError(fmt.Sprintf("%s already exists", field))
}

func TokenExpiredError() *AppError {
	return NewAppError(ErrTokenExpired, "session expired", http.StatusUnauthorized, "TOKEN_EXPIRED")
}

func TokenInvalidError() *AppError {
	return NewAppError(ErrTokenInvalid, "invalid session token", http.StatusUnauthorized, "TOKEN_INVALID")
}

func InternalError(err error) *AppError {
	return NewAppError(err, "internal server error", http.StatusInternalServerError, "INTERNAL_ERROR")
}

// FormatValidationError flattens validator output into one readable line.
func FormatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "email":
			msgs = append(msgs, field+" must be a valid email")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
		}
	}

	return strings.Join(msgs, "; ")
}

// ToAppError maps a service error onto the public taxonomy. Anything that is
// not a known sentinel becomes an internal error.
func ToAppError(err error, resource string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	msg := publicMessage(err)

	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrLimitReached):
		return ValidationError(msg)
	case errors.Is(err, ErrInvalidCreds):
		return AuthError("invalid email or password")
	case errors.Is(err, ErrTokenExpired):
		return TokenExpiredError()
	case errors.Is(err, ErrTokenInvalid):
		return TokenInvalidError()
	case errors.Is(err, ErrUnauthorized):
		return UnauthorizedError("")
	case errors.Is(err, ErrForbidden):
		return ForbiddenError(msg)
	case errors.Is(err, ErrNotFound), InvalidTextRepresentation(err):
		return NotFoundError(resource)
	case errors.Is(err, ErrDuplicateKey), errors.Is(err, ErrConflictPresent):
		return ConflictError(msg)
	default:
		return InternalError(err)
	}
}

// publicMessage strips the "op: op: " prefix chain and keeps the innermost
// human-readable reason that precedes the sentinel.
func publicMessage(err error) string {
	parts := strings.Split(err.Error(), ": ")
	if len(parts) >= 2 {
		return parts[len(parts)-2]
	}
	return parts[0]
}
