package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorCode classifies a failure for the HTTP boundary.
type ErrorCode string

const (
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeStorageIO        ErrorCode = "STORAGE_IO"
	CodeDatabaseError    ErrorCode = "DATABASE_ERROR"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

// AppError is the single error type crossing package boundaries.
type AppError struct {
	Code     ErrorCode
	Message  string
	HTTPCode int
	Err      error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{Code: code, Message: message, HTTPCode: httpCode}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{Code: code, Message: message, HTTPCode: httpCode, Err: err}
}

func Validation(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, resource+" not found", http.StatusNotFound)
}

// NotFoundMessage is NotFound with a caller-worded message.
func NotFoundMessage(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func Duplicate(message string, err error) *AppError {
	return Wrap(err, CodeAlreadyExists, message, http.StatusBadRequest)
}

func StorageIO(message string, err error) *AppError {
	return Wrap(err, CodeStorageIO, message, http.StatusInternalServerError)
}

func Database(message string, err error) *AppError {
	return Wrap(err, CodeDatabaseError, message, http.StatusInternalServerError)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func Internal(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

// FromValidator turns validator.ValidationErrors into one readable message.
// Other errors are returned as a generic validation failure.
func FromValidator(err error) *AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Wrap(err, CodeValidationFailed, err.Error(), http.StatusBadRequest)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "notblank":
			msgs = append(msgs, fe.Field()+" is required")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email")
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return Validation(strings.Join(msgs, "; "))
}

// As returns the AppError inside err, if any.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func hasCode(err error, code ErrorCode) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

func IsValidation(err error) bool { return hasCode(err, CodeValidationFailed) }
func IsNotFound(err error) bool   { return hasCode(err, CodeNotFound) }
func IsDuplicate(err error) bool  { return hasCode(err, CodeAlreadyExists) }
func IsStorageIO(err error) bool  { return hasCode(err, CodeStorageIO) }
func IsDatabase(err error) bool   { return hasCode(err, CodeDatabaseError) }

// HTTPStatus maps any error to a response status. Unknown errors are 500.
func HTTPStatus(err error) int {
	if appErr, ok := As(err); ok && appErr.HTTPCode != 0 {
		return appErr.HTTPCode
	}
	return http.StatusInternalServerError
}
