// Package apperrors defines the error taxonomy shared by every handler:
// NOT_FOUND (missing entity or missing profile), FORBIDDEN (role or
// ownership), CONFLICT (uniqueness or status machine), VALIDATION (bad
// input). Checks always run before writes, so a rejected request never
// leaves a partial mutation behind.
package apperrors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Code string

const (
	CodeNotFound   Code = "NOT_FOUND"
	CodeForbidden  Code = "FORBIDDEN"
	CodeConflict   Code = "CONFLICT"
	CodeValidation Code = "VALIDATION"
	CodeInternal   Code = "INTERNAL"
)

type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

func Internal(message string, err error) *Error {
	return &Error{Code: CodeInternal, Message: message, Err: err}
}

func httpStatus(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeConflict:
		return http.StatusConflict
	case CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as the JSON error response. Unrecognized errors are
// logged and surfaced as a plain 500.
func Respond(ctx *gin.Context, err error) {
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Code == CodeInternal {
			logrus.WithError(appErr.Err).Error(appErr.Message)
		}
		ctx.JSON(httpStatus(appErr.Code), gin.H{"error": appErr.Message, "code": appErr.Code})
		return
	}

	logrus.WithError(err).Error("Unhandled error")
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": CodeInternal})
}

// IsUniqueViolation reports whether err is a duplicate-key failure from the
// database, under either the gorm error translation or a raw pq error.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
