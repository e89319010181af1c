package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("Failed to reach database", cause)

	if !errors.Is(err, cause) {
		t.Error("expected the cause to be reachable through Unwrap")
	}

	var appErr *Error
	if !errors.As(fmt.Errorf("handler: %w", err), &appErr) {
		t.Fatal("expected errors.As to find the app error through wrapping")
	}
	if appErr.Code != CodeInternal {
		t.Errorf("expected INTERNAL, got %s", appErr.Code)
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[Code]int{
		CodeNotFound:   404,
		CodeForbidden:  403,
		CodeConflict:   409,
		CodeValidation: 400,
		CodeInternal:   500,
	}

	for code, want := range cases {
		if got := httpStatus(code); got != want {
			t.Errorf("httpStatus(%s) = %d, want %d", code, got, want)
		}
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(gorm.ErrDuplicatedKey) {
		t.Error("expected the translated gorm duplicate key error to match")
	}
	if !IsUniqueViolation(fmt.Errorf("create: %w", gorm.ErrDuplicatedKey)) {
		t.Error("expected a wrapped duplicate key error to match")
	}
	if IsUniqueViolation(errors.New("some other failure")) {
		t.Error("expected an unrelated error not to match")
	}
	if IsUniqueViolation(nil) {
		t.Error("expected nil not to match")
	}
}
