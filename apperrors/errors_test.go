package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NewValidationError("bad", "a", "b"), http.StatusBadRequest},
		{NewNotFoundError("recipe", 3), http.StatusNotFound},
		{NewConflictError("exists"), http.StatusConflict},
		{NewDatabaseError(errors.New("locked")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.err.HTTPStatus(); got != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.err.Type, got, tt.want)
		}
	}
}

func TestIsTypeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("loading week: %w", NewNotFoundError("campus", 9))
	if !IsType(err, ErrorTypeNotFound) {
		t.Error("wrapped not-found error not recognised")
	}
	if IsType(errors.New("plain"), ErrorTypeNotFound) {
		t.Error("plain error matched")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("errors.Is should match by type and code")
	}
}

func TestValidationErrorListsViolations(t *testing.T) {
	err := NewValidationError("Invalid generation request", "first", "second")
	if len(err.Errors) != 2 {
		t.Fatalf("errors = %v", err.Errors)
	}
	if got := err.Error(); got != "validation: Invalid generation request: first; second" {
		t.Errorf("Error() = %q", got)
	}
}
