package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("phone", "is required")

	if !errors.Is(err, ErrValidation) {
		t.Fatalf("errors.Is(%v, ErrValidation) = false, want true", err)
	}
	if got, want := err.Error(), "validation error: phone is required"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := fmt.Errorf("create order: %w", err)
	var ve *ValidationError
	if !errors.As(wrapped, &ve) {
		t.Fatal("errors.As did not find *ValidationError")
	}
	if ve.Field != "phone" {
		t.Errorf("Field = %q, want %q", ve.Field, "phone")
	}
}

func TestValidationErrorWithoutField(t *testing.T) {
	err := NewValidationError("", "order items must be a list")
	if got, want := err.Error(), "validation error: order items must be a list"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestStorage(t *testing.T) {
	cause := errors.New("disk full")
	err := Storage("insert order", cause)

	if !errors.Is(err, ErrStorage) {
		t.Error("expected ErrStorage classification")
	}
	if !errors.Is(err, cause) {
		t.Error("expected original cause to stay reachable")
	}
	if Storage("noop", nil) != nil {
		t.Error("Storage(nil) should return nil")
	}
}
