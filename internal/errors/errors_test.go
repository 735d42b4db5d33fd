package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFound(t *testing.T) {
	err := NotFound("event not found")

	if err.Kind != ErrNotFound {
		t.Errorf("expected Kind to be ErrNotFound (%d), got %d", ErrNotFound, err.Kind)
	}
	if err.Message != "event not found" {
		t.Errorf("expected Message to be 'event not found', got '%s'", err.Message)
	}
	if err.Err != nil {
		t.Errorf("expected Err to be nil, got %v", err.Err)
	}
}

func TestNotFoundf(t *testing.T) {
	err := NotFoundf("contestant %d not found", 123)

	if err.Kind != ErrNotFound {
		t.Errorf("expected Kind to be ErrNotFound (%d), got %d", ErrNotFound, err.Kind)
	}
	if err.Message != "contestant 123 not found" {
		t.Errorf("expected Message to be 'contestant 123 not found', got '%s'", err.Message)
	}
}

func TestValidation(t *testing.T) {
	err := Validation("weight cannot be negative")

	if err.Kind != ErrValidation {
		t.Errorf("expected Kind to be ErrValidation (%d), got %d", ErrValidation, err.Kind)
	}
	if err.Message != "weight cannot be negative" {
		t.Errorf("expected Message to be 'weight cannot be negative', got '%s'", err.Message)
	}
}

func TestValidationf(t *testing.T) {
	err := Validationf("question number must be between 1 and %d", 10)

	if err.Kind != ErrValidation {
		t.Errorf("expected Kind to be ErrValidation (%d), got %d", ErrValidation, err.Kind)
	}
	if err.Message != "question number must be between 1 and 10" {
		t.Errorf("unexpected message: %s", err.Message)
	}
}

func TestConflict(t *testing.T) {
	err := Conflict("candidate number already taken")

	if err.Kind != ErrConflict {
		t.Errorf("expected Kind to be ErrConflict (%d), got %d", ErrConflict, err.Kind)
	}
}

func TestConflictf(t *testing.T) {
	err := Conflictf("order index %d already in use", 3)

	if err.Kind != ErrConflict {
		t.Errorf("expected Kind to be ErrConflict (%d), got %d", ErrConflict, err.Kind)
	}
	if err.Message != "order index 3 already in use" {
		t.Errorf("unexpected message: %s", err.Message)
	}
}

func TestState(t *testing.T) {
	err := State("final round is active")

	if err.Kind != ErrState {
		t.Errorf("expected Kind to be ErrState (%d), got %d", ErrState, err.Kind)
	}
}

func TestStatef(t *testing.T) {
	err := Statef("segment %d is locked", 7)

	if err.Kind != ErrState {
		t.Errorf("expected Kind to be ErrState (%d), got %d", ErrState, err.Kind)
	}
	if err.Message != "segment 7 is locked" {
		t.Errorf("unexpected message: %s", err.Message)
	}
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("missing required field")

	if err.Kind != ErrInvalidInput {
		t.Errorf("expected Kind to be ErrInvalidInput (%d), got %d", ErrInvalidInput, err.Kind)
	}
}

func TestInternal(t *testing.T) {
	underlying := fmt.Errorf("db locked")
	err := Internal(underlying)

	if err.Kind != ErrInternal {
		t.Errorf("expected Kind to be ErrInternal (%d), got %d", ErrInternal, err.Kind)
	}
	if err.Err != underlying {
		t.Errorf("expected Err to be the underlying error, got %v", err.Err)
	}
}

func TestError_StringWithWrappedError(t *testing.T) {
	underlying := fmt.Errorf("disk full")
	err := Wrap(underlying, ErrInternal, "failed to save score")

	expected := "failed to save score: disk full"
	if err.Error() != expected {
		t.Errorf("expected '%s', got '%s'", expected, err.Error())
	}
}

func TestError_StringWithoutWrappedError(t *testing.T) {
	err := NotFound("not here")

	if err.Error() != "not here" {
		t.Errorf("expected 'not here', got '%s'", err.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := fmt.Errorf("root cause")
	err := Wrap(underlying, ErrConflict, "wrapper")

	if !errors.Is(err, underlying) {
		t.Error("expected errors.Is to find the underlying error")
	}
	if err.Unwrap() != underlying {
		t.Errorf("expected Unwrap to return the underlying error, got %v", err.Unwrap())
	}
}

func TestError_As(t *testing.T) {
	var target *Error
	wrapped := fmt.Errorf("outer: %w", Conflict("inner"))

	if !errors.As(wrapped, &target) {
		t.Fatal("expected errors.As to find *Error")
	}
	if target.Kind != ErrConflict {
		t.Errorf("expected Kind ErrConflict, got %d", target.Kind)
	}
}
