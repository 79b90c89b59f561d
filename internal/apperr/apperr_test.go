package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   New(KindNotFound, CodeAppointmentNotFound, "appointment not found"),
			expected: "APPOINTMENT_NOT_FOUND: appointment not found",
		},
		{
			name:     "with underlying error",
			appErr:   ErrStoreFailure.WithMessage("insert failed").Wrap(errors.New("connection reset")),
			expected: "STORE_FAILURE: insert failed (caused by: connection reset)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSentinelsMatchThroughCopies(t *testing.T) {
	err := ErrUnknownVaccine.WithDetails(map[string]any{"valid": []string{"pfizer"}})
	if !errors.Is(err, ErrUnknownVaccine) {
		t.Fatal("expected copy to match sentinel")
	}
	if errors.Is(err, ErrInsufficientDoses) {
		t.Fatal("copy matched an unrelated sentinel")
	}
	if ErrUnknownVaccine.Details != nil {
		t.Fatal("WithDetails mutated the sentinel")
	}

	wrapped := fmt.Errorf("reserve: %w", err)
	if !errors.Is(wrapped, ErrUnknownVaccine) {
		t.Fatal("expected wrapped copy to match sentinel")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("database connection failed")
	err := Store("failed to list vaccines", cause)
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
	if err.Kind != KindStore {
		t.Errorf("expected kind %s, got %s", KindStore, err.Kind)
	}
}

func TestStorePassesThroughCodedErrors(t *testing.T) {
	err := Store("reserve failed", fmt.Errorf("tx: %w", ErrNoAvailability))
	if err.Code != CodeNoAvailability {
		t.Errorf("expected %s, got %s", CodeNoAvailability, err.Code)
	}
}

func TestValidation(t *testing.T) {
	err := Validation("bad count", map[string]any{"field": "doses"})
	if err.Kind != KindValidation {
		t.Errorf("expected kind %s, got %s", KindValidation, err.Kind)
	}
	if err.Message != "bad count" {
		t.Errorf("expected message 'bad count', got %s", err.Message)
	}
	if err.Details["field"] != "doses" {
		t.Errorf("expected details to carry field")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", ErrInvalidDate, KindValidation},
		{"auth", ErrNotLoggedIn, KindAuth},
		{"not found", ErrNoAvailability, KindNotFound},
		{"conflict", ErrDuplicateUsername, KindConflict},
		{"wrapped conflict", fmt.Errorf("x: %w", ErrInsufficientDoses), KindConflict},
		{"plain error", errors.New("boom"), KindStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf = %s, want %s", got, tt.want)
			}
		})
	}
}
