package services_test

import (
	"testing"

	"github.com/kjdelacruz/stagetally/internal/services"
)

func TestNormalizeWeight_FractionPassesThrough(t *testing.T) {
	got, err := services.NormalizeWeight(0.4)
	if err != nil {
		t.Fatalf("NormalizeWeight failed: %v", err)
	}
	if got != 0.4 {
		t.Errorf("expected 0.4, got %g", got)
	}
}

func TestNormalizeWeight_PercentIsScaled(t *testing.T) {
	got, err := services.NormalizeWeight(40)
	if err != nil {
		t.Fatalf("NormalizeWeight failed: %v", err)
	}
	if got != 0.4 {
		t.Errorf("expected 0.4, got %g", got)
	}
}

func TestNormalizeWeight_BoundaryOneIsFraction(t *testing.T) {
	// Exactly 1.0 means 100%, not 1%
	got, err := services.NormalizeWeight(1.0)
	if err != nil {
		t.Fatalf("NormalizeWeight failed: %v", err)
	}
	if got != 1.0 {
		t.Errorf("expected 1.0, got %g", got)
	}
}

func TestNormalizeWeight_NegativeRejected(t *testing.T) {
	if _, err := services.NormalizeWeight(-5); err == nil {
		t.Error("expected error for negative weight, got nil")
	}
}

func TestNormalizeWeight_ZeroAllowed(t *testing.T) {
	got, err := services.NormalizeWeight(0)
	if err != nil {
		t.Fatalf("NormalizeWeight failed: %v", err)
	}
	if got != 0 {
		t.Errorf("expected 0, got %g", got)
	}
}
