package windowing

import (
	"math"
	"testing"
)

func TestHannCoefficients(t *testing.T) {
	size := 8
	h := NewHann(size)
	coeffs := h.GetCoefficients()

	if len(coeffs) != size {
		t.Fatalf("coefficient count: got %d, want %d", len(coeffs), size)
	}
	if coeffs[0] != 0 {
		t.Fatalf("periodic Hann should start at 0, got %v", coeffs[0])
	}
	// Periodic form: peak at size/2.
	if math.Abs(coeffs[size/2]-1.0) > 1e-12 {
		t.Fatalf("midpoint coefficient: got %v, want 1", coeffs[size/2])
	}
}

func TestHannApplyInPlace(t *testing.T) {
	size := 16
	h := NewHann(size)

	signal := make([]float64, size)
	for i := range signal {
		signal[i] = 1.0
	}
	if err := h.ApplyInPlace(signal); err != nil {
		t.Fatalf("apply: %v", err)
	}

	coeffs := h.GetCoefficients()
	for i := range signal {
		if signal[i] != coeffs[i] {
			t.Fatalf("sample %d: got %v, want %v", i, signal[i], coeffs[i])
		}
	}

	if err := h.ApplyInPlace(make([]float64, size-1)); err == nil {
		t.Fatalf("length mismatch should fail")
	}
}
