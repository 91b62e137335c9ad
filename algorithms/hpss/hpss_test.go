package hpss

import (
	"math"
	"testing"
)

// sineWithClicks mixes a sustained tone with periodic impulses.
func sineWithClicks(sampleRate, length int) []float64 {
	signal := make([]float64, length)
	for i := range signal {
		signal[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate))
	}
	for i := 1024; i < length; i += sampleRate / 2 {
		signal[i] += 1.0
	}
	return signal
}

func TestSeparateLengthPreserved(t *testing.T) {
	sampleRate := 22050
	signal := sineWithClicks(sampleRate, 3*sampleRate)

	h := NewHPSS(sampleRate)
	harmonic, percussive, err := h.Separate(signal)
	if err != nil {
		t.Fatalf("separate: %v", err)
	}

	if len(harmonic) != len(signal) {
		t.Fatalf("harmonic length: got %d, want %d", len(harmonic), len(signal))
	}
	if len(percussive) != len(signal) {
		t.Fatalf("percussive length: got %d, want %d", len(percussive), len(signal))
	}
}

func TestSeparateSplitsToneAndClicks(t *testing.T) {
	sampleRate := 22050
	signal := sineWithClicks(sampleRate, 3*sampleRate)

	h := NewHPSS(sampleRate)
	harmonic, percussive, err := h.Separate(signal)
	if err != nil {
		t.Fatalf("separate: %v", err)
	}

	// The sustained tone should carry most of its energy in the harmonic
	// component over a steady region between clicks.
	energy := func(s []float64, from, to int) float64 {
		sum := 0.0
		for i := from; i < to; i++ {
			sum += s[i] * s[i]
		}
		return sum
	}

	// Clicks land at 1024 + k*sampleRate/2; this range stays clear of
	// them and of the analysis window smearing around each one.
	from, to := 26000, 30096
	if energy(harmonic, from, to) <= energy(percussive, from, to) {
		t.Fatalf("harmonic energy should dominate a steady tonal region")
	}
}

func TestSeparateDeterministic(t *testing.T) {
	sampleRate := 22050
	signal := sineWithClicks(sampleRate, 2*sampleRate)

	h := NewHPSS(sampleRate)
	h1, p1, err := h.Separate(signal)
	if err != nil {
		t.Fatalf("separate: %v", err)
	}
	h2, p2, err := h.Separate(signal)
	if err != nil {
		t.Fatalf("separate: %v", err)
	}

	for i := range h1 {
		if h1[i] != h2[i] || p1[i] != p2[i] {
			t.Fatalf("separation not deterministic at sample %d", i)
		}
	}
}

func TestSeparateShortSignal(t *testing.T) {
	signal := []float64{0.1, 0.2, 0.3}

	h := NewHPSS(22050)
	harmonic, percussive, err := h.Separate(signal)
	if err != nil {
		t.Fatalf("separate: %v", err)
	}

	for i := range signal {
		if harmonic[i] != signal[i] || percussive[i] != signal[i] {
			t.Fatalf("short signal should pass through unchanged")
		}
	}
}

func TestSeparateEmptySignal(t *testing.T) {
	h := NewHPSS(22050)
	if _, _, err := h.Separate(nil); err == nil {
		t.Fatalf("empty signal should fail")
	}
}
