package chroma

import (
	"math"
	"testing"
)

func TestChromagramPureTone(t *testing.T) {
	sampleRate := 22050
	signal := make([]float64, sampleRate)
	for i := range signal {
		// A4: pitch class 9
		signal[i] = math.Sin(2 * math.Pi * 440 * float64(i) / float64(sampleRate))
	}

	cg := NewChromagram(sampleRate)
	chromagram, err := cg.Compute(signal, 4096, 1024)
	if err != nil {
		t.Fatalf("chromagram: %v", err)
	}
	if len(chromagram) == 0 {
		t.Fatalf("empty chromagram")
	}

	frame := chromagram[len(chromagram)/2]
	if len(frame) != 12 {
		t.Fatalf("chroma bins: got %d, want 12", len(frame))
	}

	best := 0
	for i, v := range frame {
		if v > frame[best] {
			best = i
		}
	}
	if best != 9 {
		t.Fatalf("dominant pitch class: got %d, want 9 (A)", best)
	}

	sum := 0.0
	for _, v := range frame {
		sum += v
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("frame energy sum: got %v, want 1", sum)
	}
}

func TestChromagramShortSignal(t *testing.T) {
	cg := NewChromagram(22050)
	chromagram, err := cg.Compute(make([]float64, 100), 2048, 512)
	if err != nil {
		t.Fatalf("chromagram: %v", err)
	}
	if len(chromagram) != 0 {
		t.Fatalf("short signal: got %d frames, want 0", len(chromagram))
	}
}
