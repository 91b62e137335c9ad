package extractors

import (
	"math"
	"testing"

	"github.com/audiomesh/trackprint/algorithms/temporal"
)

func sine(freq float64, sampleRate, length int) []float64 {
	signal := make([]float64, length)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return signal
}

func TestRhythmExtractorClickTrain(t *testing.T) {
	sampleRate := 22050
	length := 5 * sampleRate
	percussive := make([]float64, length)
	for i := 1024; i < length; i += sampleRate / 2 {
		percussive[i] = 1.0
	}

	re := NewRhythmExtractor(2048, 512)
	features, err := re.Extract(percussive, sampleRate, 5.0)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	// Clicks every 0.5s: about 2 onsets per second.
	if features.OnsetDensity < 1.0 || features.OnsetDensity > 3.0 {
		t.Fatalf("onset density: got %v, want about 2", features.OnsetDensity)
	}
	if features.Tempo < 40 || features.Tempo > 200 {
		t.Fatalf("tempo out of range: %v", features.Tempo)
	}
	if features.BeatStrength <= 0 {
		t.Fatalf("beat strength: got %v, want > 0", features.BeatStrength)
	}
	// Regular intervals: very low rhythmic variance.
	if features.RhythmicVariance > 0.01 {
		t.Fatalf("rhythmic variance for regular clicks: got %v, want near 0", features.RhythmicVariance)
	}
}

func TestRhythmExtractorDegenerateInput(t *testing.T) {
	sampleRate := 22050

	re := NewRhythmExtractor(2048, 512)
	features, err := re.Extract(make([]float64, 3*sampleRate), sampleRate, 3.0)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if features.OnsetDensity != 0 || features.SyncopationLevel != 0 || features.RhythmicVariance != 0 {
		t.Fatalf("silent signal complexity metrics should be zero: %+v", features)
	}
	if features.Tempo != temporal.DefaultTempo {
		t.Fatalf("silent signal tempo: got %v, want %v", features.Tempo, temporal.DefaultTempo)
	}
}

func TestHarmonyExtractorPureTone(t *testing.T) {
	sampleRate := 22050
	harmonic := sine(440, sampleRate, 5*sampleRate)

	he := NewHarmonyExtractor(sampleRate, 2048, 512)
	features, err := he.Extract(harmonic, 5.0)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	// A single sustained pitch class concentrates the profile well above
	// the mean.
	if features.KeyStrength < 2.0 {
		t.Fatalf("key strength for a pure tone: got %v, want >= 2", features.KeyStrength)
	}
	// The pitch content never changes.
	if features.HarmonicChangeRate > 0.1 {
		t.Fatalf("harmonic change rate for a steady tone: got %v, want near 0", features.HarmonicChangeRate)
	}
	if math.IsNaN(features.TonalStability) {
		t.Fatalf("tonal stability is NaN")
	}
}

func TestHarmonyExtractorShortSignal(t *testing.T) {
	he := NewHarmonyExtractor(22050, 2048, 512)
	features, err := he.Extract(make([]float64, 100), 0.005)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if features.TonalStability != 1.0 {
		t.Fatalf("short signal tonal stability: got %v, want 1", features.TonalStability)
	}
	if features.KeyStrength != 0 || features.ChromaVariance != 0 || features.HarmonicChangeRate != 0 {
		t.Fatalf("short signal harmony metrics should be zero: %+v", features)
	}
}

func TestEnergyExtractor(t *testing.T) {
	sampleRate := 22050
	length := 5 * sampleRate

	t.Run("rising loudness", func(t *testing.T) {
		signal := make([]float64, length)
		for i := range signal {
			gain := 0.1 + 0.8*float64(i)/float64(length)
			signal[i] = gain * math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate))
		}

		ee := NewEnergyExtractor(2048, 512)
		features := ee.Extract(signal, 5.0)

		if features.AvgEnergy <= 0 {
			t.Fatalf("avg energy: got %v, want > 0", features.AvgEnergy)
		}
		if features.EnergyTrend <= 0 {
			t.Fatalf("energy trend for rising loudness: got %v, want > 0", features.EnergyTrend)
		}
		if features.EnergyRange <= 0 {
			t.Fatalf("energy range: got %v, want > 0", features.EnergyRange)
		}
	})

	t.Run("short signal", func(t *testing.T) {
		ee := NewEnergyExtractor(2048, 512)
		features := ee.Extract(make([]float64, 100), 0.005)
		if features.AvgEnergy != 0 || features.EnergyRange != 0 || features.EnergyTrend != 0 || features.PeakDensity != 0 {
			t.Fatalf("short signal energy metrics should be zero: %+v", features)
		}
	})
}

func TestSpectralExtractorBrightness(t *testing.T) {
	sampleRate := 22050
	length := 3 * sampleRate

	se := NewSpectralExtractor(sampleRate, 2048, 512)

	low, err := se.Extract(sine(220, sampleRate, length))
	if err != nil {
		t.Fatalf("extract low: %v", err)
	}
	high, err := se.Extract(sine(4000, sampleRate, length))
	if err != nil {
		t.Fatalf("extract high: %v", err)
	}

	if low.AvgBrightness >= high.AvgBrightness {
		t.Fatalf("brightness ordering: low tone %v should be below high tone %v",
			low.AvgBrightness, high.AvgBrightness)
	}
	if high.AvgRolloff <= low.AvgRolloff {
		t.Fatalf("rolloff ordering: got low %v, high %v", low.AvgRolloff, high.AvgRolloff)
	}
}

func TestFrequencyExtractorBandBalance(t *testing.T) {
	sampleRate := 22050
	length := 3 * sampleRate

	fe := NewFrequencyExtractor(sampleRate, 2048, 512)

	t.Run("bass-heavy signal", func(t *testing.T) {
		features, err := fe.Extract(sine(100, sampleRate, length))
		if err != nil {
			t.Fatalf("extract: %v", err)
		}
		if features.LowProportion <= features.MidProportion || features.LowProportion <= features.HighProportion {
			t.Fatalf("low band should dominate for a 100 Hz tone: %+v", features)
		}
		sum := features.LowProportion + features.MidProportion + features.HighProportion
		if math.Abs(sum-1.0) > 1e-9 {
			t.Fatalf("proportions sum: got %v, want 1", sum)
		}
	})

	t.Run("silent signal neutral", func(t *testing.T) {
		features, err := fe.Extract(make([]float64, length))
		if err != nil {
			t.Fatalf("extract: %v", err)
		}
		if math.Abs(features.LowProportion-1.0/3.0) > 1e-9 ||
			features.MidLowRatio != 1.0 || features.HighMidRatio != 1.0 {
			t.Fatalf("silent signal should yield neutral balance: %+v", features)
		}
	})
}
