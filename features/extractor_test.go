package features

import (
	"math"
	"testing"
	"time"

	"github.com/audiomesh/trackprint/transcode"
)

// syntheticTrack builds a musically plausible mono signal: a sustained
// A4 tone with clicks every half second and rising loudness.
func syntheticTrack(seconds float64, sampleRate int) *transcode.AudioData {
	length := int(seconds * float64(sampleRate))
	pcm := make([]float64, length)

	for i := range pcm {
		gain := 0.3 + 0.4*float64(i)/float64(length)
		pcm[i] = gain * math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate))
	}
	for i := 1024; i < length; i += sampleRate / 2 {
		pcm[i] += 0.8
	}

	return &transcode.AudioData{
		PCM:        pcm,
		SampleRate: sampleRate,
		Channels:   1,
		Duration:   time.Duration(seconds * float64(time.Second)),
		Path:       "synthetic.wav",
	}
}

func checkFinite(t *testing.T, name string, values map[string]float64) {
	t.Helper()
	for field, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("%s %s not finite: %v", name, field, v)
		}
	}
}

func TestExtractFullRecord(t *testing.T) {
	audio := syntheticTrack(10, 22050)

	e := NewExtractor(nil)
	record, err := e.Extract(audio, 30)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if math.Abs(record.Metadata.Duration-10) > 0.01 {
		t.Fatalf("duration: got %v, want about 10", record.Metadata.Duration)
	}
	if record.Metadata.SampleRate != 22050 {
		t.Fatalf("sample rate: got %d, want 22050", record.Metadata.SampleRate)
	}

	if record.Rhythm == nil || record.Harmony == nil || record.Energy == nil ||
		record.Spectral == nil || record.Frequency == nil {
		t.Fatalf("record missing categories: %+v", record)
	}

	checkFinite(t, "rhythm", map[string]float64{
		"tempo":             record.Rhythm.Tempo,
		"onset_density":     record.Rhythm.OnsetDensity,
		"syncopation_level": record.Rhythm.SyncopationLevel,
		"rhythmic_variance": record.Rhythm.RhythmicVariance,
		"beat_strength":     record.Rhythm.BeatStrength,
	})
	checkFinite(t, "harmony", map[string]float64{
		"chroma_variance":      record.Harmony.ChromaVariance,
		"key_strength":         record.Harmony.KeyStrength,
		"harmonic_change_rate": record.Harmony.HarmonicChangeRate,
		"tonal_stability":      record.Harmony.TonalStability,
	})
	checkFinite(t, "energy", map[string]float64{
		"energy_range": record.Energy.EnergyRange,
		"avg_energy":   record.Energy.AvgEnergy,
		"energy_trend": record.Energy.EnergyTrend,
		"peak_density": record.Energy.PeakDensity,
	})
	checkFinite(t, "spectral", map[string]float64{
		"avg_brightness":      record.Spectral.AvgBrightness,
		"brightness_variance": record.Spectral.BrightnessVariance,
		"avg_rolloff":         record.Spectral.AvgRolloff,
		"avg_bandwidth":       record.Spectral.AvgBandwidth,
	})

	if record.Rhythm.Tempo < 40 || record.Rhythm.Tempo > 200 {
		t.Fatalf("tempo out of range: %v", record.Rhythm.Tempo)
	}
	if record.Energy.AvgEnergy <= 0 {
		t.Fatalf("avg energy should be positive for a loud signal: %v", record.Energy.AvgEnergy)
	}
	if record.Energy.EnergyTrend <= 0 {
		t.Fatalf("energy trend should be positive for rising loudness: %v", record.Energy.EnergyTrend)
	}
	if record.Spectral.AvgBrightness <= 0 {
		t.Fatalf("brightness should be positive: %v", record.Spectral.AvgBrightness)
	}

	sum := record.Frequency.LowProportion + record.Frequency.MidProportion + record.Frequency.HighProportion
	if sum < 0.95 || sum > 1.05 {
		t.Fatalf("band proportions sum: got %v, want about 1", sum)
	}
}

func TestExtractTruncatesToMaxDuration(t *testing.T) {
	audio := syntheticTrack(10, 22050)

	e := NewExtractor(nil)
	record, err := e.Extract(audio, 4)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if record.Metadata.Duration > 4.001 {
		t.Fatalf("duration after truncation: got %v, want <= 4", record.Metadata.Duration)
	}
}

func TestExtractDeterministic(t *testing.T) {
	audio := syntheticTrack(5, 22050)

	e := NewExtractor(nil)
	a, err := e.Extract(audio, 30)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	b, err := e.Extract(audio, 30)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	va, vb := EmbeddingVector(a), EmbeddingVector(b)
	for i := range va {
		if va[i] != vb[i] {
			t.Fatalf("embedding slot %d differs between runs: %v vs %v", i, va[i], vb[i])
		}
	}
}

func TestExtractSilence(t *testing.T) {
	audio := &transcode.AudioData{
		PCM:        make([]float64, 5*22050),
		SampleRate: 22050,
		Channels:   1,
		Duration:   5 * time.Second,
		Path:       "silence.wav",
	}

	e := NewExtractor(nil)
	record, err := e.Extract(audio, 30)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	// Silence has no onsets: complexity metrics stay zero.
	if record.Rhythm.OnsetDensity != 0 || record.Rhythm.SyncopationLevel != 0 || record.Rhythm.RhythmicVariance != 0 {
		t.Fatalf("silent rhythm metrics should be zero: %+v", record.Rhythm)
	}

	// Silent bands fall back to neutral proportions.
	if math.Abs(record.Frequency.LowProportion-1.0/3.0) > 1e-9 ||
		record.Frequency.MidLowRatio != 1.0 || record.Frequency.HighMidRatio != 1.0 {
		t.Fatalf("silent frequency features should be neutral: %+v", record.Frequency)
	}

	vec := EmbeddingVector(record)
	for i, v := range vec {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("embedding slot %d not finite for silence: %v", i, v)
		}
	}
}

func TestExtractErrors(t *testing.T) {
	e := NewExtractor(nil)

	t.Run("nil audio", func(t *testing.T) {
		if _, err := e.Extract(nil, 30); err == nil {
			t.Fatalf("nil audio should fail")
		}
	})

	t.Run("non-positive max duration", func(t *testing.T) {
		if _, err := e.Extract(syntheticTrack(1, 22050), 0); err == nil {
			t.Fatalf("zero max duration should fail")
		}
	})
}
