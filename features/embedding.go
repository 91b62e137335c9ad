package features

import (
	"math"

	"github.com/audiomesh/trackprint/features/extractors"
)

// EmbeddingDimension is the fixed length of every embedding vector.
// Vectors of differing lengths are meaningless under a distance metric,
// so this never varies with the categories present in the record.
const EmbeddingDimension = 19

// embeddingTransform maps one record field to one vector slot
type embeddingTransform struct {
	divisor      float64
	defaultValue float64
	get          func(r *FeatureRecord) (float64, bool)
}

// embeddingTable is the fixed field-to-index mapping. Order and divisors
// are frozen: changing either silently invalidates every stored vector.
// The divisors are empirically chosen normalization constants.
var embeddingTable = []embeddingTransform{
	{200.0, 120, func(r *FeatureRecord) (float64, bool) { return rhythmField(r, func(f *extractors.RhythmFeatures) float64 { return f.Tempo }) }},
	{15.0, 0, func(r *FeatureRecord) (float64, bool) { return rhythmField(r, func(f *extractors.RhythmFeatures) float64 { return f.OnsetDensity }) }},
	{1.0, 0, func(r *FeatureRecord) (float64, bool) { return rhythmField(r, func(f *extractors.RhythmFeatures) float64 { return f.SyncopationLevel }) }},
	{0.1, 0, func(r *FeatureRecord) (float64, bool) { return rhythmField(r, func(f *extractors.RhythmFeatures) float64 { return f.RhythmicVariance }) }},
	{0.1, 0, func(r *FeatureRecord) (float64, bool) { return harmonyField(r, func(f *extractors.HarmonyFeatures) float64 { return f.ChromaVariance }) }},
	{3.0, 1, func(r *FeatureRecord) (float64, bool) { return harmonyField(r, func(f *extractors.HarmonyFeatures) float64 { return f.KeyStrength }) }},
	{0.005, 0, func(r *FeatureRecord) (float64, bool) { return harmonyField(r, func(f *extractors.HarmonyFeatures) float64 { return f.HarmonicChangeRate }) }},
	{1.0, 0.5, func(r *FeatureRecord) (float64, bool) { return harmonyField(r, func(f *extractors.HarmonyFeatures) float64 { return f.TonalStability }) }},
	{1.0, 0, func(r *FeatureRecord) (float64, bool) { return energyField(r, func(f *extractors.EnergyFeatures) float64 { return f.EnergyRange }) }},
	{1.0, 0, func(r *FeatureRecord) (float64, bool) { return energyField(r, func(f *extractors.EnergyFeatures) float64 { return f.AvgEnergy }) }},
	{0.001, 0, func(r *FeatureRecord) (float64, bool) { return energyField(r, func(f *extractors.EnergyFeatures) float64 { return math.Abs(f.EnergyTrend) }) }},
	{25.0, 0, func(r *FeatureRecord) (float64, bool) { return energyField(r, func(f *extractors.EnergyFeatures) float64 { return f.PeakDensity }) }},
	{8000.0, 1000, func(r *FeatureRecord) (float64, bool) { return spectralField(r, func(f *extractors.SpectralFeatures) float64 { return f.AvgBrightness }) }},
	{2000000.0, 0, func(r *FeatureRecord) (float64, bool) { return spectralField(r, func(f *extractors.SpectralFeatures) float64 { return f.BrightnessVariance }) }},
	{1.0, 0.33, func(r *FeatureRecord) (float64, bool) { return frequencyField(r, func(f *extractors.FrequencyFeatures) float64 { return f.LowProportion }) }},
	{1.0, 0.33, func(r *FeatureRecord) (float64, bool) { return frequencyField(r, func(f *extractors.FrequencyFeatures) float64 { return f.MidProportion }) }},
	{1.0, 0.33, func(r *FeatureRecord) (float64, bool) { return frequencyField(r, func(f *extractors.FrequencyFeatures) float64 { return f.HighProportion }) }},
	{1.0, 1.0, func(r *FeatureRecord) (float64, bool) { return frequencyField(r, func(f *extractors.FrequencyFeatures) float64 { return f.MidLowRatio }) }},
	{1.0, 1.0, func(r *FeatureRecord) (float64, bool) { return frequencyField(r, func(f *extractors.FrequencyFeatures) float64 { return f.HighMidRatio }) }},
}

// EmbeddingVector maps a feature record to a fixed-length numeric vector
// suitable for nearest-neighbor comparison. Every slot holds the source
// field divided by its scale constant, or the documented default when the
// category was filtered out. The result always has EmbeddingDimension
// elements; values are not clamped, so extreme inputs may exceed 1.
func EmbeddingVector(record *FeatureRecord) []float64 {
	vector := make([]float64, len(embeddingTable))

	for i, transform := range embeddingTable {
		value, ok := transform.get(record)
		if !ok {
			value = transform.defaultValue
		}
		vector[i] = value / transform.divisor
	}

	return vector
}

func rhythmField(r *FeatureRecord, get func(*extractors.RhythmFeatures) float64) (float64, bool) {
	if r == nil || r.Rhythm == nil {
		return 0, false
	}
	return get(r.Rhythm), true
}

func harmonyField(r *FeatureRecord, get func(*extractors.HarmonyFeatures) float64) (float64, bool) {
	if r == nil || r.Harmony == nil {
		return 0, false
	}
	return get(r.Harmony), true
}

func energyField(r *FeatureRecord, get func(*extractors.EnergyFeatures) float64) (float64, bool) {
	if r == nil || r.Energy == nil {
		return 0, false
	}
	return get(r.Energy), true
}

func spectralField(r *FeatureRecord, get func(*extractors.SpectralFeatures) float64) (float64, bool) {
	if r == nil || r.Spectral == nil {
		return 0, false
	}
	return get(r.Spectral), true
}

func frequencyField(r *FeatureRecord, get func(*extractors.FrequencyFeatures) float64) (float64, bool) {
	if r == nil || r.Frequency == nil {
		return 0, false
	}
	return get(r.Frequency), true
}
