package features

import (
	"github.com/audiomesh/trackprint/features/extractors"
)

// Metadata describes the analyzed signal
type Metadata struct {
	Duration   float64 `json:"duration"`    // Seconds, after truncation
	SampleRate int     `json:"sample_rate"` // Pipeline target rate (Hz)
}

// FeatureRecord is the structured output of one extraction: a metadata
// block plus five category blocks. A nil category means it was filtered
// out; downstream consumers substitute documented defaults.
type FeatureRecord struct {
	Metadata  Metadata                      `json:"metadata"`
	Rhythm    *extractors.RhythmFeatures    `json:"rhythm,omitempty"`
	Harmony   *extractors.HarmonyFeatures   `json:"harmony,omitempty"`
	Energy    *extractors.EnergyFeatures    `json:"energy,omitempty"`
	Spectral  *extractors.SpectralFeatures  `json:"spectral,omitempty"`
	Frequency *extractors.FrequencyFeatures `json:"frequency,omitempty"`
}

// Category names accepted by Filter
const (
	CategoryRhythm    = "rhythm"
	CategoryHarmony   = "harmony"
	CategoryEnergy    = "energy"
	CategorySpectral  = "spectral"
	CategoryFrequency = "frequency"
)

// Filter returns a copy of the record with the named categories removed.
// Unknown names are ignored. The receiver is not modified.
func (r *FeatureRecord) Filter(exclude ...string) *FeatureRecord {
	filtered := *r

	for _, category := range exclude {
		switch category {
		case CategoryRhythm:
			filtered.Rhythm = nil
		case CategoryHarmony:
			filtered.Harmony = nil
		case CategoryEnergy:
			filtered.Energy = nil
		case CategorySpectral:
			filtered.Spectral = nil
		case CategoryFrequency:
			filtered.Frequency = nil
		}
	}

	return &filtered
}
