package features

import (
	"github.com/audiomesh/trackprint/logging"
)

// Feedback category names. "arrangement" is reserved: requesting it is
// valid but produces no content yet.
const (
	FeedbackEQ          = "eq"
	FeedbackEnergy      = "energy"
	FeedbackRhythm      = "rhythm"
	FeedbackArrangement = "arrangement"
)

// FeedbackObject regroups a feature record into named categories for
// human-facing or storage-facing consumption. It always carries a
// metadata block; the other keys depend on the requested categories.
// It is a relabeling of record values only, independent of the
// embedding vector.
type FeedbackObject map[string]map[string]float64

// BuildFeedback reshapes a record into the requested categories.
// Missing source categories contribute zero values, never errors.
func BuildFeedback(record *FeatureRecord, categories []string) FeedbackObject {
	obj := FeedbackObject{
		"metadata": {
			"duration":    record.Metadata.Duration,
			"sample_rate": float64(record.Metadata.SampleRate),
		},
	}

	for _, category := range categories {
		switch category {
		case FeedbackEQ:
			obj[FeedbackEQ] = buildEQ(record)
		case FeedbackEnergy:
			obj[FeedbackEnergy] = buildEnergy(record)
		case FeedbackRhythm:
			obj[FeedbackRhythm] = buildRhythm(record)
		case FeedbackArrangement:
			// Reserved: accepted without content
		default:
			logging.Debug("Ignoring unknown feedback category", logging.Fields{
				"category": category,
			})
		}
	}

	return obj
}

// buildEQ pulls tone-shaping metrics from the spectral and frequency blocks
func buildEQ(record *FeatureRecord) map[string]float64 {
	eq := map[string]float64{
		"brightness":          0,
		"brightness_variance": 0,
		"rolloff":             0,
		"bandwidth":           0,
		"low_proportion":      0,
		"mid_proportion":      0,
		"high_proportion":     0,
		"mid_low_ratio":       0,
		"high_mid_ratio":      0,
	}

	if record.Spectral != nil {
		eq["brightness"] = record.Spectral.AvgBrightness
		eq["brightness_variance"] = record.Spectral.BrightnessVariance
		eq["rolloff"] = record.Spectral.AvgRolloff
		eq["bandwidth"] = record.Spectral.AvgBandwidth
	}

	if record.Frequency != nil {
		eq["low_proportion"] = record.Frequency.LowProportion
		eq["mid_proportion"] = record.Frequency.MidProportion
		eq["high_proportion"] = record.Frequency.HighProportion
		eq["mid_low_ratio"] = record.Frequency.MidLowRatio
		eq["high_mid_ratio"] = record.Frequency.HighMidRatio
	}

	return eq
}

// buildEnergy pulls loudness dynamics plus the rhythm block's beat strength
func buildEnergy(record *FeatureRecord) map[string]float64 {
	energy := map[string]float64{
		"energy_range":  0,
		"avg_energy":    0,
		"energy_trend":  0,
		"peak_density":  0,
		"beat_strength": 0,
	}

	if record.Energy != nil {
		energy["energy_range"] = record.Energy.EnergyRange
		energy["avg_energy"] = record.Energy.AvgEnergy
		energy["energy_trend"] = record.Energy.EnergyTrend
		energy["peak_density"] = record.Energy.PeakDensity
	}

	if record.Rhythm != nil {
		energy["beat_strength"] = record.Rhythm.BeatStrength
	}

	return energy
}

// buildRhythm pulls the rhythm block; beat_strength is duplicated here
// and in the energy category so either reads standalone
func buildRhythm(record *FeatureRecord) map[string]float64 {
	rhythm := map[string]float64{
		"tempo":             0,
		"onset_density":     0,
		"syncopation_level": 0,
		"rhythmic_variance": 0,
		"beat_strength":     0,
	}

	if record.Rhythm != nil {
		rhythm["tempo"] = record.Rhythm.Tempo
		rhythm["onset_density"] = record.Rhythm.OnsetDensity
		rhythm["syncopation_level"] = record.Rhythm.SyncopationLevel
		rhythm["rhythmic_variance"] = record.Rhythm.RhythmicVariance
		rhythm["beat_strength"] = record.Rhythm.BeatStrength
	}

	return rhythm
}
