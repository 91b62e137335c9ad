package extractors

// Feature category blocks produced by the extractors. Each block is a
// flat set of named metrics; every value is a finite real number for any
// valid non-silent input.

// RhythmFeatures describes the timing structure of the percussive component
type RhythmFeatures struct {
	Tempo            float64 `json:"tempo"`             // Estimated tempo (BPM)
	OnsetDensity     float64 `json:"onset_density"`     // Onsets per second
	SyncopationLevel float64 `json:"syncopation_level"` // Mean deviation of inter-onset intervals from the beat grid
	RhythmicVariance float64 `json:"rhythmic_variance"` // Variance of inter-onset intervals (s^2)
	BeatStrength     float64 `json:"beat_strength"`     // Mean onset-envelope magnitude
}

// HarmonyFeatures describes the tonal content of the harmonic component
type HarmonyFeatures struct {
	ChromaVariance     float64 `json:"chroma_variance"`      // Mean per-pitch-class variance across time
	KeyStrength        float64 `json:"key_strength"`         // Dominance of the strongest pitch class
	HarmonicChangeRate float64 `json:"harmonic_change_rate"` // Frame-to-frame chroma movement per second
	TonalStability     float64 `json:"tonal_stability"`      // 1 - std of the time-averaged pitch-class profile
}

// EnergyFeatures describes the loudness dynamics of the full waveform
type EnergyFeatures struct {
	EnergyRange float64 `json:"energy_range"` // Max - min of the RMS envelope
	AvgEnergy   float64 `json:"avg_energy"`   // Mean of the RMS envelope
	EnergyTrend float64 `json:"energy_trend"` // Slope of a linear fit over the envelope
	PeakDensity float64 `json:"peak_density"` // Above-mean envelope peaks per second
}

// SpectralFeatures describes the timbre of the full waveform
type SpectralFeatures struct {
	AvgBrightness      float64 `json:"avg_brightness"`      // Mean spectral centroid (Hz)
	BrightnessVariance float64 `json:"brightness_variance"` // Variance of the centroid
	AvgRolloff         float64 `json:"avg_rolloff"`         // Mean 85% rolloff frequency (Hz)
	AvgBandwidth       float64 `json:"avg_bandwidth"`       // Mean spectral bandwidth (Hz)
}

// FrequencyFeatures describes the balance between bass, mid and high content.
// The three proportions sum to 1 by construction.
type FrequencyFeatures struct {
	LowProportion  float64 `json:"low_proportion"`  // 20-250 Hz (bass/kick)
	MidProportion  float64 `json:"mid_proportion"`  // 250-2000 Hz (vocals/snares)
	HighProportion float64 `json:"high_proportion"` // 2000-8000 Hz (cymbals/air)
	MidLowRatio    float64 `json:"mid_low_ratio"`
	HighMidRatio   float64 `json:"high_mid_ratio"`
}
