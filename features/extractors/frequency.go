package extractors

import (
	"github.com/audiomesh/trackprint/algorithms/spectral"
	"github.com/audiomesh/trackprint/algorithms/windowing"
	"github.com/audiomesh/trackprint/logging"
)

// Fixed analysis bands: bass/kick, vocals/snares, cymbals/air
var frequencyBands = []spectral.Band{
	{Low: 20, High: 250},
	{Low: 250, High: 2000},
	{Low: 2000, High: 8000},
}

// FrequencyExtractor derives the energy balance between low, mid and
// high frequency bands from the full waveform
type FrequencyExtractor struct {
	stft       *spectral.STFT
	bandEnergy *spectral.BandEnergy
	sampleRate int
	windowSize int
	hopSize    int
	logger     logging.Logger
}

// NewFrequencyExtractor creates a frequency-band extractor with the
// given STFT analysis parameters
func NewFrequencyExtractor(sampleRate, windowSize, hopSize int) *FrequencyExtractor {
	return &FrequencyExtractor{
		stft:       spectral.NewSTFT(),
		bandEnergy: spectral.NewBandEnergy(sampleRate),
		sampleRate: sampleRate,
		windowSize: windowSize,
		hopSize:    hopSize,
		logger: logging.WithFields(logging.Fields{
			"component": "frequency_extractor",
		}),
	}
}

// Extract analyzes the full waveform. A silent signal yields even
// proportions and unit ratios so the output stays finite.
func (fe *FrequencyExtractor) Extract(signal []float64) (*FrequencyFeatures, error) {
	if len(signal) < fe.windowSize {
		fe.logger.Debug("Signal too short for band analysis, emitting neutral band balance")
		return neutralFrequencyFeatures(), nil
	}

	window := windowing.NewHann(fe.windowSize)
	stftResult, err := fe.stft.ComputeWithWindow(signal, fe.windowSize, fe.hopSize, fe.sampleRate, window)
	if err != nil {
		return nil, err
	}

	means := fe.bandEnergy.ComputeMean(stftResult.Magnitude, frequencyBands)
	low, mid, high := means[0], means[1], means[2]

	total := low + mid + high
	if total < epsilon {
		fe.logger.Debug("No band energy detected, emitting neutral band balance")
		return neutralFrequencyFeatures(), nil
	}

	return &FrequencyFeatures{
		LowProportion:  low / total,
		MidProportion:  mid / total,
		HighProportion: high / total,
		MidLowRatio:    mid / (low + epsilon),
		HighMidRatio:   high / (mid + epsilon),
	}, nil
}

func neutralFrequencyFeatures() *FrequencyFeatures {
	third := 1.0 / 3.0
	return &FrequencyFeatures{
		LowProportion:  third,
		MidProportion:  third,
		HighProportion: third,
		MidLowRatio:    1.0,
		HighMidRatio:   1.0,
	}
}
