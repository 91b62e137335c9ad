package extractors

import (
	"github.com/audiomesh/trackprint/algorithms/common"
	"github.com/audiomesh/trackprint/algorithms/spectral"
	"github.com/audiomesh/trackprint/algorithms/windowing"
	"github.com/audiomesh/trackprint/logging"
)

// rolloffThreshold is the energy fraction used for spectral rolloff
const rolloffThreshold = 0.85

// SpectralExtractor derives timbre metrics (brightness, rolloff,
// bandwidth) from the full waveform
type SpectralExtractor struct {
	stft       *spectral.STFT
	centroid   *spectral.SpectralCentroid
	rolloff    *spectral.SpectralRolloff
	bandwidth  *spectral.SpectralBandwidth
	sampleRate int
	windowSize int
	hopSize    int
	logger     logging.Logger
}

// NewSpectralExtractor creates a spectral extractor with the given STFT
// analysis parameters
func NewSpectralExtractor(sampleRate, windowSize, hopSize int) *SpectralExtractor {
	return &SpectralExtractor{
		stft:       spectral.NewSTFT(),
		centroid:   spectral.NewSpectralCentroid(sampleRate),
		rolloff:    spectral.NewSpectralRolloff(sampleRate),
		bandwidth:  spectral.NewSpectralBandwidth(sampleRate),
		sampleRate: sampleRate,
		windowSize: windowSize,
		hopSize:    hopSize,
		logger: logging.WithFields(logging.Fields{
			"component": "spectral_extractor",
		}),
	}
}

// Extract analyzes the full waveform
func (se *SpectralExtractor) Extract(signal []float64) (*SpectralFeatures, error) {
	if len(signal) < se.windowSize {
		se.logger.Debug("Signal too short for spectral analysis, emitting zero spectral metrics")
		return &SpectralFeatures{}, nil
	}

	window := windowing.NewHann(se.windowSize)
	stftResult, err := se.stft.ComputeWithWindow(signal, se.windowSize, se.hopSize, se.sampleRate, window)
	if err != nil {
		return nil, err
	}

	centroids := se.centroid.ComputeFrames(stftResult.Magnitude)
	rolloffs := se.rolloff.ComputeFrames(stftResult.Magnitude, rolloffThreshold)
	bandwidths := se.bandwidth.ComputeFrames(stftResult.Magnitude, centroids)

	return &SpectralFeatures{
		AvgBrightness:      common.Mean(centroids),
		BrightnessVariance: common.Variance(centroids),
		AvgRolloff:         common.Mean(rolloffs),
		AvgBandwidth:       common.Mean(bandwidths),
	}, nil
}
