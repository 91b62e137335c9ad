package extractors

import (
	"github.com/audiomesh/trackprint/algorithms/common"
	"github.com/audiomesh/trackprint/algorithms/temporal"
	"github.com/audiomesh/trackprint/logging"
)

// EnergyExtractor derives loudness dynamics from the full waveform's RMS
// envelope
type EnergyExtractor struct {
	envelope  *temporal.Envelope
	frameSize int
	hopSize   int
	logger    logging.Logger
}

// NewEnergyExtractor creates an energy extractor with the given framing
// parameters
func NewEnergyExtractor(frameSize, hopSize int) *EnergyExtractor {
	return &EnergyExtractor{
		envelope:  temporal.NewEnvelope(),
		frameSize: frameSize,
		hopSize:   hopSize,
		logger: logging.WithFields(logging.Fields{
			"component": "energy_extractor",
		}),
	}
}

// Extract analyzes the full waveform
func (ee *EnergyExtractor) Extract(signal []float64, duration float64) *EnergyFeatures {
	env := ee.envelope.ComputeRMS(signal, ee.frameSize, ee.hopSize)

	if len(env) == 0 {
		ee.logger.Debug("Signal too short for energy envelope, emitting zero energy metrics")
		return &EnergyFeatures{}
	}

	mean := common.Mean(env)

	peakDensity := 0.0
	if duration > 0 {
		peaks := common.FindPeaks(env, mean, 1)
		peakDensity = float64(len(peaks)) / duration
	}

	return &EnergyFeatures{
		EnergyRange: common.Max(env) - common.Min(env),
		AvgEnergy:   mean,
		EnergyTrend: common.SlopeOverIndex(env),
		PeakDensity: peakDensity,
	}
}
