package extractors

import (
	"math"

	"github.com/audiomesh/trackprint/algorithms/chroma"
	"github.com/audiomesh/trackprint/algorithms/common"
	"github.com/audiomesh/trackprint/logging"
)

// epsilon guards divisions against silent or near-silent harmonic content
const epsilon = 1e-8

// HarmonyExtractor derives tonal metrics from the harmonic signal
// component via its 12-bin pitch-class profile
type HarmonyExtractor struct {
	chromagram *chroma.Chromagram
	windowSize int
	hopSize    int
	logger     logging.Logger
}

// NewHarmonyExtractor creates a harmony extractor with the given STFT
// analysis parameters
func NewHarmonyExtractor(sampleRate, windowSize, hopSize int) *HarmonyExtractor {
	return &HarmonyExtractor{
		chromagram: chroma.NewChromagram(sampleRate),
		windowSize: windowSize,
		hopSize:    hopSize,
		logger: logging.WithFields(logging.Fields{
			"component": "harmony_extractor",
		}),
	}
}

// Extract analyzes the harmonic component
func (he *HarmonyExtractor) Extract(harmonic []float64, duration float64) (*HarmonyFeatures, error) {
	chromagram, err := he.chromagram.Compute(harmonic, he.windowSize, he.hopSize)
	if err != nil {
		return nil, err
	}

	if len(chromagram) == 0 {
		he.logger.Debug("Signal too short for chroma analysis, emitting neutral harmony metrics")
		return &HarmonyFeatures{TonalStability: 1.0}, nil
	}

	numBins := len(chromagram[0])

	// Time-averaged pitch-class profile
	chromaMean := make([]float64, numBins)
	for _, frame := range chromagram {
		for c, energy := range frame {
			chromaMean[c] += energy
		}
	}
	for c := range chromaMean {
		chromaMean[c] /= float64(len(chromagram))
	}

	keyStrength := common.Max(chromaMean) / (common.Mean(chromaMean) + epsilon)

	// Mean per-pitch-class variance across time
	classSeries := make([]float64, len(chromagram))
	chromaVariance := 0.0
	for c := range numBins {
		for t, frame := range chromagram {
			classSeries[t] = frame[c]
		}
		chromaVariance += common.Variance(classSeries)
	}
	chromaVariance /= float64(numBins)

	// Frame-to-frame chroma movement, normalized by duration
	harmonicChangeRate := 0.0
	if len(chromagram) > 1 && duration > 0 {
		totalChange := 0.0
		for t := 1; t < len(chromagram); t++ {
			for c := range numBins {
				totalChange += math.Abs(chromagram[t][c] - chromagram[t-1][c])
			}
		}
		harmonicChangeRate = totalChange / float64(len(chromagram)-1) / duration
	}

	return &HarmonyFeatures{
		ChromaVariance:     chromaVariance,
		KeyStrength:        keyStrength,
		HarmonicChangeRate: harmonicChangeRate,
		TonalStability:     1.0 - common.StandardDeviation(chromaMean),
	}, nil
}
