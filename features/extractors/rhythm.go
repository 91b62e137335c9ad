package extractors

import (
	"math"

	"github.com/audiomesh/trackprint/algorithms/common"
	"github.com/audiomesh/trackprint/algorithms/temporal"
	"github.com/audiomesh/trackprint/logging"
)

// minOnsetInterval is the shortest gap between picked onsets, in seconds
const minOnsetInterval = 0.05

// RhythmExtractor derives tempo and rhythmic complexity metrics from the
// percussive signal component
type RhythmExtractor struct {
	onsets  *temporal.OnsetDetection
	tempo   *temporal.TempoEstimation
	hopSize int
	logger  logging.Logger
}

// NewRhythmExtractor creates a rhythm extractor with the given STFT
// analysis parameters
func NewRhythmExtractor(windowSize, hopSize int) *RhythmExtractor {
	return &RhythmExtractor{
		onsets:  temporal.NewOnsetDetection(windowSize, hopSize),
		tempo:   temporal.NewTempoEstimation(),
		hopSize: hopSize,
		logger: logging.WithFields(logging.Fields{
			"component": "rhythm_extractor",
		}),
	}
}

// Extract analyzes the percussive component. Fewer than 2 detected
// onsets yields zero-valued complexity metrics; tempo and beat strength
// are still reported.
func (re *RhythmExtractor) Extract(percussive []float64, sampleRate int, duration float64) (*RhythmFeatures, error) {
	envelope, err := re.onsets.OnsetStrength(percussive, sampleRate)
	if err != nil {
		return nil, err
	}

	tempo := re.tempo.EstimateFromOnsetEnvelope(envelope, sampleRate, re.hopSize)
	beatStrength := common.Mean(envelope)

	onsetTimes := re.onsets.DetectFromStrength(envelope, sampleRate, minOnsetInterval)

	features := &RhythmFeatures{
		Tempo:        tempo,
		BeatStrength: beatStrength,
	}

	if len(onsetTimes) < 2 || duration <= 0 {
		// Degenerate input: too few events for complexity metrics
		re.logger.Debug("Fewer than 2 onsets detected, emitting zero complexity metrics", logging.Fields{
			"onsets": len(onsetTimes),
		})
		return features, nil
	}

	intervals := make([]float64, len(onsetTimes)-1)
	for i := range intervals {
		intervals[i] = onsetTimes[i+1] - onsetTimes[i]
	}

	beatDuration := 60.0 / tempo

	syncopation := 0.0
	for _, interval := range intervals {
		beatRelative := interval / beatDuration
		syncopation += math.Abs(beatRelative - math.Round(beatRelative))
	}
	syncopation /= float64(len(intervals))

	features.SyncopationLevel = syncopation
	features.RhythmicVariance = common.Variance(intervals)
	features.OnsetDensity = float64(len(onsetTimes)) / duration

	return features, nil
}
