package features

import (
	"fmt"

	"github.com/audiomesh/trackprint/algorithms/hpss"
	"github.com/audiomesh/trackprint/logging"
	"github.com/audiomesh/trackprint/transcode"
)

// AudioHandle owns the prepared signal components for one extraction:
// the (possibly truncated) mono waveform, its harmonic and percussive
// decompositions, and the resulting metadata. It is built exactly once
// per extraction and read-only afterwards; extractors never truncate or
// separate again.
type AudioHandle struct {
	Signal     []float64
	Harmonic   []float64
	Percussive []float64
	SampleRate int
	Duration   float64 // Seconds, after truncation
	Path       string
}

// prepare truncates the decoded waveform to at most maxDuration seconds
// from the start and computes the harmonic/percussive split
func prepare(audio *transcode.AudioData, maxDuration float64) (*AudioHandle, error) {
	if audio == nil || len(audio.PCM) == 0 {
		return nil, fmt.Errorf("no audio samples to prepare")
	}
	if maxDuration <= 0 {
		return nil, fmt.Errorf("max duration must be positive: %g", maxDuration)
	}

	logger := logging.WithFields(logging.Fields{
		"component": "audio_prepare",
		"path":      audio.Path,
	})

	signal := audio.PCM
	maxSamples := int(maxDuration * float64(audio.SampleRate))
	if len(signal) > maxSamples {
		signal = signal[:maxSamples]
	}

	duration := float64(len(signal)) / float64(audio.SampleRate)

	separator := hpss.NewHPSS(audio.SampleRate)
	harmonic, percussive, err := separator.Separate(signal)
	if err != nil {
		return nil, fmt.Errorf("harmonic/percussive separation: %w", err)
	}

	logger.Debug("Audio prepared", logging.Fields{
		"samples":  len(signal),
		"duration": duration,
	})

	return &AudioHandle{
		Signal:     signal,
		Harmonic:   harmonic,
		Percussive: percussive,
		SampleRate: audio.SampleRate,
		Duration:   duration,
		Path:       audio.Path,
	}, nil
}
