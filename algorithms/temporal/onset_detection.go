package temporal

import (
	"github.com/audiomesh/trackprint/algorithms/common"
	"github.com/audiomesh/trackprint/algorithms/spectral"
	"github.com/audiomesh/trackprint/algorithms/windowing"
)

// OnsetDetection detects note/event onsets in audio signals using
// positive spectral flux as the onset strength signal.
type OnsetDetection struct {
	stft         *spectral.STFT
	spectralFlux *spectral.SpectralFlux
	windowSize   int
	hopSize      int
}

// NewOnsetDetection creates a new onset detector with the given STFT
// analysis parameters
func NewOnsetDetection(windowSize, hopSize int) *OnsetDetection {
	return &OnsetDetection{
		stft:         spectral.NewSTFT(),
		spectralFlux: spectral.NewSpectralFlux(),
		windowSize:   windowSize,
		hopSize:      hopSize,
	}
}

// OnsetStrength computes the onset strength envelope of a signal.
// Envelope index i corresponds to the transition into STFT frame i+1,
// i.e. time (i+1)*hopSize/sampleRate. Signals shorter than one analysis
// window yield an empty envelope.
func (od *OnsetDetection) OnsetStrength(signal []float64, sampleRate int) ([]float64, error) {
	if len(signal) < od.windowSize {
		return []float64{}, nil
	}

	window := windowing.NewHann(od.windowSize)
	stftResult, err := od.stft.ComputeWithWindow(signal, od.windowSize, od.hopSize, sampleRate, window)
	if err != nil {
		return nil, err
	}

	return od.spectralFlux.Compute(stftResult.Magnitude), nil
}

// DetectFromStrength picks onset times (seconds) from an onset strength
// envelope. A frame is an onset when it is a local maximum above the
// envelope mean, at least minInterval seconds after the previous onset.
func (od *OnsetDetection) DetectFromStrength(envelope []float64, sampleRate int, minInterval float64) []float64 {
	if len(envelope) < 3 {
		return []float64{}
	}

	minDistFrames := int(minInterval * float64(sampleRate) / float64(od.hopSize))
	peaks := common.FindPeaks(envelope, common.Mean(envelope), minDistFrames)

	times := make([]float64, len(peaks))
	for i, frame := range peaks {
		times[i] = float64(frame+1) * float64(od.hopSize) / float64(sampleRate)
	}

	return times
}

// Detect computes the onset strength envelope and picks onset times from
// it in one step
func (od *OnsetDetection) Detect(signal []float64, sampleRate int, minInterval float64) ([]float64, []float64, error) {
	envelope, err := od.OnsetStrength(signal, sampleRate)
	if err != nil {
		return nil, nil, err
	}

	return od.DetectFromStrength(envelope, sampleRate, minInterval), envelope, nil
}
