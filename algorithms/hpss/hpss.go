package hpss

import (
	"fmt"

	"github.com/audiomesh/trackprint/algorithms/common"
	"github.com/audiomesh/trackprint/algorithms/spectral"
	"github.com/audiomesh/trackprint/algorithms/windowing"
)

// HPSS separates a signal into harmonic (sustained, pitched) and
// percussive (transient, noise-like) components using median filtering
// of the STFT magnitude (Fitzgerald 2010).
//
// Sustained tones show up as horizontal ridges in the spectrogram and
// survive a median filter applied across time; transients are vertical
// ridges and survive a median filter applied across frequency. Soft
// Wiener-style masks built from the two filtered magnitudes split the
// complex spectrogram, and overlap-add resynthesis brings each component
// back to the time domain.
type HPSS struct {
	sampleRate int
	windowSize int
	hopSize    int
	kernelSize int
	stft       *spectral.STFT
}

// NewHPSS creates a separator with standard analysis parameters
// (2048-sample Hann window, 512-sample hop, 31-point median kernel)
func NewHPSS(sampleRate int) *HPSS {
	return &HPSS{
		sampleRate: sampleRate,
		windowSize: 2048,
		hopSize:    512,
		kernelSize: 31,
		stft:       spectral.NewSTFT(),
	}
}

// Separate decomposes a signal into harmonic and percussive components.
// Both outputs have exactly the same length as the input. Signals
// shorter than one analysis window are returned unchanged as both
// components.
func (h *HPSS) Separate(signal []float64) (harmonic, percussive []float64, err error) {
	if len(signal) == 0 {
		return nil, nil, fmt.Errorf("empty signal")
	}

	if len(signal) < h.windowSize {
		harmonic = make([]float64, len(signal))
		percussive = make([]float64, len(signal))
		copy(harmonic, signal)
		copy(percussive, signal)
		return harmonic, percussive, nil
	}

	window := windowing.NewHann(h.windowSize)
	stftResult, err := h.stft.ComputeWithWindow(signal, h.windowSize, h.hopSize, h.sampleRate, window)
	if err != nil {
		return nil, nil, fmt.Errorf("hpss stft failed: %w", err)
	}

	numFrames := stftResult.TimeFrames
	numBins := stftResult.FreqBins

	// Harmonic-enhanced magnitude: median filter each frequency bin across time
	harmMag := make([][]float64, numFrames)
	for t := range numFrames {
		harmMag[t] = make([]float64, numBins)
	}

	timeSlice := make([]float64, numFrames)
	for f := range numBins {
		for t := range numFrames {
			timeSlice[t] = stftResult.Magnitude[t][f]
		}
		filtered := common.MedianFilter(timeSlice, h.kernelSize)
		for t := range numFrames {
			harmMag[t][f] = filtered[t]
		}
	}

	// Percussive-enhanced magnitude: median filter each frame across frequency
	percMag := make([][]float64, numFrames)
	for t := range numFrames {
		percMag[t] = common.MedianFilter(stftResult.Magnitude[t], h.kernelSize)
	}

	// Soft masks from the squared enhanced magnitudes
	harmSpec := make([][]complex128, numFrames)
	percSpec := make([][]complex128, numFrames)

	for t := range numFrames {
		harmSpec[t] = make([]complex128, numBins)
		percSpec[t] = make([]complex128, numBins)

		for f := range numBins {
			hp := harmMag[t][f] * harmMag[t][f]
			pp := percMag[t][f] * percMag[t][f]
			total := hp + pp

			if total < 1e-12 {
				continue
			}

			harmMask := hp / total
			percMask := pp / total

			harmSpec[t][f] = stftResult.Complex[t][f] * complex(harmMask, 0)
			percSpec[t][f] = stftResult.Complex[t][f] * complex(percMask, 0)
		}
	}

	harmonic, err = h.stft.Inverse(harmSpec, h.windowSize, h.hopSize, len(signal), window)
	if err != nil {
		return nil, nil, fmt.Errorf("hpss harmonic resynthesis failed: %w", err)
	}

	percussive, err = h.stft.Inverse(percSpec, h.windowSize, h.hopSize, len(signal), window)
	if err != nil {
		return nil, nil, fmt.Errorf("hpss percussive resynthesis failed: %w", err)
	}

	return harmonic, percussive, nil
}
