package spectral

import (
	"fmt"
	"math/cmplx"
	"runtime"
	"sync"
)

// STFT provides Short-Time Fourier Transform analysis and overlap-add
// resynthesis.
type STFT struct {
	fft *FFT
}

// STFTResult holds the result of STFT analysis
type STFTResult struct {
	Magnitude      [][]float64    `json:"magnitude"`       // Time x Frequency magnitude matrix
	Complex        [][]complex128 `json:"-"`               // Raw complex spectrogram (not serialized)
	TimeFrames     int            `json:"time_frames"`     // Number of time frames
	FreqBins       int            `json:"freq_bins"`       // Number of frequency bins
	SampleRate     int            `json:"sample_rate"`     // Sample rate
	WindowSize     int            `json:"window_size"`     // FFT window size
	HopSize        int            `json:"hop_size"`        // Hop size between frames
	FreqResolution float64        `json:"freq_resolution"` // Frequency resolution (Hz/bin)
	TimeResolution float64        `json:"time_resolution"` // Time resolution (seconds/frame)
}

// BinFrequency returns the center frequency of FFT bin i
func (r *STFTResult) BinFrequency(i int) float64 {
	return float64(i) * r.FreqResolution
}

// Window interface for windowing functions
type Window interface {
	ApplyInPlace(signal []float64) error
}

// NewSTFT creates a new STFT calculator
func NewSTFT() *STFT {
	return &STFT{
		fft: NewFFT(),
	}
}

// ComputeWithWindow computes the STFT with parallel frame processing.
// Frames are written to disjoint rows, so the result is deterministic
// regardless of worker scheduling.
func (s *STFT) ComputeWithWindow(signal []float64, windowSize, hopSize, sampleRate int, window Window) (*STFTResult, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}

	if windowSize <= 0 {
		return nil, fmt.Errorf("window size must be positive")
	}

	if hopSize <= 0 {
		return nil, fmt.Errorf("hop size must be positive")
	}

	numFrames := (len(signal)-windowSize)/hopSize + 1
	if numFrames <= 0 {
		return nil, fmt.Errorf("signal too short for given window size and hop size")
	}

	// Positive frequencies only
	freqBins := windowSize/2 + 1

	magnitude := make([][]float64, numFrames)
	complexSpectrum := make([][]complex128, numFrames)

	for i := range numFrames {
		magnitude[i] = make([]float64, freqBins)
		complexSpectrum[i] = make([]complex128, freqBins)
	}

	numWorkers := optimalWorkerCount(numFrames)

	jobs := make(chan int, numFrames)

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Reuse frame buffer for this worker
			frameBuffer := make([]float64, windowSize)

			for frameIdx := range jobs {
				startIdx := frameIdx * hopSize
				copy(frameBuffer, signal[startIdx:startIdx+windowSize])

				if window != nil {
					if err := window.ApplyInPlace(frameBuffer); err != nil {
						continue
					}
				}

				fftResult := s.fft.Compute(frameBuffer)

				for i := range freqBins {
					complexSpectrum[frameIdx][i] = fftResult[i]
					magnitude[frameIdx][i] = cmplx.Abs(fftResult[i])
				}
			}
		}()
	}

	for frameIdx := range numFrames {
		if frameIdx*hopSize+windowSize <= len(signal) {
			jobs <- frameIdx
		}
	}
	close(jobs)

	wg.Wait()

	return &STFTResult{
		Magnitude:      magnitude,
		Complex:        complexSpectrum,
		TimeFrames:     numFrames,
		FreqBins:       freqBins,
		SampleRate:     sampleRate,
		WindowSize:     windowSize,
		HopSize:        hopSize,
		FreqResolution: float64(sampleRate) / float64(windowSize),
		TimeResolution: float64(hopSize) / float64(sampleRate),
	}, nil
}

// Inverse reconstructs a time-domain signal from a positive-frequency
// complex spectrogram via windowed overlap-add. The output is trimmed or
// zero-padded to length samples.
func (s *STFT) Inverse(frames [][]complex128, windowSize, hopSize, length int, window Window) ([]float64, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("empty spectrogram")
	}

	if windowSize <= 0 || hopSize <= 0 {
		return nil, fmt.Errorf("window size and hop size must be positive")
	}

	// Synthesis window coefficients, obtained by windowing a unit signal
	winCoeffs := make([]float64, windowSize)
	for i := range winCoeffs {
		winCoeffs[i] = 1.0
	}
	if window != nil {
		if err := window.ApplyInPlace(winCoeffs); err != nil {
			return nil, err
		}
	}

	outLen := (len(frames)-1)*hopSize + windowSize
	output := make([]float64, outLen)
	norm := make([]float64, outLen)

	fullSpectrum := make([]complex128, windowSize)

	for t, frame := range frames {
		// Rebuild the full spectrum from positive frequencies using
		// conjugate symmetry
		n := copy(fullSpectrum, frame)
		for i := 1; i < windowSize-n+1; i++ {
			fullSpectrum[windowSize-i] = cmplx.Conj(fullSpectrum[i])
		}

		timeFrame := s.fft.ComputeInverseReal(fullSpectrum)

		offset := t * hopSize
		for i := range windowSize {
			output[offset+i] += timeFrame[i] * winCoeffs[i]
			norm[offset+i] += winCoeffs[i] * winCoeffs[i]
		}
	}

	for i := range output {
		if norm[i] > 1e-10 {
			output[i] /= norm[i]
		}
	}

	if length <= 0 || length == outLen {
		return output, nil
	}
	if length < outLen {
		return output[:length], nil
	}

	padded := make([]float64, length)
	copy(padded, output)
	return padded, nil
}

// optimalWorkerCount determines the number of workers based on workload
func optimalWorkerCount(numFrames int) int {
	numCPU := runtime.NumCPU()

	if numFrames < 100 {
		return max(min(numCPU/2, numFrames), 1)
	}

	if numFrames < 1000 {
		return min(numCPU, 8)
	}

	return numCPU
}
