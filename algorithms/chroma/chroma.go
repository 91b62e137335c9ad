package chroma

import (
	"math"

	"github.com/audiomesh/trackprint/algorithms/spectral"
	"github.com/audiomesh/trackprint/algorithms/windowing"
)

// Chromagram computes a 12-bin pitch-class energy representation over
// time from an STFT magnitude spectrogram. Frequencies are folded across
// octaves onto the semitone bins C, C#, D, ..., B, with logarithmic
// frequency mapping relative to a tunable A4 reference.
type Chromagram struct {
	sampleRate int
	stft       *spectral.STFT
	tuningFreq float64 // A4 frequency (default 440 Hz)
	chromaBins int
	minFreq    float64
	maxFreq    float64
}

// NewChromagram creates a new STFT-based chromagram calculator with
// standard A4=440Hz tuning
func NewChromagram(sampleRate int) *Chromagram {
	return &Chromagram{
		sampleRate: sampleRate,
		stft:       spectral.NewSTFT(),
		tuningFreq: 440.0,
		chromaBins: 12,
		minFreq:    80.0,   // Approximate E2
		maxFreq:    8000.0, // High enough for harmonics
	}
}

// Compute computes the chromagram of a signal. The result is a
// time x 12 matrix, each frame normalized to unit energy sum.
// Signals shorter than one window yield an empty chromagram.
func (cg *Chromagram) Compute(signal []float64, windowSize, hopSize int) ([][]float64, error) {
	if len(signal) < windowSize {
		return [][]float64{}, nil
	}

	window := windowing.NewHann(windowSize)
	stftResult, err := cg.stft.ComputeWithWindow(signal, windowSize, hopSize, cg.sampleRate, window)
	if err != nil {
		return nil, err
	}

	return cg.convertToChroma(stftResult), nil
}

func (cg *Chromagram) convertToChroma(stftResult *spectral.STFTResult) [][]float64 {
	chromagram := make([][]float64, stftResult.TimeFrames)

	mapping := cg.chromaMapping(stftResult.FreqBins, stftResult.FreqResolution)

	for t := range stftResult.TimeFrames {
		chromagram[t] = make([]float64, cg.chromaBins)

		for f := range stftResult.FreqBins {
			bin := mapping[f]
			if bin < 0 {
				continue
			}
			magnitude := stftResult.Magnitude[t][f]
			// Magnitude squared for energy
			chromagram[t][bin] += magnitude * magnitude
		}

		cg.normalizeFrame(chromagram[t])
	}

	return chromagram
}

// chromaMapping maps FFT bins to chroma bins, -1 for out-of-range frequencies
func (cg *Chromagram) chromaMapping(freqBins int, freqResolution float64) []int {
	mapping := make([]int, freqBins)

	for f := range freqBins {
		frequency := float64(f) * freqResolution

		if frequency < cg.minFreq || frequency > cg.maxFreq {
			mapping[f] = -1
			continue
		}

		midiNote := cg.frequencyToMIDI(frequency)
		mapping[f] = ((int(math.Round(midiNote)) % 12) + 12) % 12
	}

	return mapping
}

// frequencyToMIDI converts frequency to MIDI note number
// (A4 = tuningFreq = MIDI note 69)
func (cg *Chromagram) frequencyToMIDI(frequency float64) float64 {
	if frequency <= 0 {
		return 0
	}
	return 69.0 + 12.0*math.Log2(frequency/cg.tuningFreq)
}

// normalizeFrame normalizes a single chroma frame to unit energy sum
func (cg *Chromagram) normalizeFrame(frame []float64) {
	totalEnergy := 0.0
	for _, energy := range frame {
		totalEnergy += energy
	}

	if totalEnergy > 1e-10 {
		for i := range frame {
			frame[i] /= totalEnergy
		}
	}
}
