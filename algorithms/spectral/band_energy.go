package spectral

// BandEnergy computes mean spectral magnitude within fixed frequency bands
type BandEnergy struct {
	sampleRate int
}

// Band is a frequency range in Hz, inclusive on both ends
type Band struct {
	Low  float64
	High float64
}

// NewBandEnergy creates a new band energy calculator
func NewBandEnergy(sampleRate int) *BandEnergy {
	return &BandEnergy{sampleRate: sampleRate}
}

// ComputeMean returns, for each band, the mean magnitude over all time
// frames and all FFT bins whose center frequency falls inside the band.
// Bands with no matching bins yield 0.
func (be *BandEnergy) ComputeMean(spectrogram [][]float64, bands []Band) []float64 {
	means := make([]float64, len(bands))
	if len(spectrogram) == 0 || len(spectrogram[0]) == 0 {
		return means
	}

	numBins := len(spectrogram[0])
	binFreq := make([]float64, numBins)
	for i := range numBins {
		binFreq[i] = float64(i) * float64(be.sampleRate) / float64((numBins-1)*2)
	}

	for b, band := range bands {
		sum := 0.0
		count := 0

		for f := range numBins {
			if binFreq[f] < band.Low || binFreq[f] > band.High {
				continue
			}
			for t := range spectrogram {
				sum += spectrogram[t][f]
				count++
			}
		}

		if count > 0 {
			means[b] = sum / float64(count)
		}
	}

	return means
}
