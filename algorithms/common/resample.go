package common

// Resample converts a signal from one sample rate to another using linear
// interpolation. Adequate for downsampling decoded speech/music to the
// analysis rate; callers needing transparent quality should resample in
// the decoder instead.
func Resample(signal []float64, originalRate, targetRate int) []float64 {
	if len(signal) == 0 || originalRate <= 0 || targetRate <= 0 {
		return []float64{}
	}

	if originalRate == targetRate {
		out := make([]float64, len(signal))
		copy(out, signal)
		return out
	}

	ratio := float64(originalRate) / float64(targetRate)
	newLength := int(float64(len(signal)) / ratio)
	if newLength <= 0 {
		return []float64{}
	}

	resampled := make([]float64, newLength)
	for i := range newLength {
		srcIndex := float64(i) * ratio
		resampled[i] = lerpAt(signal, srcIndex)
	}

	return resampled
}

// lerpAt linearly interpolates a signal at a fractional index
func lerpAt(data []float64, index float64) float64 {
	if index <= 0 {
		return data[0]
	}
	if index >= float64(len(data)-1) {
		return data[len(data)-1]
	}

	i := int(index)
	frac := index - float64(i)
	return data[i]*(1.0-frac) + data[i+1]*frac
}
