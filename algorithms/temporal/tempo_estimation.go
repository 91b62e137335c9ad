package temporal

// TempoEstimation estimates global tempo from the periodicity of an
// onset strength envelope.
type TempoEstimation struct {
	minBPM float64
	maxBPM float64
}

// NewTempoEstimation creates a tempo estimator over the common musical
// range of 40-200 BPM
func NewTempoEstimation() *TempoEstimation {
	return &TempoEstimation{
		minBPM: 40.0,
		maxBPM: 200.0,
	}
}

// DefaultTempo is reported when no periodicity can be found
const DefaultTempo = 120.0

// EstimateFromOnsetEnvelope estimates tempo in BPM by autocorrelating the
// onset strength envelope and picking the strongest peak in the valid
// beat-period range. Returns DefaultTempo when the envelope carries no
// usable periodicity.
func (te *TempoEstimation) EstimateFromOnsetEnvelope(envelope []float64, sampleRate, hopSize int) float64 {
	if len(envelope) < 10 {
		return DefaultTempo
	}

	maxLag := len(envelope) / 2
	autocorr := autocorrelate(envelope, maxLag)

	timePerFrame := float64(hopSize) / float64(sampleRate)

	minPeriodSec := 60.0 / te.maxBPM
	maxPeriodSec := 60.0 / te.minBPM

	minLag := int(minPeriodSec / timePerFrame)
	maxLagIdx := int(maxPeriodSec / timePerFrame)

	if minLag < 1 {
		minLag = 1
	}
	if maxLagIdx >= len(autocorr) {
		maxLagIdx = len(autocorr) - 1
	}
	if minLag >= maxLagIdx {
		return DefaultTempo
	}

	// Highest local maximum in the valid period range
	maxVal := 0.0
	bestLag := 0

	for lag := minLag; lag <= maxLagIdx; lag++ {
		if lag > 0 && lag < len(autocorr)-1 {
			if autocorr[lag] > autocorr[lag-1] &&
				autocorr[lag] > autocorr[lag+1] &&
				autocorr[lag] > maxVal {
				maxVal = autocorr[lag]
				bestLag = lag
			}
		}
	}

	if bestLag == 0 {
		return DefaultTempo
	}

	period := float64(bestLag) * timePerFrame
	return 60.0 / period
}

// autocorrelate calculates the normalized autocorrelation function up to maxLag
func autocorrelate(signal []float64, maxLag int) []float64 {
	if maxLag > len(signal) {
		maxLag = len(signal)
	}

	autocorr := make([]float64, maxLag)

	// Biased estimator: the sum is not divided by the overlap count, so
	// longer lags decay naturally and harmonics of the true period do not
	// outrank it.
	for lag := range maxLag {
		sum := 0.0
		for i := 0; i < len(signal)-lag; i++ {
			sum += signal[i] * signal[i+lag]
		}
		autocorr[lag] = sum
	}

	if len(autocorr) > 0 && autocorr[0] > 0 {
		for i := range autocorr {
			autocorr[i] /= autocorr[0]
		}
	}

	return autocorr
}
