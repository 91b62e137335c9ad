package transcode

import (
	"fmt"
	"io"
	"os"

	mp3 "github.com/hajimehoshi/go-mp3"

	"github.com/audiomesh/trackprint/algorithms/common"
)

// decodeMP3 decodes an MP3 file with hajimehoshi/go-mp3 and resamples the
// downmixed mono signal to the target rate. go-mp3 always emits 16-bit
// little-endian stereo at the file's native rate.
func (d *Decoder) decodeMP3(path string) (*AudioData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodeFailed, path, err)
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodeFailed, path, err)
	}

	raw, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodeFailed, path, err)
	}

	mono := stereoInt16ToMono(raw)
	if len(mono) == 0 {
		return nil, fmt.Errorf("%w: %s: no audio samples decoded", ErrDecodeFailed, path)
	}

	samples := common.Resample(mono, decoder.SampleRate(), d.config.TargetSampleRate)

	return d.newAudioData(samples, path), nil
}

// stereoInt16ToMono converts interleaved 16-bit LE stereo PCM to mono
// float64 in [-1, 1]
func stereoInt16ToMono(data []byte) []float64 {
	// 4 bytes per stereo frame
	frames := len(data) / 4
	if frames == 0 {
		return nil
	}

	mono := make([]float64, frames)
	for i := range frames {
		left := int16(uint16(data[i*4]) | uint16(data[i*4+1])<<8)
		right := int16(uint16(data[i*4+2]) | uint16(data[i*4+3])<<8)
		mono[i] = (float64(left) + float64(right)) / 2.0 / 32768.0
	}

	return mono
}
