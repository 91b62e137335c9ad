package transcode

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/audiomesh/trackprint/logging"
)

// Error taxonomy for a single decode call. Load errors abort the whole
// extraction; callers match with errors.Is.
var (
	// ErrFileNotFound means the input path does not exist
	ErrFileNotFound = errors.New("audio file not found")

	// ErrDecodeFailed means the audio container/codec could not be decoded
	ErrDecodeFailed = errors.New("audio decode failed")
)

// AudioData represents decoded audio data: a mono amplitude sequence at
// the pipeline's target sample rate
type AudioData struct {
	PCM        []float64     `json:"-"`
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"`
	Duration   time.Duration `json:"duration"`
	Path       string        `json:"path,omitempty"`
}

// DecoderConfig holds decoder configuration. The target sample rate is
// pipeline configuration, never per-file metadata.
type DecoderConfig struct {
	TargetSampleRate int           `json:"target_sample_rate"`
	FFmpegPath       string        `json:"ffmpeg_path"`
	Timeout          time.Duration `json:"timeout"`
}

// DefaultDecoderConfig returns default decoder configuration: mono
// 22050 Hz, ffmpeg from PATH
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		TargetSampleRate: 22050,
		FFmpegPath:       "ffmpeg",
		Timeout:          60 * time.Second,
	}
}

// Decoder decodes audio files into mono PCM at a fixed target rate.
// It shells out to ffmpeg when available and falls back to a pure-Go
// MP3 decoder otherwise.
type Decoder struct {
	config *DecoderConfig
}

// NewDecoder creates a new audio decoder
func NewDecoder(config *DecoderConfig) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}
	return &Decoder{config: config}
}

// DecodeFile decodes an audio file and returns mono PCM data at the
// target sample rate. A missing path yields ErrFileNotFound; any decode
// problem yields ErrDecodeFailed wrapping the cause.
func (d *Decoder) DecodeFile(path string) (*AudioData, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "audio_decoder",
		"function":  "DecodeFile",
		"path":      path,
	})

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: stat %s: %v", ErrDecodeFailed, path, err)
	}

	logger.Debug("Starting audio file decode")

	var (
		audio *AudioData
		err   error
	)

	if d.ffmpegAvailable() {
		audio, err = d.decodeWithFFmpeg(path)
	} else if strings.EqualFold(filepath.Ext(path), ".mp3") {
		logger.Debug("ffmpeg not available, using pure-Go MP3 decoder")
		audio, err = d.decodeMP3(path)
	} else {
		return nil, fmt.Errorf("%w: %s: ffmpeg not available and no pure-Go decoder for this format", ErrDecodeFailed, path)
	}

	if err != nil {
		logger.Error(err, "Audio decode failed")
		return nil, err
	}

	logger.Debug("Audio decode completed", logging.Fields{
		"samples":     len(audio.PCM),
		"sample_rate": audio.SampleRate,
		"duration":    audio.Duration.Seconds(),
	})

	return audio, nil
}

// decodeWithFFmpeg decodes via an ffmpeg subprocess emitting raw
// little-endian float64 mono samples at the target rate
func (d *Decoder) decodeWithFFmpeg(path string) (*AudioData, error) {
	args := []string{
		"-i", path,
		"-f", "f64le",
		"-ac", "1",
		"-ar", strconv.Itoa(d.config.TargetSampleRate),
		"-v", "error",
		"pipe:1",
	}

	cmd := exec.Command(d.config.FFmpegPath, args...)
	if d.config.Timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), d.config.Timeout)
		defer cancel()
		cmd = exec.CommandContext(ctx, d.config.FFmpegPath, args...)
	}

	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("%w: %s: ffmpeg: %v, stderr: %s", ErrDecodeFailed, path, err, string(exitError.Stderr))
		}
		return nil, fmt.Errorf("%w: %s: ffmpeg: %v", ErrDecodeFailed, path, err)
	}

	samples := bytesToFloat64(output)
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: %s: no audio samples decoded", ErrDecodeFailed, path)
	}

	return d.newAudioData(samples, path), nil
}

// ffmpegAvailable reports whether the configured ffmpeg binary can be resolved
func (d *Decoder) ffmpegAvailable() bool {
	_, err := exec.LookPath(d.config.FFmpegPath)
	return err == nil
}

func (d *Decoder) newAudioData(samples []float64, path string) *AudioData {
	duration := time.Duration(float64(len(samples)) / float64(d.config.TargetSampleRate) * float64(time.Second))

	return &AudioData{
		PCM:        samples,
		SampleRate: d.config.TargetSampleRate,
		Channels:   1,
		Duration:   duration,
		Path:       path,
	}
}

// bytesToFloat64 converts raw little-endian float64 bytes to []float64
func bytesToFloat64(data []byte) []float64 {
	if len(data)%8 != 0 {
		data = data[:len(data)-(len(data)%8)]
	}

	if len(data) == 0 {
		return nil
	}

	sampleCount := len(data) / 8
	samples := make([]float64, sampleCount)

	for i := range sampleCount {
		bits := binary.LittleEndian.Uint64(data[i*8 : i*8+8])
		samples[i] = math.Float64frombits(bits)
	}

	return samples
}
