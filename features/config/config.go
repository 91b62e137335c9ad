package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// ExtractionConfig holds the pipeline-wide analysis parameters. The
// sample rate is a configuration constant for the whole pipeline, never
// taken from the source file.
type ExtractionConfig struct {
	SampleRate int `json:"sample_rate" yaml:"sample_rate"`
	WindowSize int `json:"window_size" yaml:"window_size"`
	HopSize    int `json:"hop_size" yaml:"hop_size"`
}

// DefaultExtractionConfig returns the standard analysis parameters:
// 22050 Hz mono, 2048-sample windows, 512-sample hop
func DefaultExtractionConfig() *ExtractionConfig {
	return &ExtractionConfig{
		SampleRate: 22050,
		WindowSize: 2048,
		HopSize:    512,
	}
}

// LoadFile reads an ExtractionConfig from a YAML file. Omitted fields
// keep their defaults.
func LoadFile(path string) (*ExtractionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := DefaultExtractionConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the analysis parameters are usable
func (c *ExtractionConfig) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive: %d", c.SampleRate)
	}
	if c.WindowSize <= 0 {
		return fmt.Errorf("window size must be positive: %d", c.WindowSize)
	}
	if c.HopSize <= 0 || c.HopSize > c.WindowSize {
		return fmt.Errorf("hop size must be in (0, window size]: %d", c.HopSize)
	}
	return nil
}
