package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultExtractionConfig(t *testing.T) {
	cfg := DefaultExtractionConfig()

	if cfg.SampleRate != 22050 || cfg.WindowSize != 2048 || cfg.HopSize != 512 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ExtractionConfig
		wantErr bool
	}{
		{
			name: "valid",
			cfg:  ExtractionConfig{SampleRate: 22050, WindowSize: 2048, HopSize: 512},
		},
		{
			name:    "zero sample rate",
			cfg:     ExtractionConfig{WindowSize: 2048, HopSize: 512},
			wantErr: true,
		},
		{
			name:    "zero window size",
			cfg:     ExtractionConfig{SampleRate: 22050, HopSize: 512},
			wantErr: true,
		},
		{
			name:    "hop larger than window",
			cfg:     ExtractionConfig{SampleRate: 22050, WindowSize: 512, HopSize: 2048},
			wantErr: true,
		},
		{
			name: "hop equals window",
			cfg:  ExtractionConfig{SampleRate: 22050, WindowSize: 2048, HopSize: 2048},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected validation error for %+v", tt.cfg)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("validate: %v", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cfg.yaml")
		if err := os.WriteFile(path, []byte("window_size: 4096\n"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		cfg, err := LoadFile(path)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if cfg.WindowSize != 4096 {
			t.Fatalf("window size: got %d, want 4096", cfg.WindowSize)
		}
		if cfg.SampleRate != 22050 || cfg.HopSize != 512 {
			t.Fatalf("omitted fields should keep defaults: %+v", cfg)
		}
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cfg.yaml")
		if err := os.WriteFile(path, []byte("sample_rate: -1\n"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := LoadFile(path); err == nil {
			t.Fatalf("negative sample rate should fail")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Fatalf("missing config should fail")
		}
	})
}
