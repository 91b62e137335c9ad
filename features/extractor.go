package features

import (
	"github.com/google/uuid"

	"github.com/audiomesh/trackprint/features/config"
	"github.com/audiomesh/trackprint/features/extractors"
	"github.com/audiomesh/trackprint/logging"
	"github.com/audiomesh/trackprint/transcode"
)

// Extractor runs the whole pipeline for one file: decode, prepare,
// extract all five categories, assemble a FeatureRecord. Each invocation
// owns its own handle and record, so one Extractor may be used from
// multiple goroutines for distinct files.
type Extractor struct {
	config    *config.ExtractionConfig
	decoder   *transcode.Decoder
	rhythm    *extractors.RhythmExtractor
	harmony   *extractors.HarmonyExtractor
	energy    *extractors.EnergyExtractor
	spectral  *extractors.SpectralExtractor
	frequency *extractors.FrequencyExtractor
	logger    logging.Logger
}

// NewExtractor creates a feature extractor with the given analysis
// configuration, or defaults when nil
func NewExtractor(cfg *config.ExtractionConfig) *Extractor {
	if cfg == nil {
		cfg = config.DefaultExtractionConfig()
	}

	decoderCfg := transcode.DefaultDecoderConfig()
	decoderCfg.TargetSampleRate = cfg.SampleRate

	return &Extractor{
		config:    cfg,
		decoder:   transcode.NewDecoder(decoderCfg),
		rhythm:    extractors.NewRhythmExtractor(cfg.WindowSize, cfg.HopSize),
		harmony:   extractors.NewHarmonyExtractor(cfg.SampleRate, cfg.WindowSize, cfg.HopSize),
		energy:    extractors.NewEnergyExtractor(cfg.WindowSize, cfg.HopSize),
		spectral:  extractors.NewSpectralExtractor(cfg.SampleRate, cfg.WindowSize, cfg.HopSize),
		frequency: extractors.NewFrequencyExtractor(cfg.SampleRate, cfg.WindowSize, cfg.HopSize),
		logger: logging.WithFields(logging.Fields{
			"component": "feature_extractor",
		}),
	}
}

// ExtractFile decodes the file at path and extracts global features,
// analyzing at most maxDuration seconds from the start. Load and decode
// errors abort the call; no partial record is ever returned.
func (e *Extractor) ExtractFile(path string, maxDuration float64) (*FeatureRecord, error) {
	audio, err := e.decoder.DecodeFile(path)
	if err != nil {
		return nil, err
	}

	return e.Extract(audio, maxDuration)
}

// Extract extracts global features from already-decoded audio, analyzing
// at most maxDuration seconds from the start
func (e *Extractor) Extract(audio *transcode.AudioData, maxDuration float64) (*FeatureRecord, error) {
	handle, err := prepare(audio, maxDuration)
	if err != nil {
		return nil, err
	}

	logger := e.logger.WithFields(logging.Fields{
		"path":     handle.Path,
		"duration": handle.Duration,
	})

	rhythm, err := e.rhythm.Extract(handle.Percussive, handle.SampleRate, handle.Duration)
	if err != nil {
		return nil, err
	}

	harmony, err := e.harmony.Extract(handle.Harmonic, handle.Duration)
	if err != nil {
		return nil, err
	}

	energy := e.energy.Extract(handle.Signal, handle.Duration)

	spectral, err := e.spectral.Extract(handle.Signal)
	if err != nil {
		return nil, err
	}

	frequency, err := e.frequency.Extract(handle.Signal)
	if err != nil {
		return nil, err
	}

	logger.Debug("Global features extracted")

	return &FeatureRecord{
		Metadata: Metadata{
			Duration:   handle.Duration,
			SampleRate: handle.SampleRate,
		},
		Rhythm:    rhythm,
		Harmony:   harmony,
		Energy:    energy,
		Spectral:  spectral,
		Frequency: frequency,
	}, nil
}

// Extraction is the result envelope handed to storage and CLI consumers:
// the record, its embedding, and a unique ID for referencing the run
type Extraction struct {
	ID        string         `json:"id"`
	Path      string         `json:"path"`
	Record    *FeatureRecord `json:"record"`
	Embedding []float64      `json:"embedding"`
}

// Run extracts features from a file and packages them with the
// embedding vector under a fresh ID
func (e *Extractor) Run(path string, maxDuration float64) (*Extraction, error) {
	record, err := e.ExtractFile(path, maxDuration)
	if err != nil {
		return nil, err
	}

	return &Extraction{
		ID:        uuid.NewString(),
		Path:      path,
		Record:    record,
		Embedding: EmbeddingVector(record),
	}, nil
}
