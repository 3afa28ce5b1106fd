// Package config loads run configuration for the plan-detect CLI from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/planscan/boundary/internal/detect"
)

// Config is the CLI run configuration. Every field is optional; omitted
// detection thresholds take their documented defaults.
type Config struct {
	// ScaleFactor is feet per pixel from external calibration.
	ScaleFactor float64 `yaml:"scale_factor"`

	// Options are the detection thresholds.
	Options detect.DetectionOptions `yaml:"options"`

	// Workers caps batch parallelism. Zero means one worker per CPU core.
	Workers int `yaml:"workers"`

	// PageTimeoutSeconds is the per-page wall-clock budget. Zero means 30.
	PageTimeoutSeconds int `yaml:"page_timeout_seconds"`

	// LabelsFile optionally points to a JSON file with OCR text elements
	// to seed room growth with.
	LabelsFile string `yaml:"labels_file"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ScaleFactor:        detect.DefaultScaleFactor,
		Options:            detect.DefaultOptions(),
		PageTimeoutSeconds: 30,
	}
}

// Load reads a YAML configuration file, layering it over Default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.ScaleFactor <= 0 {
		cfg.ScaleFactor = detect.DefaultScaleFactor
	}
	if cfg.PageTimeoutSeconds <= 0 {
		cfg.PageTimeoutSeconds = 30
	}
	return cfg, nil
}

// PageTimeout returns the per-page budget as a duration.
func (c Config) PageTimeout() time.Duration {
	return time.Duration(c.PageTimeoutSeconds) * time.Second
}
