package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/sky-flux/irt/estimation"
	"github.com/sky-flux/irt/minimizer"
)

// validate is shared by config and input loading.
var validate = validator.New()

// FileConfig is the YAML configuration of a calibration run.
//
//	threshold: 100
//	max_iterations: 500
//	workers: 0          # 0 → GOMAXPROCS
//	minimizer: bfgs     # bfgs | adam
//	metrics_namespace: irt
type FileConfig struct {
	Threshold        int    `yaml:"threshold" validate:"gte=0"`
	MaxIterations    int    `yaml:"max_iterations" validate:"gte=0"`
	Workers          int    `yaml:"workers" validate:"gte=0"`
	Minimizer        string `yaml:"minimizer" validate:"omitempty,oneof=bfgs adam"`
	MetricsNamespace string `yaml:"metrics_namespace" validate:"omitempty,alphanum"`
}

// LoadConfig reads and validates the config file at path.
// An empty path yields the zero config, which selects every default.
func LoadConfig(path string) (*FileConfig, error) {
	cfg := &FileConfig{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// estimationConfig builds the MStep config for this file config.
func (c *FileConfig) estimationConfig(logger *slog.Logger, metrics estimation.MetricsCollector) estimation.Config {
	cfg := estimation.Config{
		Threshold:     c.Threshold,
		MaxIterations: c.MaxIterations,
		Workers:       c.Workers,
		Logger:        logger,
		Metrics:       metrics,
	}
	switch c.Minimizer {
	case "adam":
		cfg.Minimizer = minimizer.Adam{}
	default:
		cfg.Minimizer = minimizer.BFGS{}
	}
	return cfg
}
