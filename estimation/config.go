package estimation

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"

	"github.com/sky-flux/irt/minimizer"
)

// Defaults applied to zero-valued Config fields.
const (
	DefaultThreshold     = 100
	DefaultMaxIterations = 500
)

// Config configures an MStep.
// Zero values produce sensible defaults; see field comments.
type Config struct {
	Threshold     int `json:"threshold" yaml:"threshold"`           // zero → 100 items per direct range
	MaxIterations int `json:"max_iterations" yaml:"max_iterations"` // zero → 500 per item fit
	Workers       int `json:"workers" yaml:"workers"`               // zero → GOMAXPROCS; 1 → sequential

	Minimizer minimizer.Minimizer `json:"-" yaml:"-"` // nil → minimizer.BFGS{}
	Logger    *slog.Logger        `json:"-" yaml:"-"` // nil → discard
	Metrics   MetricsCollector    `json:"-" yaml:"-"` // nil → NopMetrics
}

func (cfg Config) withDefaults() (Config, error) {
	if cfg.Threshold < 0 {
		return cfg, fmt.Errorf("%w: threshold %d must be positive", ErrInvalidConfig, cfg.Threshold)
	}
	if cfg.MaxIterations < 0 {
		return cfg, fmt.Errorf("%w: max iterations %d must be positive", ErrInvalidConfig, cfg.MaxIterations)
	}
	if cfg.Workers < 0 {
		return cfg, fmt.Errorf("%w: workers %d must be positive", ErrInvalidConfig, cfg.Workers)
	}

	if cfg.Threshold == 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Minimizer == nil {
		cfg.Minimizer = minimizer.BFGS{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NopMetrics{}
	}
	return cfg, nil
}
