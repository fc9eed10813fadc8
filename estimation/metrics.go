package estimation

import (
	"time"

	"github.com/sky-flux/irt"
)

// Item fit outcomes reported to MetricsCollector.ObserveItemFit.
const (
	OutcomeUpdated     = "updated"      // proposal written
	OutcomeHardFailure = "hard_failure" // minimizer stopped with a hard-failure code
	OutcomeFault       = "fault"        // minimizer produced no usable point
)

// MetricsCollector receives measurements from an MStep.
// Implementations must be safe for concurrent use.
type MetricsCollector interface {
	ObserveItemFit(family irt.Family, outcome string, elapsed time.Duration)
	ObservePass(diag Diagnostics, items int, elapsed time.Duration)
	ObserveLatentDistribution(mean, sd float64)
}

// NopMetrics discards all measurements.
type NopMetrics struct{}

var _ MetricsCollector = NopMetrics{}

func (NopMetrics) ObserveItemFit(irt.Family, string, time.Duration) {}
func (NopMetrics) ObservePass(Diagnostics, int, time.Duration)      {}
func (NopMetrics) ObserveLatentDistribution(float64, float64)       {}
