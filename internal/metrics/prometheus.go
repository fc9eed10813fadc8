// Package metrics provides a Prometheus-backed estimation.MetricsCollector.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sky-flux/irt"
	"github.com/sky-flux/irt/estimation"
)

// DefaultNamespace is used when NewPrometheus is given an empty namespace.
const DefaultNamespace = "irt"

// PrometheusCollector implements estimation.MetricsCollector backed by Prometheus.
// Metrics are registered lazily on first use.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	itemFits        *prometheus.CounterVec
	itemFitDuration *prometheus.HistogramVec
	passes          prometheus.Counter
	passItems       prometheus.Counter
	passDuration    prometheus.Histogram
	boundaryEvents  *prometheus.CounterVec
	latentMean      prometheus.Gauge
	latentSD        prometheus.Gauge
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ estimation.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer (uses prometheus.DefaultRegisterer if nil)
//   - namespace: metrics namespace (defaults to "irt" if empty)
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.itemFits = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "mstep",
			Name:      "item_fits_total",
			Help:      "Total item fits by family and outcome (updated, hard_failure, fault).",
		}, []string{"family", "outcome"})

		p.itemFitDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "mstep",
			Name:      "item_fit_duration_seconds",
			Help:      "Duration of a single item fit in seconds by family.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2.5, 10), // 100µs .. ~380ms
		}, []string{"family"})

		p.passes = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "mstep",
			Name:      "passes_total",
			Help:      "Total completed or interrupted maximization passes.",
		})

		p.passItems = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "mstep",
			Name:      "pass_items_total",
			Help:      "Total items submitted to maximization passes.",
		})

		p.passDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "mstep",
			Name:      "pass_duration_seconds",
			Help:      "Duration of a maximization pass in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		})

		p.boundaryEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "mstep",
			Name:      "diagnostics_total",
			Help:      "Diagnostic events by kind (hard_failure, negative_discrimination, negative_guessing, slipping_out_of_range).",
		}, []string{"kind"})

		p.latentMean = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "latent",
			Name:      "mean",
			Help:      "Mean of the re-estimated latent distribution before rescaling.",
		})

		p.latentSD = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "latent",
			Name:      "standard_deviation",
			Help:      "Standard deviation of the re-estimated latent distribution before rescaling.",
		})

		p.reg.MustRegister(p.itemFits)
		p.reg.MustRegister(p.itemFitDuration)
		p.reg.MustRegister(p.passes)
		p.reg.MustRegister(p.passItems)
		p.reg.MustRegister(p.passDuration)
		p.reg.MustRegister(p.boundaryEvents)
		p.reg.MustRegister(p.latentMean)
		p.reg.MustRegister(p.latentSD)
	})
}

// diagnosticKinds labels Diagnostics.Counts in order.
var diagnosticKinds = [4]string{
	"hard_failure",
	"negative_discrimination",
	"negative_guessing",
	"slipping_out_of_range",
}

// ObserveItemFit counts one item fit and records its duration.
func (p *PrometheusCollector) ObserveItemFit(family irt.Family, outcome string, elapsed time.Duration) {
	p.ensureRegistered()
	p.itemFits.WithLabelValues(family.String(), outcome).Inc()
	p.itemFitDuration.WithLabelValues(family.String()).Observe(elapsed.Seconds())
}

// ObservePass records a pass and adds its diagnostics to the event counters.
func (p *PrometheusCollector) ObservePass(diag estimation.Diagnostics, items int, elapsed time.Duration) {
	p.ensureRegistered()
	p.passes.Inc()
	p.passItems.Add(float64(items))
	p.passDuration.Observe(elapsed.Seconds())
	for i, n := range diag.Counts() {
		p.boundaryEvents.WithLabelValues(diagnosticKinds[i]).Add(float64(n))
	}
}

// ObserveLatentDistribution sets the latent distribution gauges.
func (p *PrometheusCollector) ObserveLatentDistribution(mean, sd float64) {
	p.ensureRegistered()
	p.latentMean.Set(mean)
	p.latentSD.Set(sd)
}
