package estimation

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sky-flux/irt"
	"github.com/sky-flux/irt/minimizer"
)

// mixedSpecs returns n item specs cycling through every family.
func mixedSpecs(n int) []irt.ModelSpec {
	templates := []irt.ModelSpec{
		{Family: irt.L1, Parameters: []float64{0.3}},
		{Family: irt.L2, Parameters: []float64{1.1, -0.4}},
		{Family: irt.L3, Parameters: []float64{0.9, 0.2, 0.15}},
		{Family: irt.L4, Parameters: []float64{1.2, -0.3, 0.2, 0.95}},
		{Family: irt.GPCM, Parameters: []float64{0.9, -1, 0, 1}},
		{Family: irt.PCM2, Parameters: []float64{-0.5, 0.6}},
	}
	specs := make([]irt.ModelSpec, n)
	for i := range specs {
		t := templates[i%len(templates)]
		specs[i] = irt.ModelSpec{
			Family:     t.Family,
			Parameters: append([]float64(nil), t.Parameters...),
		}
		// Spread locations so items differ.
		shift := float64(i%7-3) * 0.1
		first := 1
		if t.Family == irt.L1 || t.Family == irt.PCM2 {
			first = 0
		}
		for k := first; k < len(specs[i].Parameters); k++ {
			if t.Family.IsLogistic() && k > 1 {
				break
			}
			specs[i].Parameters[k] += shift
		}
	}
	return specs
}

func mustModels(t testing.TB, specs []irt.ModelSpec) []irt.ItemResponseModel {
	t.Helper()
	items, err := irt.NewModels(specs)
	require.NoError(t, err)
	return items
}

// simulatedEstimates simulates n examinees from the items and runs an E-step.
func simulatedEstimates(t testing.TB, items []irt.ItemResponseModel, dist *irt.Distribution, n int, seed int64) *irt.Estimates {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	abilities := make([]float64, n)
	for i := range abilities {
		abilities[i] = rng.NormFloat64()
	}
	responses := irt.Simulate(items, abilities, rng)
	est, _, err := Estep(items, dist, responses)
	require.NoError(t, err)
	return est
}

// uniformEstimates fills every Rjk row and Nt with count.
func uniformEstimates(items []irt.ItemResponseModel, n int, count float64) *irt.Estimates {
	est := irt.NewEstimates(items, n)
	for j := range est.Rjk {
		for c := range est.Rjk[j] {
			for k := range est.Rjk[j][c] {
				est.Rjk[j][c][k] = count
			}
		}
	}
	for k := range est.Nt {
		est.Nt[k] = count
	}
	return est
}

// shiftMinimizer returns x0 + delta with a converged code.
func shiftMinimizer(delta float64) minimizer.Func {
	return func(f minimizer.Objective, x0 []float64, maxIterations int) (minimizer.Result, error) {
		x := make([]float64, len(x0))
		for i, v := range x0 {
			x[i] = v + delta
		}
		return minimizer.Result{X: x, F: f(x), Code: minimizer.GradientConverged}, nil
	}
}

// recordingMetrics counts observations by family and outcome.
type recordingMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
	passes   []Diagnostics
	latent   [][2]float64
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{outcomes: make(map[string]int)}
}

func (r *recordingMetrics) ObserveItemFit(f irt.Family, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[f.String()+"/"+outcome]++
	r.outcomes[outcome]++
}

func (r *recordingMetrics) ObservePass(diag Diagnostics, _ int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.passes = append(r.passes, diag)
}

func (r *recordingMetrics) ObserveLatentDistribution(mean, sd float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latent = append(r.latent, [2]float64{mean, sd})
}
