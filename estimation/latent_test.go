package estimation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/sky-flux/irt"
)

func TestUpdateLatentDistribution(t *testing.T) {
	items := mustModels(t, mixedSpecs(6))
	dist, err := irt.NewNormalQuadrature(5, -2, 2)
	require.NoError(t, err)
	est := irt.NewEstimates(items, dist.Len())
	est.Nt = []float64{1, 4, 10, 3, 2}

	rec := newRecordingMetrics()
	m, err := NewMStep(Config{Metrics: rec})
	require.NoError(t, err)

	got, err := m.UpdateLatentDistribution(context.Background(), items, dist, est)
	require.NoError(t, err)
	assert.Same(t, dist, got)

	assert.InDelta(t, 1.0, floats.Sum(dist.Densities()), 1e-9)
	assert.InDelta(t, 0.0, dist.Mean(), 1e-6)
	assert.InDelta(t, 1.0, dist.StandardDeviation(), 1e-6)
	assert.InDelta(t, 10.0/20.0, dist.DensityAt(2), 1e-12)

	require.Len(t, rec.latent, 1)
	assert.Greater(t, rec.latent[0][1], 0.0)
}

func TestUpdateLatentDistributionPreservesProbabilities(t *testing.T) {
	items := mustModels(t, mixedSpecs(12))
	dist, err := irt.NewNormalQuadrature(11, -4, 4)
	require.NoError(t, err)
	est := simulatedEstimates(t, items, dist, 250, 9)
	// Shift the mass so the transform is not close to identity.
	for k := range est.Nt {
		est.Nt[k] *= float64(k + 1)
	}

	before := make([][][]float64, len(items))
	for j, item := range items {
		before[j] = make([][]float64, item.NumCategories())
		for c := range before[j] {
			for k := 0; k < dist.Len(); k++ {
				before[j][c] = append(before[j][c], item.Probability(dist.PointAt(k), c))
			}
		}
	}

	m, err := NewMStep(Config{})
	require.NoError(t, err)
	_, err = m.UpdateLatentDistribution(context.Background(), items, dist, est)
	require.NoError(t, err)

	for j, item := range items {
		for c := range before[j] {
			for k := 0; k < dist.Len(); k++ {
				assert.InDelta(t, before[j][c][k], item.Probability(dist.PointAt(k), c), 1e-6,
					"item %d (%s) category %d point %d", j, item.Family(), c, k)
			}
		}
	}
}

func TestUpdateLatentDistributionRescalesProposals(t *testing.T) {
	items := mustModels(t, []irt.ModelSpec{
		{Family: irt.L2, Parameters: []float64{1, 0}},
	})
	require.NoError(t, items[0].SetProposal([]float64{2, 1}))
	dist, err := irt.NewDistribution([]float64{-1, 1}, []float64{1, 1})
	require.NoError(t, err)
	est := irt.NewEstimates(items, 2)
	est.Nt = []float64{1, 1}

	m, err := NewMStep(Config{})
	require.NoError(t, err)
	_, err = m.UpdateLatentDistribution(context.Background(), items, dist, est)
	require.NoError(t, err)

	// Mean 0 and SD 1 already: identity transform.
	assert.InDeltaSlice(t, []float64{1, 0}, items[0].Parameters(), 1e-12)
	assert.InDeltaSlice(t, []float64{2, 1}, items[0].Proposal(), 1e-12)
}

func TestUpdateLatentDistributionDegenerate(t *testing.T) {
	tests := []struct {
		name string
		nt   []float64
	}{
		{"all mass on one point", []float64{0, 0, 5, 0, 0}},
		{"no mass", []float64{0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs := mixedSpecs(6)
			items := mustModels(t, specs)
			dist, err := irt.NewNormalQuadrature(5, -2, 2)
			require.NoError(t, err)
			points, densities := dist.Points(), dist.Densities()

			est := irt.NewEstimates(items, dist.Len())
			est.Nt = tt.nt

			m, err := NewMStep(Config{})
			require.NoError(t, err)
			_, err = m.UpdateLatentDistribution(context.Background(), items, dist, est)
			assert.ErrorIs(t, err, ErrDegenerateDistribution)

			assert.Equal(t, points, dist.Points())
			assert.Equal(t, densities, dist.Densities())
			for j, item := range items {
				assert.Equal(t, specs[j].Parameters, item.Parameters(), "item %d", j)
			}
		})
	}
}

func TestUpdateLatentDistributionMismatch(t *testing.T) {
	items := mustModels(t, mixedSpecs(2))
	dist, err := irt.NewNormalQuadrature(5, -2, 2)
	require.NoError(t, err)

	m, err := NewMStep(Config{})
	require.NoError(t, err)
	_, err = m.UpdateLatentDistribution(context.Background(), items, dist, irt.NewEstimates(items, 4))
	assert.ErrorIs(t, err, irt.ErrEstimatesMismatch)
}
