package irt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDistributionNormalizes(t *testing.T) {
	d, err := NewDistribution([]float64{-1, 0, 1}, []float64{1, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, []float64{0.25, 0.5, 0.25}, d.Densities())
	assert.InDelta(t, 0.0, d.Mean(), 1e-15)
	assert.InDelta(t, math.Sqrt(0.5), d.StandardDeviation(), 1e-12)
}

func TestNewDistributionInvalid(t *testing.T) {
	tests := []struct {
		name      string
		points    []float64
		densities []float64
	}{
		{"empty", nil, nil},
		{"length mismatch", []float64{0, 1}, []float64{1}},
		{"negative density", []float64{0, 1}, []float64{1, -1}},
		{"zero mass", []float64{0, 1}, []float64{0, 0}},
		{"NaN density", []float64{0, 1}, []float64{math.NaN(), 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDistribution(tt.points, tt.densities)
			assert.ErrorIs(t, err, ErrInvalidQuadrature)
		})
	}
}

func TestNewNormalQuadrature(t *testing.T) {
	d, err := NewNormalQuadrature(41, -4, 4)
	require.NoError(t, err)
	assert.Equal(t, 41, d.Len())
	assert.InDelta(t, -4.0, d.PointAt(0), 1e-12)
	assert.InDelta(t, 4.0, d.PointAt(40), 1e-12)

	var sum float64
	for _, v := range d.Densities() {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
	assert.InDelta(t, 0.0, d.Mean(), 1e-12)
	assert.InDelta(t, 1.0, d.StandardDeviation(), 0.01)
}

func TestNewNormalQuadratureInvalid(t *testing.T) {
	_, err := NewNormalQuadrature(1, -4, 4)
	assert.ErrorIs(t, err, ErrInvalidQuadrature)
	_, err = NewNormalQuadrature(10, 4, 4)
	assert.ErrorIs(t, err, ErrInvalidQuadrature)
}

func TestDistributionSetters(t *testing.T) {
	d, err := NewDistribution([]float64{-1, 1}, []float64{1, 1})
	require.NoError(t, err)

	d.SetPointAt(1, 3)
	d.SetDensityAt(0, 0.75)
	d.SetDensityAt(1, 0.25)
	assert.Equal(t, 3.0, d.PointAt(1))
	assert.Equal(t, 0.75, d.DensityAt(0))
	assert.InDelta(t, 0.0, d.Mean(), 1e-15)
}

func TestDistributionCloneIsIndependent(t *testing.T) {
	d, err := NewDistribution([]float64{-1, 1}, []float64{1, 1})
	require.NoError(t, err)

	c := d.Clone()
	c.SetPointAt(0, -5)
	c.SetDensityAt(0, 0.9)
	assert.Equal(t, -1.0, d.PointAt(0))
	assert.Equal(t, 0.5, d.DensityAt(0))
}

func TestDistributionAccessorsReturnCopies(t *testing.T) {
	d, err := NewDistribution([]float64{-1, 1}, []float64{1, 1})
	require.NoError(t, err)

	p := d.Points()
	p[0] = 10
	assert.Equal(t, -1.0, d.PointAt(0))
}
