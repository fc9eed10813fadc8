package minimizer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Adam ---

func TestAdamDefaults(t *testing.T) {
	a := Adam{}.withDefaults()
	assert.Equal(t, 0.04, a.LearningRate)
	assert.Equal(t, 0.9, a.Beta1)
	assert.Equal(t, 0.999, a.Beta2)
	assert.Equal(t, 1e-8, a.Epsilon)
	assert.Equal(t, 1e-5, a.GradientTolerance)
}

func TestAdamCustomKeepsValues(t *testing.T) {
	a := Adam{LearningRate: 0.1, Beta1: 0.8}.withDefaults()
	assert.Equal(t, 0.1, a.LearningRate)
	assert.Equal(t, 0.8, a.Beta1)
	assert.Equal(t, 0.999, a.Beta2)
}

func TestAdamQuadratic(t *testing.T) {
	res, err := Adam{LearningRate: 0.1}.Minimize(quadratic, []float64{0, 0}, 2000)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, res.X[0], 0.05)
	assert.InDelta(t, -1.0, res.X[1], 0.05)
	assert.Less(t, res.F, quadratic([]float64{0, 0}))
}

func TestAdamDescends(t *testing.T) {
	// A single step must move against the gradient.
	res, err := Adam{}.Minimize(quadratic, []float64{0, 0}, 1)
	require.NoError(t, err)
	assert.Greater(t, res.X[0], 0.0)
	assert.Less(t, res.X[1], 0.0)
	assert.Equal(t, IterationLimit, res.Code)
}

func TestAdamConvergedAtMinimum(t *testing.T) {
	res, err := Adam{}.Minimize(quadratic, []float64{3, -1}, 100)
	require.NoError(t, err)
	assert.Equal(t, GradientConverged, res.Code)
	assert.Equal(t, 0, res.Iterations)
}

func TestAdamFaultOnNaN(t *testing.T) {
	_, err := Adam{}.Minimize(func(x []float64) float64 { return math.NaN() }, []float64{1}, 10)
	assert.ErrorIs(t, err, ErrNumericalFault)
}

// --- cosineAnnealing ---

func TestCosineAnnealingSchedule(t *testing.T) {
	ca := newCosineAnnealing(0.04, 10)
	assert.InDelta(t, 0.04, ca.lr(), 1e-12)

	for i := 0; i < 5; i++ {
		ca.step()
	}
	assert.InDelta(t, 0.02, ca.lr(), 1e-12)

	for i := 0; i < 5; i++ {
		ca.step()
	}
	assert.InDelta(t, 0.0, ca.lr(), 1e-12)
}
