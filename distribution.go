package irt

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution is a discrete approximation of the latent ability distribution:
// an ordered sequence of (point, density) pairs. Mean and standard deviation
// are always computed from the pairs.
type Distribution struct {
	points    []float64
	densities []float64
}

// NewDistribution copies points and densities and normalizes the densities to
// sum to 1.
func NewDistribution(points, densities []float64) (*Distribution, error) {
	if len(points) == 0 || len(points) != len(densities) {
		return nil, fmt.Errorf("%w: %d points, %d densities", ErrInvalidQuadrature, len(points), len(densities))
	}
	for k, d := range densities {
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, fmt.Errorf("%w: density[%d] = %f", ErrInvalidQuadrature, k, d)
		}
	}
	sum := floats.Sum(densities)
	if sum <= 0 {
		return nil, fmt.Errorf("%w: densities sum to %f", ErrInvalidQuadrature, sum)
	}

	d := &Distribution{
		points:    append([]float64(nil), points...),
		densities: append([]float64(nil), densities...),
	}
	floats.Scale(1/sum, d.densities)
	return d, nil
}

// NewNormalQuadrature returns n evenly spaced points on [min, max] weighted by
// the standard normal density.
func NewNormalQuadrature(n int, min, max float64) (*Distribution, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidQuadrature, n)
	}
	if !(max > min) {
		return nil, fmt.Errorf("%w: range [%f, %f] is empty", ErrInvalidQuadrature, min, max)
	}

	points := floats.Span(make([]float64, n), min, max)
	densities := make([]float64, n)
	for k, x := range points {
		densities[k] = distuv.UnitNormal.Prob(x)
	}
	return NewDistribution(points, densities)
}

// Len returns the number of quadrature points.
func (d *Distribution) Len() int { return len(d.points) }

func (d *Distribution) PointAt(k int) float64   { return d.points[k] }
func (d *Distribution) DensityAt(k int) float64 { return d.densities[k] }

func (d *Distribution) SetPointAt(k int, v float64)   { d.points[k] = v }
func (d *Distribution) SetDensityAt(k int, v float64) { d.densities[k] = v }

// Points returns a copy of the quadrature points.
func (d *Distribution) Points() []float64 {
	return append([]float64(nil), d.points...)
}

// Densities returns a copy of the densities.
func (d *Distribution) Densities() []float64 {
	return append([]float64(nil), d.densities...)
}

// Mean returns the density-weighted mean of the points.
func (d *Distribution) Mean() float64 {
	mean, _ := stat.PopMeanStdDev(d.points, d.densities)
	return mean
}

// StandardDeviation returns the density-weighted population standard deviation
// of the points.
func (d *Distribution) StandardDeviation() float64 {
	_, sd := stat.PopMeanStdDev(d.points, d.densities)
	return sd
}

// Clone returns an independent copy.
func (d *Distribution) Clone() *Distribution {
	return &Distribution{
		points:    d.Points(),
		densities: d.Densities(),
	}
}
