package irt

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Estimates holds the expected sufficient statistics produced by an expectation step.
type Estimates struct {
	// Rjk[j][c][k] is the expected number of examinees at quadrature point k
	// answering item j in category c.
	Rjk [][][]float64 `json:"rjk" yaml:"rjk"`
	// Nt[k] is the expected number of examinees at quadrature point k.
	Nt []float64 `json:"nt" yaml:"nt"`
}

// NewEstimates returns zeroed estimates shaped for items over n quadrature points.
func NewEstimates(items []ItemResponseModel, n int) *Estimates {
	e := &Estimates{
		Rjk: make([][][]float64, len(items)),
		Nt:  make([]float64, n),
	}
	for j, item := range items {
		e.Rjk[j] = make([][]float64, item.NumCategories())
		for c := range e.Rjk[j] {
			e.Rjk[j][c] = make([]float64, n)
		}
	}
	return e
}

// RjkAt returns the expected counts of item j, indexed [category][point].
func (e *Estimates) RjkAt(j int) [][]float64 {
	return e.Rjk[j]
}

// SumNt returns the total expected count over all quadrature points.
func (e *Estimates) SumNt() float64 {
	return floats.Sum(e.Nt)
}

// Check verifies that e has one row per item, one category row per response
// category, and n entries per row.
func (e *Estimates) Check(items []ItemResponseModel, n int) error {
	if len(e.Rjk) != len(items) {
		return fmt.Errorf("%w: %d rows for %d items", ErrEstimatesMismatch, len(e.Rjk), len(items))
	}
	if len(e.Nt) != n {
		return fmt.Errorf("%w: %d marginal counts for %d points", ErrEstimatesMismatch, len(e.Nt), n)
	}
	for j, item := range items {
		if len(e.Rjk[j]) != item.NumCategories() {
			return fmt.Errorf("%w: item %d has %d category rows, want %d",
				ErrEstimatesMismatch, j, len(e.Rjk[j]), item.NumCategories())
		}
		for c, row := range e.Rjk[j] {
			if len(row) != n {
				return fmt.Errorf("%w: item %d category %d has %d counts, want %d",
					ErrEstimatesMismatch, j, c, len(row), n)
			}
		}
	}
	return nil
}
