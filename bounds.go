package irt

import (
	"fmt"
	"math"
)

// Bounds is a closed interval a parameter is repaired into after a fit.
type Bounds struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
}

// GuessingBounds constrains the lower asymptote of the L3 and L4 families.
var GuessingBounds = Bounds{Lower: 0.001, Upper: 1.000}

// SlippingBounds constrains the upper asymptote of the L4 family.
var SlippingBounds = Bounds{Lower: 0.60, Upper: 0.999}

// Clamp returns v limited to [Lower, Upper].
func (b Bounds) Clamp(v float64) float64 {
	return math.Min(b.Upper, math.Max(v, b.Lower))
}

// Contains reports whether v lies within [Lower, Upper].
func (b Bounds) Contains(v float64) bool {
	return v >= b.Lower && v <= b.Upper
}

// ParameterCount returns the declared parameter count of a family.
// steps is the number of step parameters and is ignored by the logistic families.
func ParameterCount(f Family, steps int) int {
	switch f {
	case L1:
		return 1
	case L2:
		return 2
	case L3:
		return 3
	case L4:
		return 4
	case GPCM:
		return 1 + steps
	case PCM2:
		return steps
	}
	return 0
}

// ValidateParameters checks that params has the declared length for the family,
// that every value is finite, and that the asymptotes of L3 and L4 lie in [0, 1].
func ValidateParameters(f Family, params []float64) error {
	if !f.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidFamily, int(f))
	}

	want := len(params)
	switch f {
	case L1, L2, L3, L4:
		want = ParameterCount(f, 0)
	case GPCM:
		if len(params) < 2 {
			want = 2
		}
	case PCM2:
		if len(params) < 1 {
			want = 1
		}
	}
	if len(params) != want {
		return fmt.Errorf("%w: %s has %d parameters, want %d", ErrParameterCount, f, len(params), want)
	}

	for i, v := range params {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s parameter %d = %f", ErrInvalidParameters, f, i, v)
		}
	}

	if f == L3 || f == L4 {
		if params[2] < 0 || params[2] > 1 {
			return fmt.Errorf("%w: guessing = %f, bounds [0, 1]", ErrInvalidParameters, params[2])
		}
	}
	if f == L4 {
		if params[3] < 0 || params[3] > 1 || params[3] <= params[2] {
			return fmt.Errorf("%w: slipping = %f, bounds (guessing, 1]", ErrInvalidParameters, params[3])
		}
	}
	return nil
}
