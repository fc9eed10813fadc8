package irt

import (
	"fmt"
	"math"
)

// PartialCredit is a polytomous item from the GPCM or PCM2 family with
// categories 0..m, where m is the number of step parameters.
//
//	z_k = Σ_{v=1..k} D·a·(θ - s_v),  z_0 = 0
//	P(k | θ) = e^(z_k) / Σ_h e^(z_h)
//
// GPCM estimates a; PCM2 uses a fixed discrimination that starts at 1 and only
// changes through Rescale.
type PartialCredit struct {
	paramSlots
	family  Family
	scaling float64
	fixedA  float64
}

var _ ItemResponseModel = (*PartialCredit)(nil)

// NewPartialCredit creates a partial credit item. For GPCM params is
// [a, s1..sm]; for PCM2 it is [s1..sm].
func NewPartialCredit(f Family, params []float64, scaling float64) (*PartialCredit, error) {
	if f != GPCM && f != PCM2 {
		return nil, fmt.Errorf("%w: %s is not a partial credit family", ErrInvalidFamily, f)
	}
	if err := ValidateParameters(f, params); err != nil {
		return nil, err
	}
	return &PartialCredit{
		paramSlots: newParamSlots(params),
		family:     f,
		scaling:    scalingOrDefault(scaling),
		fixedA:     1.0,
	}, nil
}

func (m *PartialCredit) Family() Family { return m.family }

// NumCategories implements ItemResponseModel.
func (m *PartialCredit) NumCategories() int {
	return m.numSteps() + 1
}

func (m *PartialCredit) numSteps() int {
	if m.family == GPCM {
		return len(m.current) - 1
	}
	return len(m.current)
}

// Scaling returns the constant D.
func (m *PartialCredit) Scaling() float64 { return m.scaling }

// SetProposal implements ItemResponseModel.
func (m *PartialCredit) SetProposal(params []float64) error {
	return m.setProposal(m.family, params)
}

// Probability implements ItemResponseModel.
func (m *PartialCredit) Probability(theta float64, category int) float64 {
	return m.ProbabilityWith(m.current, theta, category)
}

// ProbabilityWith implements ItemResponseModel. Exponents are shifted by their
// maximum before summing so large discriminations do not overflow.
func (m *PartialCredit) ProbabilityWith(params []float64, theta float64, category int) float64 {
	a, steps := m.fixedA, params
	if m.family == GPCM {
		a, steps = params[0], params[1:]
	}
	if category < 0 || category > len(steps) {
		return 0
	}

	var z, zMax float64
	for _, s := range steps {
		z += m.scaling * a * (theta - s)
		zMax = math.Max(zMax, z)
	}

	var zk float64
	sum := math.Exp(-zMax)
	z = 0
	for v, s := range steps {
		z += m.scaling * a * (theta - s)
		sum += math.Exp(z - zMax)
		if v+1 == category {
			zk = z
		}
	}
	return math.Exp(zk-zMax) / sum
}

// Rescale implements ItemResponseModel.
//
//	a' = a / slope
//	s' = s·slope + intercept
func (m *PartialCredit) Rescale(intercept, slope float64) {
	first := 0
	if m.family == GPCM {
		first = 1
	} else {
		m.fixedA /= slope
	}
	for _, p := range [][]float64{m.current, m.proposal} {
		if first == 1 {
			p[0] /= slope
		}
		for i := first; i < len(p); i++ {
			p[i] = p[i]*slope + intercept
		}
	}
}
