package irt

import (
	"fmt"
	"math"
)

// Logistic is a dichotomous item from the L1, L2, L3 or L4 family.
//
//	P(1 | θ) = c + (u - c) / (1 + e^(-D·a·(θ - b)))
//	P(0 | θ) = 1 - P(1 | θ)
//
// c = 0 and u = 1 for families that do not estimate them. L1 uses a fixed
// discrimination that starts at 1 and only changes through Rescale.
type Logistic struct {
	paramSlots
	family  Family
	scaling float64 // D
	fixedA  float64 // discrimination used by L1
}

var _ ItemResponseModel = (*Logistic)(nil)

// NewLogistic creates a logistic item. params follows the order [a, b, c, u]
// truncated to the family's parameter count (L1 is [b]). scaling is the
// constant D; zero means 1.0.
func NewLogistic(f Family, params []float64, scaling float64) (*Logistic, error) {
	if !f.IsLogistic() {
		return nil, fmt.Errorf("%w: %s is not a logistic family", ErrInvalidFamily, f)
	}
	if err := ValidateParameters(f, params); err != nil {
		return nil, err
	}
	return &Logistic{
		paramSlots: newParamSlots(params),
		family:     f,
		scaling:    scalingOrDefault(scaling),
		fixedA:     1.0,
	}, nil
}

func (m *Logistic) Family() Family     { return m.family }
func (m *Logistic) NumCategories() int { return 2 }

// Scaling returns the constant D.
func (m *Logistic) Scaling() float64 { return m.scaling }

// SetProposal implements ItemResponseModel.
func (m *Logistic) SetProposal(params []float64) error {
	return m.setProposal(m.family, params)
}

// Probability implements ItemResponseModel.
func (m *Logistic) Probability(theta float64, category int) float64 {
	return m.ProbabilityWith(m.current, theta, category)
}

// ProbabilityWith implements ItemResponseModel.
func (m *Logistic) ProbabilityWith(params []float64, theta float64, category int) float64 {
	a, b, c, u := m.unpack(params)
	p := c + (u-c)/(1+math.Exp(-m.scaling*a*(theta-b)))
	switch category {
	case 1:
		return p
	case 0:
		return 1 - p
	}
	return 0
}

// unpack expands params into (a, b, c, u) with family defaults.
func (m *Logistic) unpack(params []float64) (a, b, c, u float64) {
	a, c, u = m.fixedA, 0, 1
	switch m.family {
	case L1:
		b = params[0]
	case L2:
		a, b = params[0], params[1]
	case L3:
		a, b, c = params[0], params[1], params[2]
	case L4:
		a, b, c, u = params[0], params[1], params[2], params[3]
	}
	return a, b, c, u
}

// Rescale implements ItemResponseModel.
//
//	a' = a / slope
//	b' = b·slope + intercept
//
// Asymptotes are scale free and stay unchanged.
func (m *Logistic) Rescale(intercept, slope float64) {
	if m.family == L1 {
		m.fixedA /= slope
		m.current[0] = m.current[0]*slope + intercept
		m.proposal[0] = m.proposal[0]*slope + intercept
		return
	}
	for _, p := range [][]float64{m.current, m.proposal} {
		p[0] /= slope
		p[1] = p[1]*slope + intercept
	}
}
