package irt

import "errors"

// Sentinel errors for the irt package.
// Use errors.Is to check: errors.Is(err, irt.ErrParameterCount)
var (
	ErrInvalidFamily     = errors.New("irt: invalid model family")
	ErrParameterCount    = errors.New("irt: parameter count does not match model family")
	ErrInvalidParameters = errors.New("irt: parameters out of bounds")
	ErrInvalidResponse   = errors.New("irt: response category out of range")
	ErrEstimatesMismatch = errors.New("irt: estimates do not match items or quadrature")
	ErrInvalidQuadrature = errors.New("irt: invalid quadrature")
)
