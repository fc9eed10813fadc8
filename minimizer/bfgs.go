package minimizer

import (
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
)

// BFGS minimizes with the Broyden–Fletcher–Goldfarb–Shanno quasi-Newton method.
// Gradients are approximated by central differences.
// Zero-valued fields receive defaults.
type BFGS struct {
	GradientTolerance float64 `json:"gradient_tolerance" yaml:"gradient_tolerance"` // default 1e-6
	FunctionTolerance float64 `json:"function_tolerance" yaml:"function_tolerance"` // default 1e-10
	Step              float64 `json:"step" yaml:"step"`                             // finite-difference step; default per gonum/diff/fd
}

var _ Minimizer = BFGS{}

// Minimize implements Minimizer.
func (b BFGS) Minimize(f Objective, x0 []float64, maxIterations int) (Result, error) {
	if len(x0) == 0 {
		return Result{}, fault("empty initial point", nil)
	}
	if !allFinite(x0) {
		return Result{}, fault("non-finite initial point", nil)
	}
	if f0 := f(x0); !isFinite(f0) {
		return Result{}, fault("non-finite objective at initial point", nil)
	}

	gradTol := b.GradientTolerance
	if gradTol == 0 {
		gradTol = 1e-6
	}
	fTol := b.FunctionTolerance
	if fTol == 0 {
		fTol = 1e-10
	}

	fdSettings := &fd.Settings{Formula: fd.Central, Step: b.Step}
	problem := optimize.Problem{
		Func: f,
		Grad: func(grad, x []float64) {
			fd.Gradient(grad, f, x, fdSettings)
		},
	}
	settings := &optimize.Settings{
		GradientThreshold: gradTol,
		MajorIterations:   maxIterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   fTol,
			Relative:   fTol,
			Iterations: 10,
		},
	}

	res, err := optimize.Minimize(problem, x0, settings, &optimize.BFGS{})
	if res == nil {
		return Result{}, fault("bfgs", err)
	}
	if !allFinite(res.X) || !isFinite(res.F) {
		return Result{}, fault("non-finite result", err)
	}

	code := codeFor(res.Status)
	if err != nil && !code.HardFailure() {
		// Line search breakdowns still leave the best point found.
		code = NoImprovement
	}
	return Result{
		X:          res.X,
		F:          res.F,
		Code:       code,
		Iterations: res.MajorIterations,
	}, nil
}

// codeFor maps a gonum termination status onto a TerminationCode.
func codeFor(s optimize.Status) TerminationCode {
	switch s {
	case optimize.Success, optimize.GradientThreshold:
		return GradientConverged
	case optimize.FunctionConvergence, optimize.StepConvergence, optimize.FunctionThreshold, optimize.MethodConverge:
		return StepConverged
	case optimize.IterationLimit, optimize.RuntimeLimit,
		optimize.FunctionEvaluationLimit, optimize.GradientEvaluationLimit:
		return IterationLimit
	case optimize.FunctionNegativeInfinity:
		return Diverged
	}
	return NoImprovement
}
