package minimizer

import (
	"errors"
	"fmt"
	"math"
)

// ErrNumericalFault is returned when a minimizer cannot produce a point at all.
// Use errors.Is to check: errors.Is(err, minimizer.ErrNumericalFault)
var ErrNumericalFault = errors.New("minimizer: numerical fault")

// Objective is a function to be minimized.
type Objective func(x []float64) float64

// Minimizer minimizes an objective starting from x0 within maxIterations
// major iterations.
type Minimizer interface {
	Minimize(f Objective, x0 []float64, maxIterations int) (Result, error)
}

// Func adapts an ordinary function to the Minimizer interface.
type Func func(f Objective, x0 []float64, maxIterations int) (Result, error)

// Minimize calls fn.
func (fn Func) Minimize(f Objective, x0 []float64, maxIterations int) (Result, error) {
	return fn(f, x0, maxIterations)
}

// Result is the outcome of a minimization that produced a point.
type Result struct {
	X          []float64
	F          float64
	Code       TerminationCode
	Iterations int
}

// TerminationCode grades why a minimization stopped.
type TerminationCode int

const (
	GradientConverged TerminationCode = iota + 1 // Gradient is close to zero; probably a minimum.
	StepConverged                                // Successive iterates or values stopped changing.
	NoImprovement                                // Last step failed to find a lower point; may be a minimum.
	IterationLimit                               // Iteration budget exhausted.
	Diverged                                     // Objective is unbounded below along the search path.
)

var codeNames = [...]string{
	GradientConverged: "GradientConverged",
	StepConverged:     "StepConverged",
	NoImprovement:     "NoImprovement",
	IterationLimit:    "IterationLimit",
	Diverged:          "Diverged",
}

var _ fmt.Stringer = TerminationCode(0)

// String returns the code name, or "TerminationCode(n)" for unknown values.
func (c TerminationCode) String() string {
	if c >= GradientConverged && c <= Diverged {
		return codeNames[c]
	}
	return fmt.Sprintf("TerminationCode(%d)", int(c))
}

// HardFailure reports whether the code is above NoImprovement.
func (c TerminationCode) HardFailure() bool {
	return c > NoImprovement
}

// FaultError describes why a minimizer could not produce a point.
type FaultError struct {
	Reason string
	Err    error // underlying cause, may be nil
}

func (e *FaultError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("minimizer: numerical fault: %s: %v", e.Reason, e.Err)
	}
	return "minimizer: numerical fault: " + e.Reason
}

// Is reports ErrNumericalFault as a match.
func (e *FaultError) Is(target error) bool {
	return target == ErrNumericalFault
}

func (e *FaultError) Unwrap() error {
	return e.Err
}

func fault(reason string, err error) error {
	return &FaultError{Reason: reason, Err: err}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func allFinite(x []float64) bool {
	for _, v := range x {
		if !isFinite(v) {
			return false
		}
	}
	return true
}
