// Package minimizer defines the unconstrained minimization contract used to
// fit item parameters, and two implementations of it.
//
//   - [BFGS] is a quasi-Newton method backed by gonum/optimize with
//     central-difference gradients. It is the default.
//   - [Adam] is a first-order fallback with bias correction and a cosine
//     annealed learning rate.
//
// A minimization either succeeds with a [Result] whose [TerminationCode]
// grades the quality of the stopping point, or fails with an error wrapping
// [ErrNumericalFault]. Codes above [NoImprovement] are hard failures: the
// point returned should not be trusted.
//
// # Usage
//
//	res, err := minimizer.BFGS{}.Minimize(f, x0, 500)
//	if err != nil || res.Code.HardFailure() {
//	    // keep the previous estimate
//	}
package minimizer
