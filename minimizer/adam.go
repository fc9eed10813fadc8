package minimizer

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
)

// Adam minimizes with the Adam first-order method and bias correction.
// Gradients are approximated by central differences and the learning rate
// follows a cosine annealing schedule over the iteration budget.
//
// Update rule:
//
//	m[i] = β1·m[i] + (1-β1)·g[i]
//	v[i] = β2·v[i] + (1-β2)·g[i]²
//	m̂[i] = m[i] / (1 - β1^t)
//	v̂[i] = v[i] / (1 - β2^t)
//	x[i] = x[i] - lr_t · m̂[i] / (√v̂[i] + ε)
//
// Zero-valued fields receive defaults.
type Adam struct {
	LearningRate      float64 `json:"learning_rate" yaml:"learning_rate"`           // default 0.04
	Beta1             float64 `json:"beta1" yaml:"beta1"`                           // default 0.9
	Beta2             float64 `json:"beta2" yaml:"beta2"`                           // default 0.999
	Epsilon           float64 `json:"epsilon" yaml:"epsilon"`                       // default 1e-8
	GradientTolerance float64 `json:"gradient_tolerance" yaml:"gradient_tolerance"` // default 1e-5
}

var _ Minimizer = Adam{}

func (a Adam) withDefaults() Adam {
	if a.LearningRate == 0 {
		a.LearningRate = 0.04
	}
	if a.Beta1 == 0 {
		a.Beta1 = 0.9
	}
	if a.Beta2 == 0 {
		a.Beta2 = 0.999
	}
	if a.Epsilon == 0 {
		a.Epsilon = 1e-8
	}
	if a.GradientTolerance == 0 {
		a.GradientTolerance = 1e-5
	}
	return a
}

// Minimize implements Minimizer.
func (a Adam) Minimize(f Objective, x0 []float64, maxIterations int) (Result, error) {
	a = a.withDefaults()
	if len(x0) == 0 {
		return Result{}, fault("empty initial point", nil)
	}

	x := append([]float64(nil), x0...)
	fx := f(x)
	if !allFinite(x) || !isFinite(fx) {
		return Result{}, fault("non-finite objective at initial point", nil)
	}

	n := len(x)
	m := make([]float64, n)
	v := make([]float64, n)
	grad := make([]float64, n)
	settings := &fd.Settings{Formula: fd.Central}
	schedule := newCosineAnnealing(a.LearningRate, maxIterations)

	for t := 1; t <= maxIterations; t++ {
		fd.Gradient(grad, f, x, settings)
		if !allFinite(grad) {
			return Result{}, fault("non-finite gradient", nil)
		}
		if floats.Norm(grad, 2) < a.GradientTolerance {
			return Result{X: x, F: fx, Code: GradientConverged, Iterations: t - 1}, nil
		}

		lr := schedule.lr()
		var maxStep float64
		for i, g := range grad {
			m[i] = a.Beta1*m[i] + (1-a.Beta1)*g
			v[i] = a.Beta2*v[i] + (1-a.Beta2)*g*g

			mHat := m[i] / (1 - math.Pow(a.Beta1, float64(t)))
			vHat := v[i] / (1 - math.Pow(a.Beta2, float64(t)))

			step := lr * mHat / (math.Sqrt(vHat) + a.Epsilon)
			x[i] -= step
			maxStep = math.Max(maxStep, math.Abs(step))
		}
		schedule.step()

		fx = f(x)
		if !isFinite(fx) {
			return Result{}, fault("non-finite objective", nil)
		}
		if maxStep < 1e-12 {
			return Result{X: x, F: fx, Code: StepConverged, Iterations: t}, nil
		}
	}

	return Result{X: x, F: fx, Code: IterationLimit, Iterations: maxIterations}, nil
}

// cosineAnnealing implements the cosine annealing learning rate schedule.
//
//	lr_t = 0.5 * lr_max * (1 + cos(π * t / T_max))
type cosineAnnealing struct {
	lrMax float64
	tMax  int
	t     int
}

func newCosineAnnealing(lrMax float64, tMax int) *cosineAnnealing {
	return &cosineAnnealing{lrMax: lrMax, tMax: tMax}
}

func (ca *cosineAnnealing) lr() float64 {
	if ca.tMax <= 0 {
		return ca.lrMax
	}
	return 0.5 * ca.lrMax * (1 + math.Cos(math.Pi*float64(ca.t)/float64(ca.tMax)))
}

func (ca *cosineAnnealing) step() {
	ca.t++
}
