package estimation

import (
	"math"

	"github.com/sky-flux/irt"
	"github.com/sky-flux/irt/minimizer"
)

// probClamp keeps log(P) finite when a candidate pushes a probability to 0 or 1.
const probClamp = 1e-10

// negLogLikelihood builds the objective for one item:
//
//	-Σ_c Σ_k r[c][k] · ln P(c | θ_k; params)
//
// points and rjk are read only; the item is never modified.
func negLogLikelihood(item irt.ItemResponseModel, points []float64, rjk [][]float64) minimizer.Objective {
	return func(params []float64) float64 {
		var ll float64
		for c, row := range rjk {
			for k, r := range row {
				if r == 0 {
					continue
				}
				p := item.ProbabilityWith(params, points[k], c)
				ll += r * math.Log(clampProb(p))
			}
		}
		return -ll
	}
}

func clampProb(p float64) float64 {
	return math.Max(probClamp, math.Min(p, 1-probClamp))
}
