package estimation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/sky-flux/irt"
)

// Estep computes the expected sufficient statistics of responses under the
// current item parameters and latent distribution.
//
// responses[i][j] is the category examinee i chose on item j, or
// irt.MissingResponse. For each examinee the posterior over quadrature points
//
//	post[k] ∝ density[k] · Π_j P_j(x_ij | θ_k)
//
// is computed in log space and accumulated into Rjk[j][x_ij][k] and Nt[k].
// The second return value is the marginal log-likelihood of all responses.
func Estep(items []irt.ItemResponseModel, dist *irt.Distribution, responses [][]int) (*irt.Estimates, float64, error) {
	n := dist.Len()
	est := irt.NewEstimates(items, n)

	logPrior := make([]float64, n)
	for k := range logPrior {
		logPrior[k] = math.Log(dist.DensityAt(k))
	}
	logPost := make([]float64, n)

	var loglik float64
	for i, row := range responses {
		if len(row) != len(items) {
			return nil, 0, fmt.Errorf("%w: examinee %d has %d responses for %d items",
				irt.ErrInvalidResponse, i, len(row), len(items))
		}

		copy(logPost, logPrior)
		for j, x := range row {
			if x == irt.MissingResponse {
				continue
			}
			if x < 0 || x >= items[j].NumCategories() {
				return nil, 0, fmt.Errorf("%w: examinee %d item %d category %d",
					irt.ErrInvalidResponse, i, j, x)
			}
			for k := range logPost {
				logPost[k] += math.Log(clampProb(items[j].Probability(dist.PointAt(k), x)))
			}
		}

		lse := floats.LogSumExp(logPost)
		loglik += lse
		for k, lp := range logPost {
			post := math.Exp(lp - lse)
			est.Nt[k] += post
			for j, x := range row {
				if x != irt.MissingResponse {
					est.Rjk[j][x][k] += post
				}
			}
		}
	}
	return est, loglik, nil
}
