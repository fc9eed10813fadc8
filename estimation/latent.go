package estimation

import (
	"context"
	"fmt"
	"math"

	"github.com/sky-flux/irt"
)

// minStandardDeviation is the smallest spread for which an identification
// transform is computed.
const minStandardDeviation = 1e-12

// UpdateLatentDistribution re-estimates the ability distribution from est and
// rescales it, together with every item, to mean 0 and standard deviation 1.
//
//	density[k] = Nt[k] / ΣNt
//	slope      = 1 / SD
//	intercept  = -slope · mean
//	point[k]   = point[k]·slope + intercept
//
// Each item is rescaled with the same (intercept, slope), so response
// probabilities are unchanged for every examinee. It must run after Run has
// returned for the whole item collection.
//
// If ΣNt is not positive or the re-estimated distribution has no spread, it
// returns ErrDegenerateDistribution and modifies neither dist nor the items.
func (m *MStep) UpdateLatentDistribution(ctx context.Context, items []irt.ItemResponseModel, dist *irt.Distribution, est *irt.Estimates) (*irt.Distribution, error) {
	_, span := startUpdateSpan(ctx, len(items), dist.Len())
	defer span.End()

	if len(est.Nt) != dist.Len() {
		err := fmt.Errorf("%w: %d marginal counts for %d points", irt.ErrEstimatesMismatch, len(est.Nt), dist.Len())
		setUpdateSpanResult(span, math.NaN(), math.NaN(), err)
		return dist, err
	}

	sumNk := est.SumNt()
	if !(sumNk > 0) || math.IsInf(sumNk, 0) {
		err := fmt.Errorf("%w: marginal counts sum to %f", ErrDegenerateDistribution, sumNk)
		setUpdateSpanResult(span, math.NaN(), math.NaN(), err)
		m.logger.Error("latent distribution update failed", "error", err)
		return dist, err
	}

	// Work on a copy so a degenerate result leaves dist untouched.
	next := dist.Clone()
	for k, nk := range est.Nt {
		next.SetDensityAt(k, nk/sumNk)
	}
	mean := next.Mean()
	sd := next.StandardDeviation()
	if !(sd > minStandardDeviation) || math.IsInf(sd, 0) || math.IsNaN(mean) {
		err := fmt.Errorf("%w: mean %f, standard deviation %g", ErrDegenerateDistribution, mean, sd)
		setUpdateSpanResult(span, mean, sd, err)
		m.logger.Error("latent distribution update failed", "error", err)
		return dist, err
	}

	slope := 1.0 / sd
	intercept := -slope * mean
	for k := 0; k < dist.Len(); k++ {
		dist.SetDensityAt(k, next.DensityAt(k))
		dist.SetPointAt(k, dist.PointAt(k)*slope+intercept)
	}
	for _, item := range items {
		item.Rescale(intercept, slope)
	}

	setUpdateSpanResult(span, mean, sd, nil)
	m.metrics.ObserveLatentDistribution(mean, sd)
	m.logger.Debug("latent distribution updated",
		"mean", mean,
		"sd", sd,
		"intercept", intercept,
		"slope", slope,
	)
	return dist, nil
}
