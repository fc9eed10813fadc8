// Package estimation runs the maximization step of marginal maximum likelihood
// item calibration, and the expectation step that feeds it.
//
// An [MStep] re-estimates every item independently. The item range is split in
// half recursively until a range holds at most Config.Threshold items; each
// such range is fitted directly on one goroutine. Halves run in parallel while
// worker slots are free and inline otherwise, so the result never depends on
// the degree of parallelism. Diagnostics from both halves are summed at every
// join.
//
// Fitted parameters are written to each item's proposal slot. The caller
// decides whether to commit them, then calls
// [MStep.UpdateLatentDistribution] to re-estimate the ability distribution and
// rescale everything to mean 0 and standard deviation 1.
//
// # Usage
//
//	m, err := estimation.NewMStep(estimation.Config{})
//	est, _, err := estimation.Estep(items, dist, responses)
//	diag, err := m.Run(ctx, items, dist, est)
//	for _, item := range items {
//	    item.Commit()
//	}
//	dist, err = m.UpdateLatentDistribution(ctx, items, dist, est)
package estimation
