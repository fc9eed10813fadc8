// Package irt provides item response models, a discrete latent ability
// distribution, and the expected statistics exchanged between the expectation
// and maximization steps of marginal maximum likelihood calibration.
//
// Six model families are supported: the L1 to L4 logistic families for
// dichotomous items, and GPCM and PCM2 for polytomous items. Every model holds
// a current parameter vector and a proposal vector; estimation writes
// proposals and the caller commits them.
//
// Item parameters are estimated by the irt/estimation subpackage.
//
// Basic usage:
//
//	item, err := irt.NewLogistic(irt.L2, []float64{1.0, 0.0}, 1.0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	dist, err := irt.NewNormalQuadrature(41, -4, 4)
//	p := item.Probability(0.5, 1)
package irt
