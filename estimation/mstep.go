package estimation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/sky-flux/irt"
	"github.com/sky-flux/irt/minimizer"
)

// MStep re-estimates item parameters by maximizing each item's marginal
// log-likelihood. An MStep is safe for concurrent use; concurrent passes share
// its worker budget.
type MStep struct {
	threshold     int
	maxIterations int
	workers       *semaphore.Weighted // slots for goroutines beyond the caller's
	minimizer     minimizer.Minimizer
	logger        *slog.Logger
	metrics       MetricsCollector
}

// NewMStep creates an MStep from the given config.
// Zero-value fields are filled with defaults; negative values return ErrInvalidConfig.
func NewMStep(cfg Config) (*MStep, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	return &MStep{
		threshold:     cfg.Threshold,
		maxIterations: cfg.MaxIterations,
		workers:       semaphore.NewWeighted(int64(cfg.Workers - 1)),
		minimizer:     cfg.Minimizer,
		logger:        cfg.Logger,
		metrics:       cfg.Metrics,
	}, nil
}

// pass is the read-only input shared by every range of one Run.
type pass struct {
	items  []irt.ItemResponseModel
	points []float64
	est    *irt.Estimates
}

// Run fits every item and writes the results to the items' proposal slots.
// Current parameters are read but never written.
//
// A fit that faults or stops with a hard-failure code leaves that item's
// proposal untouched and is counted in Diagnostics.HardFailures; it never
// stops the pass. Run returns an error only when est does not match items and
// dist, or when ctx is cancelled. In the latter case some proposals may
// already have been written.
func (m *MStep) Run(ctx context.Context, items []irt.ItemResponseModel, dist *irt.Distribution, est *irt.Estimates) (Diagnostics, error) {
	if err := est.Check(items, dist.Len()); err != nil {
		return Diagnostics{}, err
	}

	passID := uuid.NewString()
	ctx, span := startRunSpan(ctx, passID, len(items), m.threshold)
	defer span.End()

	start := time.Now()
	p := &pass{items: items, points: dist.Points(), est: est}
	diag, err := m.compute(ctx, p, 0, len(items))
	elapsed := time.Since(start)

	setRunSpanResult(span, diag, err)
	m.metrics.ObservePass(diag, len(items), elapsed)
	if err != nil {
		m.logger.Warn("mstep pass interrupted", "pass_id", passID, "error", err)
		return diag, err
	}

	m.logger.Debug("mstep pass complete",
		"pass_id", passID,
		"items", len(items),
		"elapsed", elapsed,
		"diagnostics", diag,
	)
	return diag, nil
}

// compute fits items [start, start+length). Ranges above the threshold are
// halved; the left half runs on a new goroutine when a worker slot is free.
func (m *MStep) compute(ctx context.Context, p *pass, start, length int) (Diagnostics, error) {
	if length <= m.threshold {
		return m.computeDirectly(ctx, p, start, length)
	}
	split := length / 2

	var left, right Diagnostics
	g, gctx := errgroup.WithContext(ctx)
	runLeft := func() (err error) {
		left, err = m.compute(gctx, p, start, split)
		return err
	}
	if m.workers.TryAcquire(1) {
		g.Go(func() error {
			defer m.workers.Release(1)
			return runLeft()
		})
	} else if err := runLeft(); err != nil {
		return left, err
	}

	right, rightErr := m.compute(gctx, p, start+split, length-split)
	if err := g.Wait(); err != nil {
		return left.Add(right), err
	}
	return left.Add(right), rightErr
}

// computeDirectly fits each item of the range in order on the calling goroutine.
func (m *MStep) computeDirectly(ctx context.Context, p *pass, start, length int) (Diagnostics, error) {
	var d Diagnostics
	for j := start; j < start+length; j++ {
		if err := ctx.Err(); err != nil {
			return d, err
		}
		d = d.Add(m.fitItem(p, j))
	}
	return d, nil
}

// fitItem fits item j and writes its proposal unless the fit failed.
func (m *MStep) fitItem(p *pass, j int) Diagnostics {
	item := p.items[j]
	begin := time.Now()
	failed := Diagnostics{HardFailures: 1}

	f := negLogLikelihood(item, p.points, p.est.RjkAt(j))
	res, err := m.minimizer.Minimize(f, item.Parameters(), m.maxIterations)
	switch {
	case err != nil:
		m.logger.Warn("item fit faulted", "item", j, "family", item.Family(), "error", err)
		m.metrics.ObserveItemFit(item.Family(), OutcomeFault, time.Since(begin))
		return failed
	case res.Code.HardFailure():
		m.logger.Warn("item fit did not converge",
			"item", j, "family", item.Family(), "code", res.Code, "iterations", res.Iterations)
		m.metrics.ObserveItemFit(item.Family(), OutcomeHardFailure, time.Since(begin))
		return failed
	case len(res.X) != item.NumParameters():
		m.logger.Warn("item fit returned wrong dimension",
			"item", j, "family", item.Family(), "got", len(res.X), "want", item.NumParameters())
		m.metrics.ObserveItemFit(item.Family(), OutcomeFault, time.Since(begin))
		return failed
	}

	proposal, d := applyBounds(item.Family(), res.X)
	if err := item.SetProposal(proposal); err != nil {
		m.logger.Warn("item proposal rejected", "item", j, "family", item.Family(), "error", err)
		m.metrics.ObserveItemFit(item.Family(), OutcomeFault, time.Since(begin))
		return failed
	}
	m.metrics.ObserveItemFit(item.Family(), OutcomeUpdated, time.Since(begin))
	return d
}
