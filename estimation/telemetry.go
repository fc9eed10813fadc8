package estimation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/sky-flux/irt/estimation")

// startRunSpan creates a span for one maximization pass.
func startRunSpan(ctx context.Context, passID string, items, threshold int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "estimation.MStep.Run",
		trace.WithAttributes(
			attribute.String("mstep.pass_id", passID),
			attribute.Int("mstep.items", items),
			attribute.Int("mstep.threshold", threshold),
		),
	)
}

// setRunSpanResult records the pass outcome on span.
func setRunSpanResult(span trace.Span, diag Diagnostics, err error) {
	span.SetAttributes(
		attribute.Int("mstep.hard_failures", diag.HardFailures),
		attribute.Int("mstep.negative_discrimination", diag.NegativeDiscrimination),
		attribute.Int("mstep.negative_guessing", diag.NegativeGuessing),
		attribute.Int("mstep.slipping_out_of_range", diag.SlippingOutOfRange),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// startUpdateSpan creates a span for a latent distribution update.
func startUpdateSpan(ctx context.Context, items, points int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "estimation.MStep.UpdateLatentDistribution",
		trace.WithAttributes(
			attribute.Int("mstep.items", items),
			attribute.Int("mstep.points", points),
		),
	)
}

// setUpdateSpanResult records the identification transform on span.
func setUpdateSpanResult(span trace.Span, mean, sd float64, err error) {
	span.SetAttributes(
		attribute.Float64("latent.mean", mean),
		attribute.Float64("latent.sd", sd),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
