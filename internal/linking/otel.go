package linking

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/seawatch/seawatch/internal/model/core"
)

const instrumentationName = "github.com/seawatch/seawatch/internal/linking"

// Uses the global OTel meter; instruments are no-ops unless an SDK is
// configured by the host process.
func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

func (e *Engine) initMetrics() {
	var err error
	e.linksFormed, err = meter().Int64Counter(
		"seawatch.linking.links_formed",
		metric.WithDescription("Mission/track-point links established, by reason"),
	)
	if err != nil {
		e.log.Warn().Err(err).Msg("failed to create links_formed counter")
	}
	e.conflictsSkipped, err = meter().Int64Counter(
		"seawatch.linking.conflicts_skipped",
		metric.WithDescription("Auto-link candidates skipped due to an existing bind"),
	)
	if err != nil {
		e.log.Warn().Err(err).Msg("failed to create conflicts_skipped counter")
	}
}

func (e *Engine) countLink(ctx context.Context, reason core.LinkReason) {
	if e.linksFormed == nil {
		return
	}
	e.linksFormed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", string(reason)),
	))
}

func (e *Engine) countConflict(ctx context.Context, side string) {
	if e.conflictsSkipped == nil {
		return
	}
	e.conflictsSkipped.Add(ctx, 1, metric.WithAttributes(
		attribute.String("bound_side", side),
	))
}
