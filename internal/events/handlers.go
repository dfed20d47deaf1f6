package events

import (
	"context"
	"log/slog"

	"github.com/phrazzld/jobmatch-api/internal/metrics"
)

// MetricsHandler counts match transitions by event type and acting side.
func MetricsHandler() EventHandler {
	return HandlerFunc(func(_ context.Context, event *MatchEvent) error {
		metrics.MatchTransitionsTotal.WithLabelValues(event.Type, string(event.Side)).Inc()
		return nil
	})
}

// AuditHandler writes one structured audit record per event.
func AuditHandler(base *slog.Logger) EventHandler {
	if base == nil {
		base = slog.Default()
	}
	audit := base.With("component", "match_audit")
	return HandlerFunc(func(ctx context.Context, event *MatchEvent) error {
		audit.InfoContext(ctx, "match transition",
			slog.String("event_id", event.ID.String()),
			slog.String("event_type", event.Type),
			slog.String("job_ad_id", event.JobAdID.String()),
			slog.String("job_application_id", event.JobApplicationID.String()),
			slog.String("status", string(event.Status)),
			slog.String("side", string(event.Side)),
			slog.Time("occurred_at", event.OccurredAt))
		return nil
	})
}
