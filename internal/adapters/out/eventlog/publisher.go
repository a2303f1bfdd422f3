// Package eventlog publishes order lifecycle events to the structured log. It
// is the publisher used when no message broker is configured.
package eventlog

import (
	"context"
	"log/slog"

	"groundhandling/internal/core/ports"
)

var _ ports.OrderEventPublisher = (*Publisher)(nil)

type Publisher struct {
	logger *slog.Logger
}

func NewPublisher(logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{logger: logger.With("component", "order_events")}
}

// Publish logs event at info level. It never fails.
func (p *Publisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	attrs := []slog.Attr{
		slog.String("event_id", event.ID),
		slog.String("type", string(event.Type)),
		slog.String("order_id", event.OrderID),
		slog.String("flight_id", event.FlightID),
		slog.String("kind", event.Kind),
		slog.Int("attempts", event.Attempts),
		slog.Time("occurred_at", event.OccurredAt),
	}
	if event.Reason != "" {
		attrs = append(attrs, slog.String("reason", event.Reason))
	}
	p.logger.LogAttrs(ctx, slog.LevelInfo, "order event", attrs...)
	return nil
}
