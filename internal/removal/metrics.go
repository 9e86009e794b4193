package removal

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/kinasplayground/hammerremove/internal/removal"

type metrics struct {
	attempts metric.Int64Counter
	removed  metric.Int64Counter
	visited  metric.Int64Histogram
}

// newMetrics creates instruments on the global meter (no-op unless a meter
// provider has been registered).
func newMetrics() (*metrics, error) {
	m := otel.Meter(instrumentationName)

	attempts, err := m.Int64Counter(
		"removal.resolve.attempts",
		metric.WithDescription("Target resolution probes that produced a target, by stage"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resolve attempts counter: %w", err)
	}

	removed, err := m.Int64Counter(
		"removal.pieces.removed",
		metric.WithDescription("Pieces destroyed by connected removal"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating removed counter: %w", err)
	}

	visited, err := m.Int64Histogram(
		"removal.walk.visited",
		metric.WithDescription("Pieces dequeued per connected walk"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating visited histogram: %w", err)
	}

	return &metrics{attempts: attempts, removed: removed, visited: visited}, nil
}

func (m *metrics) resolved(stage string) {
	if m == nil {
		return
	}
	m.attempts.Add(context.Background(), 1, metric.WithAttributes(attribute.String("stage", stage)))
}

func (m *metrics) walked(s Stats) {
	if m == nil {
		return
	}
	ctx := context.Background()
	m.removed.Add(ctx, int64(s.Removed))
	m.visited.Record(ctx, int64(s.Visited))
}
