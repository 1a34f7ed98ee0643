package retained

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/agiangrant/paper/retained"

// registryMetrics holds the registry's otel instruments.
type registryMetrics struct {
	live           metric.Int64UpDownCounter
	created        metric.Int64Counter
	reclaimed      metric.Int64Counter
	updateDuration metric.Float64Histogram
}

func newRegistryMetrics(mp metric.MeterProvider) (*registryMetrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(instrumentationName)

	var (
		m   registryMetrics
		err error
	)
	m.live, err = meter.Int64UpDownCounter("paper.styles.live",
		metric.WithDescription("Element styles currently registered"),
		metric.WithUnit("{style}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create live counter: %w", err)
	}

	m.created, err = meter.Int64Counter("paper.styles.created",
		metric.WithDescription("Element styles registered for a previously unseen identity"),
		metric.WithUnit("{style}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create created counter: %w", err)
	}

	m.reclaimed, err = meter.Int64Counter("paper.styles.reclaimed",
		metric.WithDescription("Element styles returned to the pool at end of frame"),
		metric.WithUnit("{style}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create reclaimed counter: %w", err)
	}

	m.updateDuration, err = meter.Float64Histogram("paper.styles.update.duration",
		metric.WithDescription("Time spent resolving styles for one frame"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 16),
	)
	if err != nil {
		return nil, fmt.Errorf("create update histogram: %w", err)
	}
	return &m, nil
}

func (m *registryMetrics) registered(n int) {
	if n == 0 {
		return
	}
	ctx := context.Background()
	m.created.Add(ctx, int64(n))
	m.live.Add(ctx, int64(n))
}

func (m *registryMetrics) released(n int) {
	if n == 0 {
		return
	}
	ctx := context.Background()
	m.reclaimed.Add(ctx, int64(n))
	m.live.Add(ctx, -int64(n))
}

func (m *registryMetrics) updated(d time.Duration) {
	m.updateDuration.Record(context.Background(), float64(d)/float64(time.Millisecond))
}
