package electrochem

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments, initialized once via InitMetrics().
var (
	computeCounter         metric.Int64Counter
	computeHistogram       metric.Float64Histogram
	errorCounter           metric.Int64Counter
	etaHistogram           metric.Float64Histogram
	limitingPotentialGauge metric.Float64Gauge
)

// InitMetrics registers the overpotential OTel metric instruments.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("electrochem")

	var err error

	computeCounter, err = meter.Int64Counter("overpotential.computations.total",
		metric.WithDescription("Total number of successful overpotential computations"),
		metric.WithUnit("{computation}"),
	)
	if err != nil {
		return fmt.Errorf("creating compute counter: %w", err)
	}

	computeHistogram, err = meter.Float64Histogram("overpotential.computation.duration",
		metric.WithDescription("Duration of overpotential computations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating compute histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("overpotential.errors.total",
		metric.WithDescription("Total number of rejected overpotential requests by error kind"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	etaHistogram, err = meter.Float64Histogram("overpotential.eta",
		metric.WithDescription("Distribution of computed overpotentials"),
		metric.WithUnit("V"),
		metric.WithExplicitBucketBoundaries(0.1, 0.2, 0.3, 0.4, 0.5, 0.75, 1, 1.5, 2),
	)
	if err != nil {
		return fmt.Errorf("creating eta histogram: %w", err)
	}

	limitingPotentialGauge, err = meter.Float64Gauge("overpotential.limiting_potential",
		metric.WithDescription("Limiting potential of the last computation"),
		metric.WithUnit("V"),
	)
	if err != nil {
		return fmt.Errorf("creating limiting potential gauge: %w", err)
	}

	return nil
}
