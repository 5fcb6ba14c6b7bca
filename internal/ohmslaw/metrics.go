package ohmslaw

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"electrician-pro/internal/series"
)

// Metric instruments, initialized once via InitMetrics().
var (
	solveCounter    metric.Int64Counter
	solveHistogram  metric.Float64Histogram
	passesHistogram metric.Int64Histogram
	errorCounter    metric.Int64Counter
	conflictCounter metric.Int64Counter
)

// solverPasses is scraped from /metrics alongside the OTLP push.
var solverPasses = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "series",
	Subsystem: "solver",
	Name:      "passes",
	Help:      "Fixed-point passes needed to solve a series circuit.",
	Buckets:   prometheus.LinearBuckets(1, 1, 10),
}, []string{"converged"})

// InitMetrics registers OTel metric instruments for the solver domain.
// Call this once at startup (after the meter provider is installed).
func InitMetrics() error {
	meter := otel.Meter("ohmslaw")

	var err error

	solveCounter, err = meter.Int64Counter("ohmslaw.series.solves.total",
		metric.WithDescription("Total number of series circuits solved"),
		metric.WithUnit("{circuit}"),
	)
	if err != nil {
		return fmt.Errorf("creating solve counter: %w", err)
	}

	solveHistogram, err = meter.Float64Histogram("ohmslaw.series.solve.duration",
		metric.WithDescription("Duration of series solves in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating solve histogram: %w", err)
	}

	passesHistogram, err = meter.Int64Histogram("ohmslaw.series.solve.passes",
		metric.WithDescription("Fixed-point passes per solve"),
		metric.WithUnit("{pass}"),
		metric.WithExplicitBucketBoundaries(1, 2, 3, 5, 10, 20, series.MaxPasses),
	)
	if err != nil {
		return fmt.Errorf("creating passes histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("ohmslaw.errors.total",
		metric.WithDescription("Total number of rejected solver requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	conflictCounter, err = meter.Int64Counter("ohmslaw.series.conflicts.total",
		metric.WithDescription("Total number of current conflicts between components and totals"),
		metric.WithUnit("{conflict}"),
	)
	if err != nil {
		return fmt.Errorf("creating conflict counter: %w", err)
	}

	return nil
}
