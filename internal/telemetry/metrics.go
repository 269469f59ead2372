package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	instrumentationName = "github.com/wolfeidau/buildmode"
)

// Metrics holds the build metric instruments
type Metrics struct {
	BuildsTotal      metric.Int64Counter
	BuildErrorsTotal metric.Int64Counter
	BuildDuration    metric.Float64Histogram
	OutputBytesTotal metric.Int64Counter
}

var (
	once    sync.Once
	metrics *Metrics
)

// GetMetrics returns the singleton Metrics instance, initializing it if necessary.
// Instruments created before Init are delegated to the provider installed later.
func GetMetrics() *Metrics {
	once.Do(func() {
		metrics = initMetrics()
	})
	return metrics
}

func initMetrics() *Metrics {
	meter := otel.GetMeterProvider().Meter(instrumentationName)

	m := &Metrics{}

	m.BuildsTotal, _ = meter.Int64Counter(
		"buildmode.builds.total",
		metric.WithDescription("Total number of bundler runs"),
		metric.WithUnit("{build}"),
	)

	m.BuildErrorsTotal, _ = meter.Int64Counter(
		"buildmode.builds.errors.total",
		metric.WithDescription("Total number of bundler runs that reported errors"),
		metric.WithUnit("{build}"),
	)

	m.BuildDuration, _ = meter.Float64Histogram(
		"buildmode.builds.duration",
		metric.WithDescription("Duration of bundler runs"),
		metric.WithUnit("ms"),
	)

	m.OutputBytesTotal, _ = meter.Int64Counter(
		"buildmode.output.bytes.total",
		metric.WithDescription("Total bytes of bundle output produced"),
		metric.WithUnit("By"),
	)

	return m
}

// RecordBuild records one bundler run for the given mode.
func (m *Metrics) RecordBuild(ctx context.Context, mode string, started time.Time, outputBytes int64, failed bool) {
	attrs := metric.WithAttributes(attribute.String("mode", mode))

	m.BuildsTotal.Add(ctx, 1, attrs)
	m.BuildDuration.Record(ctx, float64(time.Since(started).Milliseconds()), attrs)

	if failed {
		m.BuildErrorsTotal.Add(ctx, 1, attrs)
		return
	}

	m.OutputBytesTotal.Add(ctx, outputBytes, attrs)
}
