package telemetry

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	instrumentationName = "github.com/wolfeidau/valuesim"
)

// Metrics holds all the OpenTelemetry metric instruments
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram

	// Domain metrics
	RoundsCreatedTotal      metric.Int64Counter
	ValidationFailuresTotal metric.Int64Counter
	CapTableBuildDuration   metric.Float64Histogram
	ScenariosSharedTotal    metric.Int64Counter

	// Admin metrics
	AdminOperationsTotal metric.Int64Counter
}

var (
	once    sync.Once
	metrics *Metrics
)

// GetMetrics returns the singleton Metrics instance, initializing it if necessary
func GetMetrics() *Metrics {
	once.Do(func() {
		metrics = initMetrics()
	})
	return metrics
}

// initMetrics creates and registers all metric instruments
func initMetrics() *Metrics {
	meter := otel.GetMeterProvider().Meter(instrumentationName)

	m := &Metrics{}

	m.HTTPRequestsTotal, _ = meter.Int64Counter(
		"valuesim.http.requests.total",
		metric.WithDescription("Total number of HTTP requests served"),
		metric.WithUnit("{request}"),
	)

	m.HTTPRequestDuration, _ = meter.Float64Histogram(
		"valuesim.http.request.duration",
		metric.WithDescription("Duration of HTTP requests"),
		metric.WithUnit("ms"),
	)

	m.RoundsCreatedTotal, _ = meter.Int64Counter(
		"valuesim.rounds.created.total",
		metric.WithDescription("Total number of funding rounds created"),
		metric.WithUnit("{round}"),
	)

	m.ValidationFailuresTotal, _ = meter.Int64Counter(
		"valuesim.validation.failures.total",
		metric.WithDescription("Total number of records rejected by validation"),
		metric.WithUnit("{record}"),
	)

	m.CapTableBuildDuration, _ = meter.Float64Histogram(
		"valuesim.captable.build.duration",
		metric.WithDescription("Duration of cap table computation"),
		metric.WithUnit("ms"),
	)

	m.ScenariosSharedTotal, _ = meter.Int64Counter(
		"valuesim.scenarios.shared.total",
		metric.WithDescription("Total number of shared scenario lookups"),
		metric.WithUnit("{lookup}"),
	)

	m.AdminOperationsTotal, _ = meter.Int64Counter(
		"valuesim.admin.operations.total",
		metric.WithDescription("Total number of administrative operations attempted"),
		metric.WithUnit("{operation}"),
	)

	return m
}
