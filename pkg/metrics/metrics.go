package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

type Metrics struct {
	HTTPRequests metric.Int64Counter
	HTTPDuration metric.Float64Histogram
	FeedRequests metric.Int64Counter
	VotesCast    metric.Int64Counter
	ReportsFiled metric.Int64Counter
}

// Setup registers the instruments on a Prometheus-backed meter provider and returns
// the scrape handler.
func Setup(serviceName string) (*Metrics, http.Handler, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	m, err := newMetrics(provider.Meter(serviceName))
	if err != nil {
		return nil, nil, err
	}
	return m, promhttp.Handler(), nil
}

// Noop returns instruments that record nothing, for tests and tools
func Noop() *Metrics {
	m, _ := newMetrics(noop.NewMeterProvider().Meter("noop"))
	return m
}

func newMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.HTTPRequests, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	m.HTTPDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
	)
	if err != nil {
		return nil, err
	}

	m.FeedRequests, err = meter.Int64Counter(
		"feed_requests_total",
		metric.WithDescription("Feed pages served, by sort mode"),
	)
	if err != nil {
		return nil, err
	}

	m.VotesCast, err = meter.Int64Counter(
		"votes_cast_total",
		metric.WithDescription("Votes cast, by value"),
	)
	if err != nil {
		return nil, err
	}

	m.ReportsFiled, err = meter.Int64Counter(
		"reports_filed_total",
		metric.WithDescription("Post reports filed"),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	labels := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.Int("status", status),
	)

	m.HTTPRequests.Add(ctx, 1, labels)
	m.HTTPDuration.Record(ctx, duration.Seconds(), labels)
}

func (m *Metrics) RecordFeedRequest(ctx context.Context, sort string) {
	m.FeedRequests.Add(ctx, 1, metric.WithAttributes(attribute.String("sort", sort)))
}

func (m *Metrics) RecordVote(ctx context.Context, value int) {
	m.VotesCast.Add(ctx, 1, metric.WithAttributes(attribute.String("value", strconv.Itoa(value))))
}

func (m *Metrics) RecordReport(ctx context.Context) {
	m.ReportsFiled.Add(ctx, 1)
}
