// Package observe holds the service's metrics, tracing helpers and rolling
// review statistics.
//
// Instruments are created through the OpenTelemetry Metrics API; tests should
// build their own [Metrics] with [NewMetrics] and a ManualReader instead of
// relying on [DefaultMetrics].
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/dgallion1/scriptcoach"

// Review outcomes used as the "outcome" attribute and stats key.
const (
	OutcomeOK              = "ok"
	OutcomeMissingInput    = "missing_input"
	OutcomeExtractionEmpty = "extraction_empty"
	OutcomeUnexpected      = "unexpected"
)

// Metrics holds the application's instruments. All fields are safe for
// concurrent use.
type Metrics struct {
	// ReviewDuration is end-to-end review latency (extract, clean, analyze).
	ReviewDuration metric.Float64Histogram

	// Reviews counts reviews by speech_type and outcome.
	Reviews metric.Int64Counter

	// ReviewWords is the word count of each analyzed script.
	ReviewWords metric.Int64Histogram

	// Truncations counts scripts cut at the character limit.
	Truncations metric.Int64Counter

	// ToolCalls counts MCP tool invocations by tool and status.
	ToolCalls metric.Int64Counter

	// HTTPRequestDuration is request latency by method, route and status.
	HTTPRequestDuration metric.Float64Histogram
}

// Analysis is pure CPU work; most reviews finish well under 10ms, parsing a
// large PDF can take seconds.
var latencyBuckets = []float64{
	0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
}

var wordBuckets = []float64{50, 100, 180, 250, 500, 900, 1200, 1600, 2000, 3000}

// NewMetrics creates all instruments from mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.ReviewDuration, err = m.Float64Histogram("scriptcoach.review.duration",
		metric.WithDescription("Latency of a full script review."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Reviews, err = m.Int64Counter("scriptcoach.reviews",
		metric.WithDescription("Total reviews by speech type and outcome."),
	); err != nil {
		return nil, err
	}
	if met.ReviewWords, err = m.Int64Histogram("scriptcoach.review.words",
		metric.WithDescription("Word count of analyzed scripts."),
		metric.WithUnit("{word}"),
		metric.WithExplicitBucketBoundaries(wordBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Truncations, err = m.Int64Counter("scriptcoach.truncations",
		metric.WithDescription("Scripts truncated at the character limit."),
	); err != nil {
		return nil, err
	}
	if met.ToolCalls, err = m.Int64Counter("scriptcoach.tool.calls",
		metric.WithDescription("Total MCP tool invocations by tool and status."),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("scriptcoach.http.request.duration",
		metric.WithDescription("HTTP request latency by method, route and status."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns a process-wide Metrics built on the global
// MeterProvider. Call it after InitProvider.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordReview records one finished review. words is ignored unless the
// review succeeded.
func (m *Metrics) RecordReview(ctx context.Context, speechType, outcome string, d time.Duration, words int) {
	attrs := metric.WithAttributes(
		attribute.String("speech_type", speechType),
		attribute.String("outcome", outcome),
	)
	m.ReviewDuration.Record(ctx, d.Seconds(), attrs)
	m.Reviews.Add(ctx, 1, attrs)
	if outcome == OutcomeOK {
		m.ReviewWords.Record(ctx, int64(words),
			metric.WithAttributes(attribute.String("speech_type", speechType)))
	}
}

// RecordTruncation counts one script cut at the character limit.
func (m *Metrics) RecordTruncation(ctx context.Context) {
	m.Truncations.Add(ctx, 1)
}

// RecordToolCall counts one MCP tool invocation.
func (m *Metrics) RecordToolCall(ctx context.Context, tool, status string) {
	m.ToolCalls.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("tool", tool),
			attribute.String("status", status),
		),
	)
}

// RecordHTTPRequest records the latency of one HTTP request.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, d time.Duration) {
	m.HTTPRequestDuration.Record(ctx, d.Seconds(),
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("route", route),
			attribute.Int("status", status),
		),
	)
}
