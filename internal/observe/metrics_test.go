package observe

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestRecordReview(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordReview(ctx, "debate", OutcomeOK, 3*time.Millisecond, 420)
	m.RecordReview(ctx, "debate", OutcomeOK, 5*time.Millisecond, 380)
	m.RecordReview(ctx, "monologue", OutcomeExtractionEmpty, time.Millisecond, 0)

	rm := collect(t, reader)

	reviews := findMetric(rm, "scriptcoach.reviews")
	if reviews == nil {
		t.Fatal("reviews counter not found")
	}
	sum, ok := reviews.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", reviews.Data)
	}
	counts := map[string]int64{}
	for _, dp := range sum.DataPoints {
		st, _ := dp.Attributes.Value(attribute.Key("speech_type"))
		out, _ := dp.Attributes.Value(attribute.Key("outcome"))
		counts[st.AsString()+"/"+out.AsString()] = dp.Value
	}
	if counts["debate/ok"] != 2 || counts["monologue/extraction_empty"] != 1 {
		t.Errorf("unexpected review counts: %v", counts)
	}

	dur := findMetric(rm, "scriptcoach.review.duration")
	if dur == nil {
		t.Fatal("review duration histogram not found")
	}
	hist, ok := dur.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("expected Histogram[float64], got %T", dur.Data)
	}
	var total uint64
	for _, dp := range hist.DataPoints {
		total += dp.Count
	}
	if total != 3 {
		t.Errorf("expected 3 duration observations, got %d", total)
	}

	words := findMetric(rm, "scriptcoach.review.words")
	if words == nil {
		t.Fatal("review words histogram not found")
	}
	wh := words.Data.(metricdata.Histogram[int64])
	if len(wh.DataPoints) != 1 || wh.DataPoints[0].Count != 2 || wh.DataPoints[0].Sum != 800 {
		t.Errorf("expected only successful reviews in word histogram, got %+v", wh.DataPoints)
	}
}

func TestRecordToolCallAndHTTP(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordToolCall(ctx, "coach_analyze", "ok")
	m.RecordTruncation(ctx)
	m.RecordHTTPRequest(ctx, "POST", "/analyze", 200, 10*time.Millisecond)

	rm := collect(t, reader)
	for _, name := range []string{
		"scriptcoach.tool.calls",
		"scriptcoach.truncations",
		"scriptcoach.http.request.duration",
	} {
		if findMetric(rm, name) == nil {
			t.Errorf("metric %s not found", name)
		}
	}
}

func TestStartSpanAndTraceID(t *testing.T) {
	if got := TraceID(context.Background()); got != "" {
		t.Errorf("expected empty trace id, got %q", got)
	}

	tp := sdktrace.NewTracerProvider()
	orig := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(orig)
		_ = tp.Shutdown(context.Background())
	})

	ctx, span := StartSpan(context.Background(), "review")
	defer span.End()
	if id := TraceID(ctx); len(id) != 32 {
		t.Errorf("expected 32-char trace id, got %q", id)
	}
}

func TestInitProvider(t *testing.T) {
	origMP := otel.GetMeterProvider()
	origTP := otel.GetTracerProvider()
	t.Cleanup(func() {
		otel.SetMeterProvider(origMP)
		otel.SetTracerProvider(origTP)
	})

	shutdown, err := InitProvider(context.Background(), ProviderConfig{ServiceVersion: "test"})
	if err != nil {
		t.Fatalf("InitProvider: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}
