package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the metric instruments recorded by the transcription pipeline.
type Metrics struct {
	transcriptionTotal    metric.Int64Counter
	transcriptionDuration metric.Float64Histogram
	transcriptionActive   metric.Int64UpDownCounter
	errorTotal            metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	transcriptionTotal, err := meter.Int64Counter("transcription.total",
		metric.WithDescription("Total number of transcription requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.total counter: %w", err)
	}

	transcriptionDuration, err := meter.Float64Histogram("transcription.duration",
		metric.WithDescription("Duration of transcription requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.duration histogram: %w", err)
	}

	transcriptionActive, err := meter.Int64UpDownCounter("transcription.active",
		metric.WithDescription("Number of transcriptions currently in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.active gauge: %w", err)
	}

	errorTotal, err := meter.Int64Counter("transcription.errors",
		metric.WithDescription("Total transcription failures by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.errors counter: %w", err)
	}

	return &Metrics{
		transcriptionTotal:    transcriptionTotal,
		transcriptionDuration: transcriptionDuration,
		transcriptionActive:   transcriptionActive,
		errorTotal:            errorTotal,
	}, nil
}

// RecordStart increments the in-flight transcription count.
func (m *Metrics) RecordStart(ctx context.Context) {
	if m == nil {
		return
	}
	m.transcriptionActive.Add(ctx, 1)
}

// RecordEnd decrements in-flight transcriptions and records the completed request.
func (m *Metrics) RecordEnd(ctx context.Context, task, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.transcriptionActive.Add(ctx, -1)
	m.transcriptionTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("task", task),
		attribute.String("status", status),
	))
	m.transcriptionDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("task", task),
	))
}

// RecordError records a failure by error code.
func (m *Metrics) RecordError(ctx context.Context, code string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
	))
}
