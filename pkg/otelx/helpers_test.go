package otelx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetSpanAttrs(t *testing.T) {
	t.Run("nil span is a no-op", func(t *testing.T) {
		SetSpanAttrs(nil, map[string]any{"key": "value"})
	})

	t.Run("sets converted attributes", func(t *testing.T) {
		exporter := tracetest.NewInMemoryExporter()
		provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
		_, span := provider.Tracer("test").Start(context.Background(), "test")

		SetSpanAttrs(span, map[string]any{
			"str": "value",
			"int": 42,
		})
		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Contains(t, spans[0].Attributes, attribute.String("str", "value"))
		assert.Contains(t, spans[0].Attributes, attribute.Int("int", 42))
	})
}

func TestRecordSpanError(t *testing.T) {
	t.Run("nil span and nil error are no-ops", func(t *testing.T) {
		RecordSpanError(nil, errors.New("boom"), "")

		exporter := tracetest.NewInMemoryExporter()
		provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
		_, span := provider.Tracer("test").Start(context.Background(), "test")
		RecordSpanError(span, nil, "desc")
		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Empty(t, spans[0].Events)
	})

	t.Run("records error and status", func(t *testing.T) {
		exporter := tracetest.NewInMemoryExporter()
		provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
		_, span := provider.Tracer("test").Start(context.Background(), "test")
		RecordSpanError(span, errors.New("boom"), "something failed")
		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		require.Len(t, spans[0].Events, 1)
		assert.Equal(t, "something failed", spans[0].Status.Description)
	})
}

func TestConvertToAttribute(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		value    any
		expected attribute.KeyValue
	}{
		{name: "string", value: "v", expected: attribute.String("k", "v")},
		{name: "int", value: 3, expected: attribute.Int("k", 3)},
		{name: "int16", value: int16(5), expected: attribute.Int("k", 5)},
		{name: "int64", value: int64(9), expected: attribute.Int64("k", 9)},
		{name: "bool", value: true, expected: attribute.Bool("k", true)},
		{name: "float", value: 1.5, expected: attribute.Float64("k", 1.5)},
		{name: "nil", value: nil, expected: attribute.String("k", "<nil>")},
		{name: "uuid", value: id, expected: attribute.String("k", id.String())},
		{name: "time", value: ts, expected: attribute.String("k", ts.Format(time.RFC3339Nano))},
		{name: "error", value: errors.New("boom"), expected: attribute.String("k", "boom")},
		{name: "fallback", value: struct{ A int }{A: 1}, expected: attribute.String("k", "{1}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, convertToAttribute("k", tt.value))
		})
	}
}
