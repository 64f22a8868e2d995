package telemetry_test

import (
	"context"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitTracer(t *testing.T) {
	ctx := context.Background()

	t.Run("Without exporter", func(t *testing.T) {
		tp, err := telemetry.InitTracer(ctx, &config.Otel{ServiceName: "storefront-test", SamplerRatio: 1})
		require.NoError(t, err)
		t.Cleanup(func() { _ = tp.Shutdown(ctx) })

		assert.Same(t, tp, otel.GetTracerProvider())

		_, span := otel.Tracer("test").Start(ctx, "op")
		assert.True(t, span.SpanContext().IsSampled())
		span.End()
	})

	t.Run("With exporter endpoint", func(t *testing.T) {
		tp, err := telemetry.InitTracer(ctx, &config.Otel{
			ServiceName:      "storefront-test",
			ExporterEndpoint: "http://localhost:4318/v1/traces",
			SamplerRatio:     0,
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

		_, span := otel.Tracer("test").Start(ctx, "op")
		assert.False(t, span.SpanContext().IsSampled())
		span.End()
	})
}
