package tracing

import (
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// InitTracer installs a global tracer provider exporting to a Jaeger
// collector. An empty collector disables export and only installs
// propagators, so local runs do not need a Jaeger instance.
func InitTracer(serviceName, collector string) (*tracesdk.TracerProvider, error) {
	opts := []tracesdk.TracerProviderOption{
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		)),
	}

	if strings.TrimSpace(collector) != "" {
		exp, err := jaeger.New(jaeger.WithCollectorEndpoint(
			jaeger.WithEndpoint(normalizeJaegerCollector(collector)),
		))
		if err != nil {
			return nil, fmt.Errorf("create jaeger exporter: %w", err)
		}
		opts = append(opts, tracesdk.WithBatcher(exp))
	}

	tp := tracesdk.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp, nil
}

func normalizeJaegerCollector(value string) string {
	endpoint := strings.TrimSpace(value)
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}
	if strings.HasSuffix(endpoint, "/api/traces") {
		return endpoint
	}

	return fmt.Sprintf("%s/api/traces", strings.TrimSuffix(endpoint, "/"))
}
