package tracer

import (
	"context"
	"time"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.uber.org/zap"
)

// InitTracer installs the global tracer provider and the W3C propagators.
// Spans are exported over OTLP/gRPC when otlpEndpoint is set; otherwise they
// stay in process. The returned provider is never nil so callers can always
// defer Shutdown.
func InitTracer(serviceName, otlpEndpoint string, appLogger *logger.Logger) *sdktrace.TracerProvider {
	log := appLogger.Named("Tracer")
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		log.Warn("Partial OpenTelemetry resource", zap.Error(err))
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if otlpEndpoint == "" {
		log.Info("Trace export disabled: OTEL_EXPORTER_OTLP_ENDPOINT is not set")
	} else {
		// The exporter connects lazily, so an unreachable collector only drops spans.
		exporter, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(otlpEndpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			log.Error("Failed to create OTLP trace exporter", zap.String("endpoint", otlpEndpoint), zap.Error(err))
		} else {
			opts = append(opts, sdktrace.WithBatcher(exporter))
			log.Info("Exporting traces", zap.String("endpoint", otlpEndpoint))
		}
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp
}
