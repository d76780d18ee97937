package observability

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"

	"github.com/noorstudy/noorstudy-backend/internal/pkg/envutil"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
)

type Config struct {
	ServiceName string
	Environment string
	Version     string
}

var (
	initOnce sync.Once
	shutdown func(context.Context) error
)

// Init installs the global tracer provider. Tracing is off unless
// OTEL_ENABLED is set truthy; with no OTLP endpoint configured spans go to
// the stdout exporter. Returns the provider shutdown hook, nil when tracing
// stayed off.
func Init(ctx context.Context, log *logger.Logger, cfg Config) func(context.Context) error {
	initOnce.Do(func() {
		if !enabled(log) {
			return
		}

		serviceName := strings.TrimSpace(cfg.ServiceName)
		if serviceName == "" {
			serviceName = "noorstudy"
		}
		res, err := resource.New(ctx, resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(strings.TrimSpace(cfg.Version)),
			attribute.String("deployment.environment", strings.TrimSpace(cfg.Environment)),
		))
		if err != nil && log != nil {
			log.Warn("otel resource init failed, continuing without attributes", "error", err)
		}

		exporter, err := newExporter(ctx, log)
		if err != nil {
			if log != nil {
				log.Warn("otel exporter init failed, tracing disabled", "error", err)
			}
			return
		}

		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio(log)))),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
		shutdown = tp.Shutdown

		if log != nil {
			log.Info("otel tracing initialized", "service", serviceName, "endpoint", endpoint(log))
		}
	})
	return shutdown
}

func enabled(log *logger.Logger) bool {
	switch strings.ToLower(strings.TrimSpace(envutil.GetEnv("OTEL_ENABLED", "", log))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func endpoint(log *logger.Logger) string {
	return strings.TrimSpace(envutil.GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "", log))
}

func sampleRatio(log *logger.Logger) float64 {
	raw := strings.TrimSpace(envutil.GetEnv("OTEL_SAMPLER_RATIO", "", log))
	if raw == "" {
		return 0.1
	}
	ratio, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0.1
	}
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// newExporter returns the OTLP/HTTP exporter when an endpoint is
// configured; otherwise the stdout exporter, which needs no collector.
func newExporter(ctx context.Context, log *logger.Logger) (sdktrace.SpanExporter, error) {
	if ep := endpoint(log); ep != "" {
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(ep)}
		if insecure(log) {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	}
	if log != nil {
		log.Warn("otel using stdout exporter, no OTLP endpoint configured")
	}
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

func insecure(log *logger.Logger) bool {
	switch strings.ToLower(strings.TrimSpace(envutil.GetEnv("OTEL_EXPORTER_OTLP_INSECURE", "", log))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
