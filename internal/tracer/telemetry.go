package tracer

import (
	"context"
	"log/slog"
	"sync"

	"harumnesia/internal/config"
	"harumnesia/internal/logger"

	otelpyroscope "github.com/grafana/otel-profiling-go"
	"github.com/grafana/pyroscope-go"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

var (
	once         sync.Once
	shutdownFunc = func(context.Context) {}
	initErr      error
)

var pyroLogrus = func() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return l
}()

// newExporter picks OTLP when a collector is configured, otherwise the
// stdout exporter outside production. A nil exporter disables export.
func newExporter(ctx context.Context, cfg *config.Config) (trace.SpanExporter, error) {
	if cfg.RemoteTraceRpcURI != "" {
		return otlptracegrpc.New(ctx,
			otlptracegrpc.WithInsecure(),
			otlptracegrpc.WithEndpoint(cfg.RemoteTraceRpcURI),
			otlptracegrpc.WithCompressor("gzip"),
		)
	}
	if cfg.IsProduction() || !cfg.TraceStdout {
		return nil, nil
	}
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

// Instance sets up the global tracer provider, the W3C propagators and the
// Pyroscope agent once. The returned function flushes and stops them.
func Instance(globalCtx context.Context, cfg *config.Config) (func(context.Context), error) {
	once.Do(func() {
		log := logger.Instance()

		exp, err := newExporter(globalCtx, cfg)
		if err != nil {
			log.Error("Failed to create span exporter", slog.String("error", err.Error()))
			initErr = err
			return
		}

		// OpenTelemetry Resource (service name, env, etc)
		res, err := resource.New(globalCtx,
			resource.WithAttributes(
				semconv.ServiceNameKey.String(cfg.AppName),
				attribute.String("env", cfg.AppEnv),
			),
		)
		if err != nil {
			log.Error("Failed to create resource", slog.String("error", err.Error()))
			initErr = err
			return
		}

		opts := []trace.TracerProviderOption{trace.WithResource(res)}
		if exp != nil {
			opts = append(opts, trace.WithBatcher(exp))
		}
		tp := trace.NewTracerProvider(opts...)

		// Set tracer provider WITH pyroscope attached
		otel.SetTracerProvider(otelpyroscope.NewTracerProvider(tp))

		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))

		log.Info("OpenTelemetry Tracer initialized", slog.Bool("exporting", exp != nil))

		var profiler *pyroscope.Profiler
		if cfg.RemoteProfilingHttpURI != "" {
			profiler, err = pyroscope.Start(pyroscope.Config{
				ApplicationName: cfg.AppName,
				ServerAddress:   cfg.RemoteProfilingHttpURI,
				Logger:          pyroLogrus,
				Tags:            map[string]string{"env": cfg.AppEnv},
			})
			if err != nil {
				log.Error("Pyroscope failed to start", slog.String("error", err.Error()))
			} else {
				log.Info("Pyroscope started successfully")
			}
		}

		shutdownFunc = func(ctx context.Context) {
			if err := tp.Shutdown(ctx); err != nil {
				log.Error("Error shutting down tracer provider", slog.String("error", err.Error()))
			}
			if profiler != nil {
				if err := profiler.Stop(); err != nil {
					log.Error("Error stopping profiler", slog.String("error", err.Error()))
				}
			}
		}
	})

	if shutdownFunc == nil {
		return func(context.Context) {}, initErr
	}
	return shutdownFunc, initErr
}
