package tracer

import (
	"context"
	"log/slog"
	"os"

	"ecommerce-api/internal/config"
	"ecommerce-api/internal/logger"

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

var pyroLogrus = func() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	return l
}()

// Init installs the global tracer provider and propagators and, when
// configured, starts the Pyroscope agent. The returned func flushes and
// stops everything; it is safe to call when Init failed part way.
func Init(ctx context.Context, cfg *config.Config) (func(context.Context), error) {
	log := logger.Instance()

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.AppName),
			attribute.String("env", cfg.AppEnv),
			attribute.String("host.name", logger.Hostname()),
		),
	)
	if err != nil {
		log.Error("Failed to create resource", slog.String("error", err.Error()))
		return func(context.Context) {}, err
	}

	opts := []trace.TracerProviderOption{trace.WithResource(res)}

	if cfg.RemoteTraceRpcURI != "" {
		exp, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithInsecure(),
			otlptracegrpc.WithEndpoint(cfg.RemoteTraceRpcURI),
			otlptracegrpc.WithCompressor("gzip"),
		)
		if err != nil {
			log.Error("Failed to create OTLP exporter", slog.String("error", err.Error()))
			return func(context.Context) {}, err
		}
		opts = append(opts, trace.WithBatcher(exp))
	}

	if cfg.TraceStdout {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr))
		if err != nil {
			log.Error("Failed to create stdout exporter", slog.String("error", err.Error()))
			return func(context.Context) {}, err
		}
		opts = append(opts, trace.WithSyncer(exp))
	}

	tp := trace.NewTracerProvider(opts...)

	var profiler *pyroscope.Profiler
	if cfg.RemoteProfilingHttpURI != "" {
		otel.SetTracerProvider(otelpyroscope.NewTracerProvider(tp))

		profiler, err = pyroscope.Start(pyroscope.Config{
			ApplicationName: cfg.AppName,
			ServerAddress:   cfg.RemoteProfilingHttpURI,
			Logger:          pyroLogrus,
			Tags:            map[string]string{"env": cfg.AppEnv, "hostname": logger.Hostname()},
		})
		if err != nil {
			log.Error("Pyroscope failed to start", slog.String("error", err.Error()))
		} else {
			log.Info("Pyroscope started successfully")
		}
	} else {
		otel.SetTracerProvider(tp)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Info("OpenTelemetry Tracer initialized",
		slog.Bool("otlp", cfg.RemoteTraceRpcURI != ""),
		slog.Bool("stdout", cfg.TraceStdout),
	)

	return func(shutdownCtx context.Context) {
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", slog.String("error", err.Error()))
		}
		if profiler != nil {
			if err := profiler.Stop(); err != nil {
				log.Error("Error stopping pyroscope", slog.String("error", err.Error()))
			}
		}
	}, nil
}
