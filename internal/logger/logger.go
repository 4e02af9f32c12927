package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/trace"
)

var (
	instance *slog.Logger
	once     sync.Once
	output   io.Writer = os.Stdout
)

// Instance returns the process-wide JSON logger.
func Instance() *slog.Logger {
	once.Do(func() {
		instance = slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	})
	return instance
}

// SetOutput redirects the shared logger. It only has an effect before the
// first call to Instance.
func SetOutput(w io.Writer) {
	output = w
}

func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelInfo, msg, attrs)
}

func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelWarn, msg, attrs)
}

func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelError, msg, attrs)
}

// emit writes one record locally and queues the remote copy.
func emit(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	attrs = withTrace(ctx, attrs)
	Instance().LogAttrs(ctx, level, msg, attrs...)
	sendLog(strings.ToLower(level.String()), msg, attrs)
}

// withTrace adds trace_id, span_id and hostname when ctx carries a span.
func withTrace(ctx context.Context, attrs []slog.Attr) []slog.Attr {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return attrs
	}
	return append(attrs,
		slog.String("trace_id", sc.TraceID().String()),
		slog.String("span_id", sc.SpanID().String()),
		slog.String("hostname", Hostname()),
	)
}
