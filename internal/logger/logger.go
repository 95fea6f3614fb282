package logger

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"harumnesia/internal/utils"
	clilogger "harumnesia/pkg/logger"

	"go.opentelemetry.io/otel/trace"
)

var (
	instance *slog.Logger
	level    = new(slog.LevelVar)
	once     sync.Once
)

func Instance() *slog.Logger {
	once.Do(func() {
		level.Set(clilogger.ParseLevel(os.Getenv("LOG_LEVEL")))
		instance = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		}))
	})

	return instance
}

// SetLevel changes the minimum level of the shared logger at runtime.
func SetLevel(l slog.Level) {
	level.Set(l)
}

func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	Instance().LogAttrs(ctx, slog.LevelDebug, msg, enrich(ctx, attrs...)...)
}

func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	enrichedAttrs := enrich(ctx, attrs...)
	Instance().LogAttrs(ctx, slog.LevelInfo, msg, enrichedAttrs...)
	sendLog("info", msg, enrichedAttrs)
}

func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	enrichedAttrs := enrich(ctx, attrs...)
	Instance().LogAttrs(ctx, slog.LevelWarn, msg, enrichedAttrs...)
	sendLog("warn", msg, enrichedAttrs)
}

func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	enrichedAttrs := enrich(ctx, attrs...)
	Instance().LogAttrs(ctx, slog.LevelError, msg, enrichedAttrs...)
	sendLog("error", msg, enrichedAttrs)
}

// Err is a shorthand for the "error" attribute.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

func enrich(ctx context.Context, attrs ...slog.Attr) []slog.Attr {
	if ctx == nil {
		return attrs
	}
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		attrs = append(attrs,
			slog.String("trace_id", span.SpanContext().TraceID().String()),
			slog.String("span_id", span.SpanContext().SpanID().String()),
			slog.String("hostname", utils.GetHost()),
		)
	}

	return attrs
}

// Args converts attributes into the variadic form accepted by *slog.Logger.
func Args(attrs []slog.Attr) []any {
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}
	return args
}
