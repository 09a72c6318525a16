package api

import (
	"context"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

// traceHandler decorates an slog.Handler with the active span's trace and
// span IDs, so a rating or listing log line can be matched to its trace.
type traceHandler struct {
	next slog.Handler
}

func newTraceHandler(next slog.Handler) *traceHandler {
	return &traceHandler{next: next}
}

func (h *traceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		)
	}
	return h.next.Handle(ctx, r)
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return newTraceHandler(h.next.WithGroup(name))
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newTraceHandler(h.next.WithAttrs(attrs))
}

// SetupGlobalHandler installs the process-wide JSON logger tagged with the
// service name. Handlers log through slog.ErrorContext so the trace IDs
// added here line up with the request span.
func SetupGlobalHandler(serviceName string) {
	handler := newTraceHandler(slog.NewJSONHandler(os.Stdout, nil))
	logger := slog.New(handler).With(slog.String("service", serviceName))
	slog.SetDefault(logger)

	slog.Info("Logger initialized", "service", serviceName)
}
