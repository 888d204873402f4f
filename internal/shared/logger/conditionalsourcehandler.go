package logger

import (
	"context"
	"log/slog"
	"runtime"
)

// conditionalSourceHandler decorates a handler so that only selected levels
// carry source location. The wrapped handler must be built with
// AddSource: false, otherwise the location points into this file.
type conditionalSourceHandler struct {
	inner     slog.Handler
	sourceFor map[slog.Level]bool
}

func NewConditionalSourceHandler(inner slog.Handler, levels ...slog.Level) slog.Handler {
	sourceFor := make(map[slog.Level]bool, len(levels))
	for _, level := range levels {
		sourceFor[level] = true
	}
	return &conditionalSourceHandler{inner: inner, sourceFor: sourceFor}
}

func (h *conditionalSourceHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.sourceFor[r.Level] {
		// Skip this frame plus the slog internal frame.
		var pcs [1]uintptr
		runtime.Callers(3, pcs[:])
		frames := runtime.CallersFrames(pcs[:])
		frame, _ := frames.Next()

		r.AddAttrs(slog.Attr{
			Key: slog.SourceKey,
			Value: slog.AnyValue(&slog.Source{
				Function: frame.Function,
				File:     frame.File,
				Line:     frame.Line,
			}),
		})
	}

	return h.inner.Handle(ctx, r)
}

func (h *conditionalSourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &conditionalSourceHandler{inner: h.inner.WithAttrs(attrs), sourceFor: h.sourceFor}
}

func (h *conditionalSourceHandler) WithGroup(name string) slog.Handler {
	return &conditionalSourceHandler{inner: h.inner.WithGroup(name), sourceFor: h.sourceFor}
}

func (h *conditionalSourceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}
