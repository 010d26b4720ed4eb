// Package log builds the slog loggers used by the CLI and the dashboard
// server. Every logger masks secrets such as the API key.
package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// MaskValue replaces sensitive attribute values.
const MaskValue = "***REDACTED***"

// sensitiveKeywords mark attribute keys whose values are never written.
var sensitiveKeywords = []string{
	"api_key", "apikey", "x-api-key", "authorization", "password", "secret", "token",
}

// RedactHandler wraps an slog.Handler and masks sensitive attributes.
type RedactHandler struct {
	handler slog.Handler
}

// NewRedactHandler wraps handler. A nil handler wraps slog.Default's.
func NewRedactHandler(handler slog.Handler) *RedactHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &RedactHandler{handler: handler}
}

// Enabled delegates to the wrapped handler.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it on.
func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	clean := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(redact(a))
		return true
	})
	return h.handler.Handle(ctx, clean)
}

// WithAttrs returns a handler with masked attributes added.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clean[i] = redact(a)
	}
	return &RedactHandler{handler: h.handler.WithAttrs(clean)}
}

// WithGroup returns a handler for the named group.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{handler: h.handler.WithGroup(name)}
}

func redact(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		clean := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			clean[i] = redact(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(clean...)}
	}

	key := strings.ToLower(a.Key)
	for _, kw := range sensitiveKeywords {
		if strings.Contains(key, kw) {
			return slog.String(a.Key, MaskValue)
		}
	}
	return a
}

// New creates a logger writing to w. verbose selects Debug over Warn;
// json selects the JSON handler over the text one.
func New(w io.Writer, verbose, json bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var base slog.Handler = slog.NewTextHandler(w, opts)
	if json {
		base = slog.NewJSONHandler(w, opts)
	}
	return slog.New(NewRedactHandler(base))
}
