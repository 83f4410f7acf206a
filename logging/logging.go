// Package logging builds the slog logger used by every command. Records pass
// through a redacting handler so deploy tokens never reach the terminal.
package logging

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// Redacted replaces any value considered secret.
const Redacted = "[REDACTED]"

// secretKeys are attribute keys whose value is always replaced.
var secretKeys = []string{"token", "authorization", "secret", "password", "auth"}

// secretPatterns match token-shaped substrings inside otherwise harmless values,
// e.g. an API error body that echoes the request.
var secretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{20,}`),
	regexp.MustCompile(`github_pat_[A-Za-z0-9_]{20,}`),
	regexp.MustCompile(`nfp_[A-Za-z0-9]{20,}`),
	regexp.MustCompile(`(?i)(bearer|token)\s+[A-Za-z0-9._\-]{8,}`),
}

// RedactHandler wraps another slog.Handler and masks secrets in attributes.
type RedactHandler struct {
	next slog.Handler
}

// NewRedactHandler wraps next. A nil next uses the default logger's handler.
func NewRedactHandler(next slog.Handler) *RedactHandler {
	if next == nil {
		next = slog.Default().Handler()
	}
	return &RedactHandler{next: next}
}

// Enabled delegates to the wrapped handler.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle rebuilds the record with masked attributes.
func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, RedactString(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(redactAttr(a))
		return true
	})
	return h.next.Handle(ctx, out)
}

// WithAttrs masks attrs before handing them on.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = redactAttr(a)
	}
	return &RedactHandler{next: h.next.WithAttrs(masked)}
}

// WithGroup implements slog.Handler.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{next: h.next.WithGroup(name)}
}

func redactAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		masked := make([]slog.Attr, len(group))
		for i, g := range group {
			masked[i] = redactAttr(g)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(masked...)}
	}

	key := strings.ToLower(a.Key)
	for _, s := range secretKeys {
		if strings.Contains(key, s) {
			return slog.String(a.Key, Redacted)
		}
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, RedactString(a.Value.String()))
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			return slog.String(a.Key, RedactString(err.Error()))
		}
	}
	return a
}

// RedactString masks token-shaped substrings of s.
func RedactString(s string) string {
	for _, p := range secretPatterns {
		s = p.ReplaceAllString(s, Redacted)
	}
	return s
}

// ParseLevel maps the config's log_level string to a slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a text logger writing to w. verbose forces debug level.
func New(w io.Writer, level string, verbose bool) *slog.Logger {
	lvl := ParseLevel(level)
	if verbose {
		lvl = slog.LevelDebug
	}
	text := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(NewRedactHandler(text))
}

// Discard returns a logger that drops everything; handy for tests and library defaults.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
