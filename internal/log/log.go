// Package log builds the slog loggers used across blogkit and carries them
// through a context.Context.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// NewHandler sets up a text slog.Handler writing to w with the component
// name attached to every record.
func NewHandler(w io.Writer, name string, level slog.Leveler) slog.Handler {
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return handler.WithAttrs([]slog.Attr{slog.String("component", name)})
}

// New returns a logger for the named component writing to w.
func New(w io.Writer, name string, level slog.Leveler) *slog.Logger {
	return slog.New(NewHandler(w, name, level))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type ctxKey struct{}

// IntoContext adds a logger to a context. Use FromContext to
// pull the logger out.
func IntoContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns a logger from a context.Context;
// if the context carries none, the default slog logger is returned.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}
