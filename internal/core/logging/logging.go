// Package logging carries a *slog.Logger through a context.Context so that
// library code can log without depending on a process-wide logger.
package logging

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

var discard = slog.New(slog.DiscardHandler)

// WithLogger returns a copy of ctx that carries l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	if l == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx, or a logger that discards
// everything when none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return discard
	}
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return discard
}
