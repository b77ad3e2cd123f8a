package logger

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// WithContext stores l in ctx so downstream layers log with the same fields
// (request_id, method, path) the middleware attached.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// Ctx returns the request-scoped logger, or the global one when none was stored.
func Ctx(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
			return &l
		}
	}
	return L()
}
