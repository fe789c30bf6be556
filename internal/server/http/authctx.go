package httpserver

import (
	"context"

	"github.com/and161185/notes-keeper/internal/model"
)

type ctxKey string

const (
	claimsKey    ctxKey = "nk.claims"
	requestIDKey ctxKey = "nk.requestID"
)

// WithClaims stores verified token claims in context.
func WithClaims(ctx context.Context, c model.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// ClaimsFromCtx fetches verified token claims from context.
func ClaimsFromCtx(ctx context.Context) (model.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(model.Claims)
	return c, ok
}

// RequestIDFromCtx returns the id assigned by the request-id middleware.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
