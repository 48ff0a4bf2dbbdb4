package httpx

import (
	"context"

	"github.com/aussiebroadwan/rolepanel/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID       ctxKey = "user_id"
	CtxKeyCapabilities ctxKey = "capabilities"
)

// ContextWithClaims stores verified claims for downstream handlers.
func ContextWithClaims(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyCapabilities, c.Capabilities)
	return ctx
}

// UserIDFromContext returns the authenticated subject, or "" when the
// request was not authenticated.
func UserIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyUserID).(string)
	return v
}

func capabilitiesFromCtx(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyCapabilities).([]string); ok {
		return v
	}
	return nil
}
