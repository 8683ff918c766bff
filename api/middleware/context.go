package middleware

import (
	"context"

	"github.com/angelmondragon/storefront-backend/internal/tenants"
	"github.com/angelmondragon/storefront-backend/pkg/auth"
)

type contextKey string

const (
	ctxResolution contextKey = "tenant_resolution"
	ctxClaims     contextKey = "access_claims"
)

// WithResolution stores the resolved tenant for downstream handlers.
func WithResolution(ctx context.Context, res *tenants.Resolution) context.Context {
	return context.WithValue(ctx, ctxResolution, res)
}

// ResolutionFromContext returns the tenant resolved for this request.
func ResolutionFromContext(ctx context.Context) (*tenants.Resolution, bool) {
	if ctx == nil {
		return nil, false
	}
	res, ok := ctx.Value(ctxResolution).(*tenants.Resolution)
	return res, ok && res != nil
}

// WithClaims stores verified token claims.
func WithClaims(ctx context.Context, claims *auth.AccessTokenClaims) context.Context {
	return context.WithValue(ctx, ctxClaims, claims)
}

// ClaimsFromContext returns the verified token claims, if any.
func ClaimsFromContext(ctx context.Context) (*auth.AccessTokenClaims, bool) {
	if ctx == nil {
		return nil, false
	}
	claims, ok := ctx.Value(ctxClaims).(*auth.AccessTokenClaims)
	return claims, ok && claims != nil
}
