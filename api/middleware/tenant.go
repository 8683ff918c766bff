package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/internal/tenants"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type tenantResolver interface {
	Resolve(ctx context.Context, lookup tenants.Lookup) (*tenants.Resolution, error)
}

// ResolveTenant resolves the storefront from the request host. When
// handleParam is set, the chi URL parameter with that name is offered as a
// path handle as well.
func ResolveTenant(resolver tenantResolver, handleParam string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lookup := tenants.Lookup{Host: requestHost(r)}
			if handleParam != "" {
				lookup.PathHandle = chi.URLParam(r, handleParam)
			}

			res, err := resolver.Resolve(r.Context(), lookup)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithResolution(r.Context(), res)
			if logg != nil {
				ctx = logg.WithTenant(ctx, res.Tenant.ID.String(), res.Tenant.Handle)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func requestHost(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-Host"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if host := strings.TrimSpace(first); host != "" {
			return host
		}
	}
	return r.Host
}
