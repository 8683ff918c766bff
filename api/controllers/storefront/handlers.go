package storefront

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/fulfillment"
	storefrontsvc "github.com/angelmondragon/storefront-backend/internal/storefront"
	"github.com/angelmondragon/storefront-backend/internal/tenants"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

const (
	homeSlug          = "home"
	maxCategoryLimit  = 100
	maxSlugCharacters = 120
)

// Home renders the theme and the home page.
func Home(svc storefrontsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return renderPage(svc, logg, func(*http.Request) string { return homeSlug })
}

// Page renders the page addressed by the slug URL parameter.
func Page(svc storefrontsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return renderPage(svc, logg, func(r *http.Request) string {
		return strings.ToLower(validators.SanitizeString(chi.URLParam(r, "slug"), maxSlugCharacters))
	})
}

func renderPage(svc storefrontsvc.Service, logg *logger.Logger, slugOf func(*http.Request) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront service unavailable"))
			return
		}
		res, err := resolution(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		slug := slugOf(r)
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "page slug required"))
			return
		}

		view, err := svc.Page(r.Context(), res, slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// Theme returns the tenant chrome without a page.
func Theme(svc storefrontsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront service unavailable"))
			return
		}
		res, err := resolution(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		chrome, err := svc.Chrome(r.Context(), res)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, chrome)
	}
}

// ProductDetail returns one product of the resolved tenant.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		res, err := resolution(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), scopeOf(res), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// CategoryProducts pages through the products of one category.
func CategoryProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		res, err := resolution(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListProducts(r.Context(), scopeOf(res), catalog.ProductQuery{
			CategorySlug: validators.SanitizeString(chi.URLParam(r, "categorySlug"), maxSlugCharacters),
			Limit:        limit,
			Cursor:       strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// Categories lists the tenant's categories in display order.
func Categories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		res, err := resolution(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", maxCategoryLimit, 1, maxCategoryLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categories, err := svc.ListCategories(r.Context(), scopeOf(res), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

// Branches lists featured and other branches for the branch picker.
func Branches(svc fulfillment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "branch service unavailable"))
			return
		}
		res, err := resolution(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		listing, err := svc.ListBranches(r.Context(), res.Tenant.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listing)
	}
}

func resolution(r *http.Request) (*tenants.Resolution, error) {
	res, ok := middleware.ResolutionFromContext(r.Context())
	if !ok || res == nil {
		return nil, pkgerrors.New(pkgerrors.CodeTenantNotFound, "store not found")
	}
	return res, nil
}

func scopeOf(res *tenants.Resolution) catalog.Scope {
	return catalog.Scope{TenantID: res.Tenant.ID, Currency: res.Store.Currency}
}
