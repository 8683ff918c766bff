package sessions

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/checkout"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// Create opens a new browsing session for the resolved store.
func Create(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		res, ok := middleware.ResolutionFromContext(r.Context())
		if !ok || res == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeTenantNotFound, "store not found"))
			return
		}

		view, err := svc.Create(r.Context(), catalog.Scope{TenantID: res.Tenant.ID, Currency: res.Store.Currency})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// Get returns the session with derived totals and gate.
func Get(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return withRef(svc, logg, http.StatusOK, func(ctx context.Context, r *http.Request, ref checkout.Ref) (*checkout.View, error) {
		return svc.Get(ctx, ref)
	})
}

// AddItem merges a product line into the cart.
func AddItem(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return withRef(svc, logg, http.StatusOK, func(ctx context.Context, r *http.Request, ref checkout.Ref) (*checkout.View, error) {
		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, err
		}
		return svc.AddItem(ctx, ref, payload.toInput())
	})
}

// UpdateItem sets a line quantity; zero removes the line.
func UpdateItem(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return withRef(svc, logg, http.StatusOK, func(ctx context.Context, r *http.Request, ref checkout.Ref) (*checkout.View, error) {
		itemID, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			return nil, err
		}
		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, err
		}
		return svc.UpdateItem(ctx, ref, itemID, *payload.Quantity)
	})
}

// RemoveItem drops a line. Removing an unknown line is a no-op.
func RemoveItem(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return withRef(svc, logg, http.StatusOK, func(ctx context.Context, r *http.Request, ref checkout.Ref) (*checkout.View, error) {
		itemID, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			return nil, err
		}
		return svc.RemoveItem(ctx, ref, itemID)
	})
}

// SetFulfillment selects a branch, a delivery option, or both.
func SetFulfillment(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return withRef(svc, logg, http.StatusOK, func(ctx context.Context, r *http.Request, ref checkout.Ref) (*checkout.View, error) {
		var payload fulfillmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, err
		}
		return svc.SetFulfillment(ctx, ref, payload.toInput())
	})
}

func OpenCart(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return withRef(svc, logg, http.StatusOK, func(ctx context.Context, r *http.Request, ref checkout.Ref) (*checkout.View, error) {
		return svc.OpenCart(ctx, ref)
	})
}

func ContinueShopping(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return withRef(svc, logg, http.StatusOK, func(ctx context.Context, r *http.Request, ref checkout.Ref) (*checkout.View, error) {
		return svc.ContinueShopping(ctx, ref)
	})
}

func BeginCheckout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return withRef(svc, logg, http.StatusOK, func(ctx context.Context, r *http.Request, ref checkout.Ref) (*checkout.View, error) {
		return svc.BeginCheckout(ctx, ref)
	})
}

// CompleteAuth attaches the bearer's customer identity to the session.
func CompleteAuth(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return withRef(svc, logg, http.StatusOK, func(ctx context.Context, r *http.Request, ref checkout.Ref) (*checkout.View, error) {
		claims, ok := middleware.ClaimsFromContext(ctx)
		if !ok || claims == nil {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
		}
		if claims.TenantID != nil && *claims.TenantID != ref.TenantID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "token belongs to another store")
		}
		return svc.CompleteAuth(ctx, ref, claims.UserID)
	})
}

// PlaceOrder starts the asynchronous submission and answers 202.
func PlaceOrder(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return withRef(svc, logg, http.StatusAccepted, func(ctx context.Context, r *http.Request, ref checkout.Ref) (*checkout.View, error) {
		var payload placeOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, err
		}
		return svc.PlaceOrder(ctx, ref, payload.toInput())
	})
}

func RefreshOrderStatus(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return withRef(svc, logg, http.StatusOK, func(ctx context.Context, r *http.Request, ref checkout.Ref) (*checkout.View, error) {
		return svc.RefreshOrderStatus(ctx, ref)
	})
}

type sessionAction func(ctx context.Context, r *http.Request, ref checkout.Ref) (*checkout.View, error)

func withRef(svc checkout.Service, logg *logger.Logger, status int, action sessionAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		ref, err := sessionRef(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithSessionID(ctx, ref.SessionID.String())
		}

		view, err := action(ctx, r, ref)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, status, view)
	}
}

func sessionRef(r *http.Request) (checkout.Ref, error) {
	res, ok := middleware.ResolutionFromContext(r.Context())
	if !ok || res == nil {
		return checkout.Ref{}, pkgerrors.New(pkgerrors.CodeTenantNotFound, "store not found")
	}
	sessionID, err := validators.ParseUUIDParam(r, "sessionId")
	if err != nil {
		return checkout.Ref{}, err
	}
	return checkout.Ref{TenantID: res.Tenant.ID, SessionID: sessionID}, nil
}
