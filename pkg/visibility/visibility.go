package visibility

import (
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// EnsureTenantServable enforces that only active tenants reach shoppers.
// A missing tenant and a suspended tenant produce distinct codes.
func EnsureTenantServable(tenant *models.Tenant) error {
	if tenant == nil {
		return pkgerrors.New(pkgerrors.CodeTenantNotFound, "store not found")
	}
	if tenant.Status != enums.TenantStatusActive {
		return pkgerrors.New(pkgerrors.CodeTenantSuspended, "store is temporarily unavailable").WithDetails(map[string]any{
			"handle": tenant.Handle,
			"status": tenant.Status,
		})
	}
	return nil
}
