package visibility

import (
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

func TestEnsureTenantServable(t *testing.T) {
	if err := EnsureTenantServable(nil); !pkgerrors.IsCode(err, pkgerrors.CodeTenantNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	suspended := &models.Tenant{ID: uuid.New(), Handle: "demo", Status: enums.TenantStatusSuspended}
	if err := EnsureTenantServable(suspended); !pkgerrors.IsCode(err, pkgerrors.CodeTenantSuspended) {
		t.Fatalf("expected suspended, got %v", err)
	}
	active := &models.Tenant{ID: uuid.New(), Handle: "demo", Status: enums.TenantStatusActive}
	if err := EnsureTenantServable(active); err != nil {
		t.Fatalf("expected active tenant to be servable, got %v", err)
	}
}
