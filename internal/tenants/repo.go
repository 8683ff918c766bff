package tenants

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// Repository handles tenant, domain and store lookups.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to tenant operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByDomain returns the tenant owning the exact domain.
func (r *Repository) FindByDomain(ctx context.Context, domain string) (*models.Tenant, error) {
	var row models.TenantDomain
	if err := r.db.WithContext(ctx).
		Where("domain = ?", strings.ToLower(domain)).
		First(&row).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, row.TenantID)
}

// FindByHandle loads a tenant by its handle, case-insensitively.
func (r *Repository) FindByHandle(ctx context.Context, handle string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.WithContext(ctx).
		Where("lower(handle) = ?", strings.ToLower(handle)).
		First(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// FindByID loads a tenant by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// FindStore returns the store for a tenant, or nil when none exists yet.
func (r *Repository) FindStore(ctx context.Context, tenantID uuid.UUID) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// PrimaryDomain returns the tenant's primary domain or "" when none is flagged.
func (r *Repository) PrimaryDomain(ctx context.Context, tenantID uuid.UUID) (string, error) {
	var row models.TenantDomain
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_primary = ?", tenantID, true).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return row.Domain, nil
}
