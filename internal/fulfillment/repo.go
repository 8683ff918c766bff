package fulfillment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// Repository reads branches.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to branch reads.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns the tenant's active branches in display order.
func (r *Repository) ListActive(ctx context.Context, tenantID uuid.UUID) ([]models.Branch, error) {
	var rows []models.Branch
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("sort ASC").
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

// FindActive loads one active branch of the tenant.
func (r *Repository) FindActive(ctx context.Context, tenantID, branchID uuid.UUID) (*models.Branch, error) {
	var branch models.Branch
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ? AND is_active = ?", tenantID, branchID, true).
		First(&branch).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}
