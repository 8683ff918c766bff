package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

// Repository reads products and categories.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to catalog reads.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindProduct loads a product scoped to its tenant.
func (r *Repository) FindProduct(ctx context.Context, tenantID, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, productID).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListFeatured returns available featured products, newest first.
func (r *Repository) ListFeatured(ctx context.Context, tenantID uuid.UUID, limit int) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND featured = ? AND available = ?", tenantID, true, true).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// ListProducts returns a keyset page of products, optionally filtered by category.
func (r *Repository) ListProducts(ctx context.Context, tenantID uuid.UUID, categoryID *uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	if cursor != nil {
		q = q.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}
	var rows []models.Product
	err := q.Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// ListCategories returns the tenant's categories in display order.
func (r *Repository) ListCategories(ctx context.Context, tenantID uuid.UUID, limit int) ([]models.Category, error) {
	q := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("sort ASC").
		Order("name ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []models.Category
	err := q.Find(&rows).Error
	return rows, err
}

// FindCategoryBySlug loads a category by slug within a tenant.
func (r *Repository) FindCategoryBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND slug = ?", tenantID, slug).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}
