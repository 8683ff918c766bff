package pages

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// Repository reads storefront pages and their sections.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to page reads.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindBySlug returns nil when the tenant has no page with that slug.
func (r *Repository) FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*models.StorefrontPage, error) {
	var page models.StorefrontPage
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND slug = ?", tenantID, slug).
		First(&page).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// FindHome returns the page flagged is_home, or nil.
func (r *Repository) FindHome(ctx context.Context, tenantID uuid.UUID) (*models.StorefrontPage, error) {
	var page models.StorefrontPage
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_home = ?", tenantID, true).
		First(&page).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// ListSections returns a page's sections ordered by sort then insertion id.
func (r *Repository) ListSections(ctx context.Context, pageID uuid.UUID) ([]models.StorefrontSection, error) {
	var rows []models.StorefrontSection
	err := r.db.WithContext(ctx).
		Where("page_id = ?", pageID).
		Order("sort ASC").
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}
