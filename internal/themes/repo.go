package themes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// Repository reads themes and tenant theme settings.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to theme lookups.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindActiveSetting returns the tenant's active settings row, or nil.
func (r *Repository) FindActiveSetting(ctx context.Context, tenantID uuid.UUID) (*models.TenantThemeSetting, error) {
	var row models.TenantThemeSetting
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("updated_at DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindThemeByID returns a theme row, or nil.
func (r *Repository) FindThemeByID(ctx context.Context, id uuid.UUID) (*models.Theme, error) {
	return r.findTheme(ctx, "id = ?", id)
}

// FindThemeByKey returns a theme row by key, or nil.
func (r *Repository) FindThemeByKey(ctx context.Context, key string) (*models.Theme, error) {
	return r.findTheme(ctx, "key = ?", key)
}

func (r *Repository) findTheme(ctx context.Context, query string, arg any) (*models.Theme, error) {
	var theme models.Theme
	err := r.db.WithContext(ctx).Where(query, arg).First(&theme).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &theme, nil
}
