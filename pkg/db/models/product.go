package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// Category groups products within a tenant catalog.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID  uuid.UUID `gorm:"column:tenant_id;type:uuid;not null"`
	Slug      string    `gorm:"column:slug;not null"`
	Name      string    `gorm:"column:name;not null"`
	Sort      int       `gorm:"column:sort;not null;default:0"`
	ImageURL  *string   `gorm:"column:image_url"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// Product is a sellable catalog entry priced in minor units.
type Product struct {
	ID          uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID    uuid.UUID            `gorm:"column:tenant_id;type:uuid;not null"`
	CategoryID  *uuid.UUID           `gorm:"column:category_id;type:uuid"`
	Name        string               `gorm:"column:name;not null"`
	Description *string              `gorm:"column:description"`
	PriceMinor  int64                `gorm:"column:price_minor;not null"`
	Images      pq.StringArray       `gorm:"column:images;type:text[]"`
	Available   bool                 `gorm:"column:available;not null"`
	Featured    bool                 `gorm:"column:featured;not null;default:false"`
	Options     types.ProductOptions `gorm:"column:options;type:jsonb"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
