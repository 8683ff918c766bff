package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// StorefrontPage is a tenant page assembled from sections.
type StorefrontPage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID  uuid.UUID `gorm:"column:tenant_id;type:uuid;not null"`
	Slug      string    `gorm:"column:slug;not null"`
	Title     string    `gorm:"column:title;not null"`
	Template  string    `gorm:"column:template;not null;default:'default'"`
	SEO       types.SEO `gorm:"column:seo;type:jsonb"`
	IsHome    bool      `gorm:"column:is_home;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// StorefrontSection is one ordered block on a page. Type and Props are kept
// raw so unknown kinds and malformed props surface at render time.
type StorefrontSection struct {
	ID        int64         `gorm:"column:id;primaryKey;autoIncrement"`
	PageID    uuid.UUID     `gorm:"column:page_id;type:uuid;not null"`
	Type      string        `gorm:"column:type;not null"`
	Sort      int           `gorm:"column:sort;not null;default:0"`
	Props     types.RawJSON `gorm:"column:props;type:jsonb"`
	CreatedAt time.Time     `gorm:"column:created_at;autoCreateTime"`
}
