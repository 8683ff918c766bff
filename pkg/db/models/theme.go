package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// Theme is an installable storefront template.
type Theme struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key       string    `gorm:"column:key;not null;uniqueIndex"`
	Name      string    `gorm:"column:name;not null"`
	Version   string    `gorm:"column:version;not null"`
	IsEnabled bool      `gorm:"column:is_enabled;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TenantThemeSetting stores a tenant's overrides for a theme.
type TenantThemeSetting struct {
	ID        uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID  uuid.UUID     `gorm:"column:tenant_id;type:uuid;not null"`
	ThemeID   uuid.UUID     `gorm:"column:theme_id;type:uuid;not null"`
	Settings  types.JSONMap `gorm:"column:settings;type:jsonb;not null"`
	IsActive  bool          `gorm:"column:is_active;not null;default:false"`
	CreatedAt time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}
