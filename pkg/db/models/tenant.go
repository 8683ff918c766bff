package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Tenant is a merchant's isolated storefront namespace.
type Tenant struct {
	ID          uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Handle      string             `gorm:"column:handle;not null;uniqueIndex"`
	DisplayName string             `gorm:"column:display_name;not null"`
	Status      enums.TenantStatus `gorm:"column:status;not null;default:'active'"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// TenantDomain maps an inbound host to a tenant.
type TenantDomain struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID  uuid.UUID `gorm:"column:tenant_id;type:uuid;not null"`
	Domain    string    `gorm:"column:domain;not null;uniqueIndex"`
	IsPrimary bool      `gorm:"column:is_primary;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
