package models

import (
	"time"

	"github.com/google/uuid"
)

// Store holds the merchant-facing profile of a tenant.
type Store struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID    uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;uniqueIndex"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	Currency    string    `gorm:"column:currency;not null;default:'BHD'"`
	Phone       *string   `gorm:"column:phone"`
	Email       *string   `gorm:"column:email"`
	Address     *string   `gorm:"column:address"`
	LogoURL     *string   `gorm:"column:logo_url"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
