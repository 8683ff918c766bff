package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// OrderLineItem snapshots a cart line at submission time.
type OrderLineItem struct {
	ID             uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID            `gorm:"column:order_id;type:uuid;not null"`
	ProductID      uuid.UUID            `gorm:"column:product_id;type:uuid;not null"`
	Name           string               `gorm:"column:name;not null"`
	UnitPriceMinor int64                `gorm:"column:unit_price_minor;not null"`
	Quantity       int                  `gorm:"column:quantity;not null"`
	Customizations types.Customizations `gorm:"column:customizations;type:jsonb"`
	Notes          *string              `gorm:"column:notes"`
	LineTotalMinor int64                `gorm:"column:line_total_minor;not null"`
	Position       int                  `gorm:"column:position;not null"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
}
