package models

import (
	"time"

	"github.com/google/uuid"
)

// Branch is a physical location with its own delivery fee and minimum order.
type Branch struct {
	ID                    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID              uuid.UUID `gorm:"column:tenant_id;type:uuid;not null"`
	Name                  string    `gorm:"column:name;not null"`
	Address               string    `gorm:"column:address;not null;default:''"`
	DeliveryFeeMinor      int64     `gorm:"column:delivery_fee_minor;not null;default:0"`
	MinimumOrderMinor     int64     `gorm:"column:minimum_order_minor;not null;default:0"`
	EstimatedDeliveryTime string    `gorm:"column:estimated_delivery_time;not null;default:''"`
	EstimatedPickupTime   string    `gorm:"column:estimated_pickup_time;not null;default:''"`
	Featured              bool      `gorm:"column:featured;not null;default:false"`
	IsActive              bool      `gorm:"column:is_active;not null"`
	Sort                  int       `gorm:"column:sort;not null;default:0"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime"`
}
