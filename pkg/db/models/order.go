package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Order is the persisted result of a checkout submission.
type Order struct {
	ID               uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID         uuid.UUID             `gorm:"column:tenant_id;type:uuid;not null"`
	SubmissionID     uuid.UUID             `gorm:"column:submission_id;type:uuid;not null;uniqueIndex"`
	CustomerID       *uuid.UUID            `gorm:"column:customer_id;type:uuid"`
	Status           enums.OrderStatus     `gorm:"column:status;not null;default:'pending'"`
	FulfillmentType  enums.FulfillmentType `gorm:"column:fulfillment_type;not null"`
	BranchID         *uuid.UUID            `gorm:"column:branch_id;type:uuid"`
	BranchName       string                `gorm:"column:branch_name;not null;default:''"`
	EstimatedTime    string                `gorm:"column:estimated_time;not null;default:''"`
	SubtotalMinor    int64                 `gorm:"column:subtotal_minor;not null"`
	DeliveryFeeMinor int64                 `gorm:"column:delivery_fee_minor;not null"`
	TotalMinor       int64                 `gorm:"column:total_minor;not null"`
	Currency         string                `gorm:"column:currency;not null"`
	Notes            *string               `gorm:"column:notes"`
	PlacedAt         time.Time             `gorm:"column:placed_at;not null"`
	StatusChangedAt  time.Time             `gorm:"column:status_changed_at;not null"`
	LineItems        []OrderLineItem       `gorm:"foreignKey:OrderID"`
	CreatedAt        time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
