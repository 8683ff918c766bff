package payloads

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// OrderPlacedEvent is emitted when a checkout submission is persisted.
type OrderPlacedEvent struct {
	OrderID         uuid.UUID             `json:"order_id"`
	TenantID        uuid.UUID             `json:"tenant_id"`
	SubmissionID    uuid.UUID             `json:"submission_id"`
	FulfillmentType enums.FulfillmentType `json:"fulfillment_type"`
	BranchID        *uuid.UUID            `json:"branch_id,omitempty"`
	ItemCount       int                   `json:"item_count"`
	TotalMinor      int64                 `json:"total_minor"`
	Currency        string                `json:"currency"`
}

// OrderStatusChangedEvent is emitted whenever an order moves along its lifecycle.
type OrderStatusChangedEvent struct {
	OrderID   uuid.UUID         `json:"order_id"`
	TenantID  uuid.UUID         `json:"tenant_id"`
	From      enums.OrderStatus `json:"from"`
	To        enums.OrderStatus `json:"to"`
	ChangedAt time.Time         `json:"changed_at"`
}
