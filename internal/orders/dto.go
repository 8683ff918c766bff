package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/money"
	"github.com/angelmondragon/storefront-backend/pkg/policy"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// LineItemDraft is a frozen cart line.
type LineItemDraft struct {
	ProductID      uuid.UUID            `json:"product_id"`
	Name           string               `json:"name"`
	UnitPrice      money.Amount         `json:"unit_price_minor"`
	Quantity       int                  `json:"quantity"`
	Customizations types.Customizations `json:"customizations,omitempty"`
	Notes          string               `json:"notes,omitempty"`
}

// Draft is the immutable order payload produced by checkout. SubmissionID
// makes resubmission idempotent.
type Draft struct {
	TenantID        uuid.UUID             `json:"tenant_id"`
	SubmissionID    uuid.UUID             `json:"submission_id"`
	CustomerID      *uuid.UUID            `json:"customer_id,omitempty"`
	FulfillmentType enums.FulfillmentType `json:"fulfillment_type"`
	BranchID        *uuid.UUID            `json:"branch_id,omitempty"`
	BranchName      string                `json:"branch_name,omitempty"`
	EstimatedTime   string                `json:"estimated_time,omitempty"`
	Items           []LineItemDraft       `json:"items"`
	Subtotal        money.Amount          `json:"subtotal_minor"`
	DeliveryFee     money.Amount          `json:"delivery_fee_minor"`
	Total           money.Amount          `json:"total_minor"`
	Currency        string                `json:"currency"`
	Notes           string                `json:"notes,omitempty"`
}

// StatusUpdate asks to move an order along its lifecycle.
type StatusUpdate struct {
	TenantID uuid.UUID
	OrderID  uuid.UUID
	To       enums.OrderStatus
	Actor    policy.Actor
}

// LineItemDTO is a persisted order line.
type LineItemDTO struct {
	ID             uuid.UUID            `json:"id"`
	ProductID      uuid.UUID            `json:"product_id"`
	Name           string               `json:"name"`
	UnitPrice      money.Amount         `json:"unit_price_minor"`
	Quantity       int                  `json:"quantity"`
	Customizations types.Customizations `json:"customizations,omitempty"`
	Notes          string               `json:"notes,omitempty"`
	LineTotal      money.Amount         `json:"line_total_minor"`
}

// OrderDTO is the order as returned to clients.
type OrderDTO struct {
	ID              uuid.UUID             `json:"id"`
	TenantID        uuid.UUID             `json:"tenant_id"`
	SubmissionID    uuid.UUID             `json:"submission_id"`
	CustomerID      *uuid.UUID            `json:"customer_id,omitempty"`
	Status          enums.OrderStatus     `json:"status"`
	FulfillmentType enums.FulfillmentType `json:"fulfillment_type"`
	BranchID        *uuid.UUID            `json:"branch_id,omitempty"`
	BranchName      string                `json:"branch_name,omitempty"`
	EstimatedTime   string                `json:"estimated_time,omitempty"`
	Subtotal        money.Amount          `json:"subtotal_minor"`
	DeliveryFee     money.Amount          `json:"delivery_fee_minor"`
	Total           money.Amount          `json:"total_minor"`
	TotalFormatted  string                `json:"total"`
	Currency        string                `json:"currency"`
	Notes           string                `json:"notes,omitempty"`
	PlacedAt        time.Time             `json:"placed_at"`
	StatusChangedAt time.Time             `json:"status_changed_at"`
	LineItems       []LineItemDTO         `json:"line_items"`
}

// FromModel maps an order row with its line items.
func FromModel(o *models.Order) *OrderDTO {
	dto := &OrderDTO{
		ID:              o.ID,
		TenantID:        o.TenantID,
		SubmissionID:    o.SubmissionID,
		CustomerID:      o.CustomerID,
		Status:          o.Status,
		FulfillmentType: o.FulfillmentType,
		BranchID:        o.BranchID,
		BranchName:      o.BranchName,
		EstimatedTime:   o.EstimatedTime,
		Subtotal:        money.Amount(o.SubtotalMinor),
		DeliveryFee:     money.Amount(o.DeliveryFeeMinor),
		Total:           money.Amount(o.TotalMinor),
		TotalFormatted:  money.Format(money.Amount(o.TotalMinor), o.Currency),
		Currency:        o.Currency,
		PlacedAt:        o.PlacedAt,
		StatusChangedAt: o.StatusChangedAt,
		LineItems:       make([]LineItemDTO, 0, len(o.LineItems)),
	}
	if o.Notes != nil {
		dto.Notes = *o.Notes
	}
	for _, li := range o.LineItems {
		item := LineItemDTO{
			ID:             li.ID,
			ProductID:      li.ProductID,
			Name:           li.Name,
			UnitPrice:      money.Amount(li.UnitPriceMinor),
			Quantity:       li.Quantity,
			Customizations: li.Customizations,
			LineTotal:      money.Amount(li.LineTotalMinor),
		}
		if li.Notes != nil {
			item.Notes = *li.Notes
		}
		dto.LineItems = append(dto.LineItems, item)
	}
	return dto
}
