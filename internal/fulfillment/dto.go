package fulfillment

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/money"
)

// BranchDTO is a pickup/delivery location as shown to shoppers.
type BranchDTO struct {
	ID                    uuid.UUID    `json:"id"`
	Name                  string       `json:"name"`
	Address               string       `json:"address,omitempty"`
	DeliveryFee           money.Amount `json:"delivery_fee_minor"`
	MinimumOrder          money.Amount `json:"minimum_order_minor"`
	EstimatedDeliveryTime string       `json:"estimated_delivery_time,omitempty"`
	EstimatedPickupTime   string       `json:"estimated_pickup_time,omitempty"`
	Featured              bool         `json:"featured"`
}

// BranchListing partitions active branches for the branch picker.
type BranchListing struct {
	Featured []BranchDTO `json:"featured"`
	Other    []BranchDTO `json:"other"`
}

// BranchFromModel maps a branch row.
func BranchFromModel(b models.Branch) BranchDTO {
	return BranchDTO{
		ID:                    b.ID,
		Name:                  b.Name,
		Address:               b.Address,
		DeliveryFee:           money.Amount(b.DeliveryFeeMinor),
		MinimumOrder:          money.Amount(b.MinimumOrderMinor),
		EstimatedDeliveryTime: b.EstimatedDeliveryTime,
		EstimatedPickupTime:   b.EstimatedPickupTime,
		Featured:              b.Featured,
	}
}
