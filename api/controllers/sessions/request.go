package sessions

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

const (
	maxItemNotes  = 280
	maxOrderNotes = 500
)

type addItemRequest struct {
	ProductID      uuid.UUID            `json:"product_id" validate:"required"`
	Customizations types.Customizations `json:"customizations,omitempty"`
	Notes          string               `json:"notes,omitempty" validate:"max=280"`
}

func (p addItemRequest) toInput() checkout.AddItemInput {
	return checkout.AddItemInput{
		ProductID:      p.ProductID,
		Customizations: p.Customizations,
		Notes:          validators.SanitizeString(p.Notes, maxItemNotes),
	}
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0,max=99"`
}

type fulfillmentRequest struct {
	BranchID *uuid.UUID            `json:"branch_id,omitempty" validate:"required_without=Option"`
	Option   enums.FulfillmentType `json:"option,omitempty" validate:"omitempty,oneof=delivery pickup"`
}

func (p fulfillmentRequest) toInput() checkout.FulfillmentInput {
	return checkout.FulfillmentInput{BranchID: p.BranchID, Option: p.Option}
}

type placeOrderRequest struct {
	Notes string `json:"notes,omitempty" validate:"max=500"`
}

func (p placeOrderRequest) toInput() checkout.PlaceOrderInput {
	return checkout.PlaceOrderInput{Notes: validators.SanitizeString(p.Notes, maxOrderNotes)}
}
