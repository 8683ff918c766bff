package checkout

import (
	"fmt"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/money"
)

// GateInput is the cart and fulfillment state the payment gate is evaluated on.
type GateInput struct {
	Subtotal     money.Amount
	MinimumOrder money.Amount
	ItemCount    int
	Currency     string
	// FulfillmentComplete is true once both a branch and an option are chosen.
	FulfillmentComplete bool
}

// Gate reports whether checkout may proceed to payment and by how much it falls short.
type Gate struct {
	CanProceedToPayment bool         `json:"can_proceed_to_payment"`
	Subtotal            money.Amount `json:"subtotal_minor"`
	MinimumOrder        money.Amount `json:"minimum_order_minor"`
	Shortfall           money.Amount `json:"shortfall_minor"`
	ShortfallFormatted  string       `json:"shortfall,omitempty"`
	EmptyCart           bool         `json:"empty_cart"`
	// FulfillmentIncomplete flags a missing branch or option. The order CTA
	// stays disabled until it clears even when CanProceedToPayment is true.
	FulfillmentIncomplete bool `json:"fulfillment_incomplete"`
	CanPlaceOrder         bool `json:"can_place_order"`
}

// EvaluateGate computes the gate. A subtotal equal to the minimum passes.
func EvaluateGate(in GateInput) Gate {
	shortfall := money.Max(in.MinimumOrder-in.Subtotal, money.Zero)
	gate := Gate{
		CanProceedToPayment: in.ItemCount > 0 && in.Subtotal >= in.MinimumOrder,
		Subtotal:            in.Subtotal,
		MinimumOrder:        in.MinimumOrder,
		Shortfall:           shortfall,
		EmptyCart:           in.ItemCount <= 0,
	}
	gate.FulfillmentIncomplete = !in.FulfillmentComplete
	gate.CanPlaceOrder = gate.CanProceedToPayment && in.FulfillmentComplete
	if shortfall > 0 {
		gate.ShortfallFormatted = money.Format(shortfall, in.Currency)
	}
	return gate
}

// ValidateGate returns a typed error describing why an order cannot be placed, or nil.
func ValidateGate(in GateInput) error {
	gate := EvaluateGate(in)
	if gate.CanPlaceOrder {
		return nil
	}
	if gate.FulfillmentIncomplete {
		return pkgerrors.New(pkgerrors.CodeValidation, "choose a branch and a fulfillment option")
	}
	if gate.EmptyCart {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	return pkgerrors.New(pkgerrors.CodeMinimumOrderNotMet, fmt.Sprintf("add %s more to place this order", gate.ShortfallFormatted)).WithDetails(map[string]any{
		"subtotal":      money.Format(in.Subtotal, in.Currency),
		"minimum_order": money.Format(in.MinimumOrder, in.Currency),
		"shortfall":     gate.ShortfallFormatted,
	})
}
