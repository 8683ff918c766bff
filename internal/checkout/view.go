package checkout

import (
	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/fulfillment"
	paymentgate "github.com/angelmondragon/storefront-backend/pkg/checkout"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/money"
)

// Totals are derived on every read and never stored.
type Totals struct {
	ItemCount            int          `json:"item_count"`
	Subtotal             money.Amount `json:"subtotal_minor"`
	DeliveryFee          money.Amount `json:"delivery_fee_minor"`
	Total                money.Amount `json:"total_minor"`
	SubtotalFormatted    string       `json:"subtotal"`
	DeliveryFeeFormatted string       `json:"delivery_fee"`
	TotalFormatted       string       `json:"total"`
}

// LineView is a cart line with its derived total.
type LineView struct {
	cart.Item
	LineTotal          money.Amount `json:"line_total_minor"`
	LineTotalFormatted string       `json:"line_total"`
}

// View is the session as returned to clients.
type View struct {
	ID             string                `json:"id"`
	State          enums.CheckoutState   `json:"state"`
	Currency       string                `json:"currency"`
	Authenticated  bool                  `json:"authenticated"`
	Items          []LineView            `json:"items"`
	Fulfillment    fulfillment.Selection `json:"fulfillment"`
	Totals         Totals                `json:"totals"`
	Gate           paymentgate.Gate      `json:"gate"`
	Notes          string                `json:"notes,omitempty"`
	LastSubmission *LastSubmission       `json:"last_submission,omitempty"`
	Order          *OrderTracking        `json:"order,omitempty"`
}

// NewView derives totals, fulfillment selection and the payment gate.
func NewView(s *Session) *View {
	c := s.Cart()
	f := s.FulfillmentStore()
	fee := f.DeliveryFee()

	lines := make([]LineView, 0, len(s.Items))
	for _, item := range c.Items() {
		lines = append(lines, LineView{
			Item:               item,
			LineTotal:          item.LineTotal(),
			LineTotalFormatted: money.Format(item.LineTotal(), s.Currency),
		})
	}

	return &View{
		ID:            s.ID.String(),
		State:         s.State,
		Currency:      s.Currency,
		Authenticated: s.CustomerID != nil,
		Items:         lines,
		Fulfillment:   f.Selection(),
		Totals: Totals{
			ItemCount:            c.ItemCount(),
			Subtotal:             c.Subtotal(),
			DeliveryFee:          fee,
			Total:                c.Total(fee),
			SubtotalFormatted:    money.Format(c.Subtotal(), s.Currency),
			DeliveryFeeFormatted: money.Format(fee, s.Currency),
			TotalFormatted:       money.Format(c.Total(fee), s.Currency),
		},
		Gate:           paymentgate.EvaluateGate(gateInput(s, c, f)),
		Notes:          s.Notes,
		LastSubmission: s.LastSubmission,
		Order:          s.Order,
	}
}

func gateInput(s *Session, c *cart.Cart, f *fulfillment.Store) paymentgate.GateInput {
	return paymentgate.GateInput{
		Subtotal:     c.Subtotal(),
		MinimumOrder: f.MinimumOrder(),
		ItemCount:    c.ItemCount(),
		Currency:     s.Currency,

		FulfillmentComplete: f.Complete(),
	}
}
