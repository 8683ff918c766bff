package checkout

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/fulfillment"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// SubmissionStatus is the outcome of the latest order submission.
type SubmissionStatus string

const (
	SubmissionPending SubmissionStatus = "pending"
	SubmissionPlaced  SubmissionStatus = "placed"
	SubmissionFailed  SubmissionStatus = "failed"
)

// LastSubmission is written by the detached submission so the client can
// surface the result on its next read.
type LastSubmission struct {
	SubmissionID uuid.UUID        `json:"submission_id"`
	Status       SubmissionStatus `json:"status"`
	OrderID      *uuid.UUID       `json:"order_id,omitempty"`
	ErrorCode    string           `json:"error_code,omitempty"`
	Message      string           `json:"message,omitempty"`
	Retryable    bool             `json:"retryable"`
	StartedAt    time.Time        `json:"started_at"`
	FinishedAt   *time.Time       `json:"finished_at,omitempty"`
}

// OrderTracking follows a placed order's status.
type OrderTracking struct {
	OrderID   uuid.UUID         `json:"order_id"`
	Status    enums.OrderStatus `json:"status"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Session is the server-side checkout state of one shopper. It is snapshotted
// whole on every mutation.
type Session struct {
	ID             uuid.UUID           `json:"id"`
	TenantID       uuid.UUID           `json:"tenant_id"`
	Currency       string              `json:"currency"`
	State          enums.CheckoutState `json:"state"`
	CustomerID     *uuid.UUID          `json:"customer_id,omitempty"`
	Items          []cart.Item         `json:"items"`
	Fulfillment    fulfillment.State   `json:"fulfillment"`
	Notes          string              `json:"notes,omitempty"`
	Draft          *orders.Draft       `json:"draft,omitempty"`
	LastSubmission *LastSubmission     `json:"last_submission,omitempty"`
	Order          *OrderTracking      `json:"order,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// Ref addresses a session within a tenant.
type Ref struct {
	TenantID  uuid.UUID
	SessionID uuid.UUID
}

// Cart rebuilds the cart aggregate from the snapshot.
func (s *Session) Cart() *cart.Cart {
	return cart.Restore(s.Items)
}

// FulfillmentStore rebuilds the fulfillment aggregate from the snapshot.
func (s *Session) FulfillmentStore() *fulfillment.Store {
	return fulfillment.NewStore(s.Fulfillment)
}

func (s *Session) applyCart(c *cart.Cart) {
	s.Items = c.Items()
	s.Draft = nil
}

func (s *Session) applyFulfillment(f *fulfillment.Store) {
	s.Fulfillment = f.State()
	s.Draft = nil
}
