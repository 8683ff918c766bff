package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/money"
	"github.com/angelmondragon/storefront-backend/pkg/outbox"
	"github.com/angelmondragon/storefront-backend/pkg/outbox/payloads"
	"github.com/angelmondragon/storefront-backend/pkg/policy"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service is the order backend checkout submits to and staff update.
type Service interface {
	Submit(ctx context.Context, draft Draft) (*OrderDTO, error)
	Get(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderDTO, error)
	FindBySubmission(ctx context.Context, tenantID, submissionID uuid.UUID) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, input StatusUpdate) (*OrderDTO, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
	now    func() time.Time
}

// NewService builds the order service with the required dependencies.
func NewService(repo Repository, tx txRunner, outbox outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{
		repo:   repo,
		tx:     tx,
		outbox: outbox,
		now:    time.Now,
	}, nil
}

// Submit persists the draft once per submission id. Replays return the
// order created by the first call.
func (s *service) Submit(ctx context.Context, draft Draft) (*OrderDTO, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	var placed *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		existing, err := repo.FindBySubmission(ctx, draft.SubmissionID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order by submission")
		}
		if existing != nil {
			placed = existing
			return nil
		}

		order := buildOrder(draft, s.now().UTC())
		if err := repo.Create(ctx, order); err != nil {
			return err
		}
		placed = order

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderPlaced,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         customerActor(draft.CustomerID),
			Data: payloads.OrderPlacedEvent{
				OrderID:         order.ID,
				TenantID:        order.TenantID,
				SubmissionID:    order.SubmissionID,
				FulfillmentType: order.FulfillmentType,
				BranchID:        order.BranchID,
				ItemCount:       itemCount(draft.Items),
				TotalMinor:      order.TotalMinor,
				Currency:        order.Currency,
			},
		})
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			existing, findErr := s.repo.FindBySubmission(ctx, draft.SubmissionID)
			if findErr == nil && existing != nil {
				return FromModel(existing), nil
			}
		}
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}
	return FromModel(placed), nil
}

func (s *service) Get(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order == nil || order.TenantID != tenantID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return FromModel(order), nil
}

// FindBySubmission returns the order persisted for a checkout submission.
func (s *service) FindBySubmission(ctx context.Context, tenantID, submissionID uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindBySubmission(ctx, submissionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order by submission")
	}
	if order == nil || order.TenantID != tenantID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return FromModel(order), nil
}

func (s *service) UpdateStatus(ctx context.Context, input StatusUpdate) (*OrderDTO, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !input.To.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]any{"status": input.To})
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, input.OrderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order == nil || order.TenantID != input.TenantID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}

		action := policy.ActionUpdateStatus
		if input.To == enums.OrderStatusCancelled {
			action = policy.ActionCancel
		}
		if !policy.Can(input.Actor, action, policy.Resource{
			Kind:     policy.ResourceOrder,
			TenantID: order.TenantID,
			OwnerID:  order.CustomerID,
		}) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to change order status")
		}

		if order.Status == input.To {
			updated = order
			return nil
		}
		if err := ValidateTransition(order.Status, input.To); err != nil {
			return err
		}

		from := order.Status
		at := s.now().UTC()
		ok, err := repo.UpdateStatus(ctx, order.ID, from, input.To, at)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order status changed concurrently")
		}
		order.Status = input.To
		order.StatusChangedAt = at
		updated = order

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderStatusChanged,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         &outbox.ActorRef{ID: input.Actor.ID, Role: string(input.Actor.Role)},
			Data: payloads.OrderStatusChangedEvent{
				OrderID:   order.ID,
				TenantID:  order.TenantID,
				From:      from,
				To:        input.To,
				ChangedAt: at,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func validateDraft(d Draft) error {
	problems := map[string]string{}
	if d.TenantID == uuid.Nil {
		problems["tenant_id"] = "required"
	}
	if d.SubmissionID == uuid.Nil {
		problems["submission_id"] = "required"
	}
	if !d.FulfillmentType.IsValid() {
		problems["fulfillment_type"] = "invalid"
	}
	if len(d.Items) == 0 {
		problems["items"] = "at least one item required"
	}
	var subtotal money.Amount
	for _, item := range d.Items {
		if item.Quantity < 1 {
			problems["items"] = "quantity must be at least 1"
			break
		}
		subtotal += item.UnitPrice.Times(item.Quantity)
	}
	if subtotal != d.Subtotal {
		problems["subtotal_minor"] = "does not match items"
	}
	if d.Total != d.Subtotal+d.DeliveryFee {
		problems["total_minor"] = "does not match subtotal plus delivery fee"
	}
	if len(problems) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid order draft").WithDetails(problems)
	}
	return nil
}

func buildOrder(d Draft, now time.Time) *models.Order {
	currency := d.Currency
	if currency == "" {
		currency = money.DefaultCurrency
	}
	order := &models.Order{
		ID:               uuid.New(),
		TenantID:         d.TenantID,
		SubmissionID:     d.SubmissionID,
		CustomerID:       d.CustomerID,
		Status:           enums.OrderStatusPending,
		FulfillmentType:  d.FulfillmentType,
		BranchID:         d.BranchID,
		BranchName:       d.BranchName,
		EstimatedTime:    d.EstimatedTime,
		SubtotalMinor:    int64(d.Subtotal),
		DeliveryFeeMinor: int64(d.DeliveryFee),
		TotalMinor:       int64(d.Total),
		Currency:         currency,
		Notes:            optionalString(d.Notes),
		PlacedAt:         now,
		StatusChangedAt:  now,
	}
	for i, item := range d.Items {
		order.LineItems = append(order.LineItems, models.OrderLineItem{
			ID:             uuid.New(),
			OrderID:        order.ID,
			ProductID:      item.ProductID,
			Name:           item.Name,
			UnitPriceMinor: int64(item.UnitPrice),
			Quantity:       item.Quantity,
			Customizations: item.Customizations,
			Notes:          optionalString(item.Notes),
			LineTotalMinor: int64(item.UnitPrice.Times(item.Quantity)),
			Position:       i,
		})
	}
	return order
}

func customerActor(customerID *uuid.UUID) *outbox.ActorRef {
	if customerID == nil {
		return nil
	}
	return &outbox.ActorRef{ID: *customerID, Role: string(enums.ActorRoleCustomer)}
}

func itemCount(items []LineItemDraft) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
