package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/fulfillment"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/money"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

const (
	defaultSubmitTimeout = 30 * time.Second
	defaultLockWait      = 3 * time.Second
	lockStep             = 50 * time.Millisecond
	finalizeTimeout      = 10 * time.Second
	finalizeAttempts     = 3
	finalizeBackoff      = 250 * time.Millisecond
)

var errNothingToDo = errors.New("nothing to do")

type sessionStore interface {
	Load(ctx context.Context, id uuid.UUID) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Lock(id uuid.UUID) (Locker, error)
	StaleSubmitting(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
	Forget(ctx context.Context, id uuid.UUID) error
}

type productReader interface {
	GetProduct(ctx context.Context, scope catalog.Scope, productID uuid.UUID) (*catalog.ProductDTO, error)
}

type branchReader interface {
	GetBranch(ctx context.Context, tenantID, branchID uuid.UUID) (*fulfillment.BranchDTO, error)
}

type orderBackend interface {
	Submit(ctx context.Context, draft orders.Draft) (*orders.OrderDTO, error)
	Get(ctx context.Context, tenantID, orderID uuid.UUID) (*orders.OrderDTO, error)
	FindBySubmission(ctx context.Context, tenantID, submissionID uuid.UUID) (*orders.OrderDTO, error)
}

// AddItemInput adds one unit of a product to the cart.
type AddItemInput struct {
	ProductID      uuid.UUID
	Customizations types.Customizations
	Notes          string
}

// FulfillmentInput replaces the branch, the option, or both.
type FulfillmentInput struct {
	BranchID *uuid.UUID
	Option   enums.FulfillmentType
}

// PlaceOrderInput carries the checkout form.
type PlaceOrderInput struct {
	Notes string
}

// Service orchestrates a checkout session from browsing to a placed order.
type Service interface {
	Create(ctx context.Context, scope catalog.Scope) (*View, error)
	Get(ctx context.Context, ref Ref) (*View, error)
	AddItem(ctx context.Context, ref Ref, input AddItemInput) (*View, error)
	UpdateItem(ctx context.Context, ref Ref, itemID uuid.UUID, quantity int) (*View, error)
	RemoveItem(ctx context.Context, ref Ref, itemID uuid.UUID) (*View, error)
	SetFulfillment(ctx context.Context, ref Ref, input FulfillmentInput) (*View, error)
	OpenCart(ctx context.Context, ref Ref) (*View, error)
	ContinueShopping(ctx context.Context, ref Ref) (*View, error)
	BeginCheckout(ctx context.Context, ref Ref) (*View, error)
	CompleteAuth(ctx context.Context, ref Ref, customerID uuid.UUID) (*View, error)
	PlaceOrder(ctx context.Context, ref Ref, input PlaceOrderInput) (*View, error)
	RefreshOrderStatus(ctx context.Context, ref Ref) (*View, error)
	SweepStaleSubmissions(ctx context.Context, olderThan time.Duration) (int, error)
}

// ServiceParams wires the orchestrator.
type ServiceParams struct {
	Store         sessionStore
	Catalog       productReader
	Branches      branchReader
	Orders        orderBackend
	Logger        *logger.Logger
	Metrics       *metrics.StorefrontMetrics
	SubmitTimeout time.Duration
	LockWait      time.Duration
	RequireAuth   bool
}

type service struct {
	store         sessionStore
	catalog       productReader
	branches      branchReader
	orders        orderBackend
	logg          *logger.Logger
	metrics       *metrics.StorefrontMetrics
	submitTimeout time.Duration
	lockWait      time.Duration
	requireAuth   bool
	backoff       time.Duration
	now           func() time.Time
	newID         func() uuid.UUID
	async         func(func())
}

// NewService validates dependencies and builds the orchestrator.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if params.Branches == nil {
		return nil, fmt.Errorf("branch reader required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order backend required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	submitTimeout := params.SubmitTimeout
	if submitTimeout <= 0 {
		submitTimeout = defaultSubmitTimeout
	}
	lockWait := params.LockWait
	if lockWait <= 0 {
		lockWait = defaultLockWait
	}
	return &service{
		store:         params.Store,
		catalog:       params.Catalog,
		branches:      params.Branches,
		orders:        params.Orders,
		logg:          params.Logger,
		metrics:       params.Metrics,
		submitTimeout: submitTimeout,
		lockWait:      lockWait,
		requireAuth:   params.RequireAuth,
		backoff:       finalizeBackoff,
		now:           time.Now,
		newID:         uuid.New,
		async:         func(fn func()) { go fn() },
	}, nil
}

func (s *service) Create(ctx context.Context, scope catalog.Scope) (*View, error) {
	if scope.TenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant required")
	}
	currency := scope.Currency
	if currency == "" {
		currency = money.DefaultCurrency
	}
	now := s.now().UTC()
	sess := &Session{
		ID:        s.newID(),
		TenantID:  scope.TenantID,
		Currency:  currency,
		State:     enums.CheckoutStateBrowsing,
		Items:     []cart.Item{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session")
	}
	s.logg.Info(s.logg.WithSessionID(ctx, sess.ID.String()), "checkout.session.created")
	return NewView(sess), nil
}

func (s *service) Get(ctx context.Context, ref Ref) (*View, error) {
	sess, err := s.load(ctx, ref)
	if err != nil {
		return nil, err
	}
	return NewView(sess), nil
}

func (s *service) AddItem(ctx context.Context, ref Ref, input AddItemInput) (*View, error) {
	return s.mutate(ctx, ref, func(sess *Session) error {
		if err := ensureMutable(sess); err != nil {
			return err
		}
		product, err := s.catalog.GetProduct(ctx, catalog.Scope{TenantID: sess.TenantID, Currency: sess.Currency}, input.ProductID)
		if err != nil {
			return err
		}
		if !product.Available {
			return pkgerrors.New(pkgerrors.CodeValidation, "product is unavailable").
				WithDetails(map[string]any{"product_id": product.ID})
		}
		customizations := cart.Canonicalize(input.Customizations)
		if err := cart.ValidateCustomizations(product.Options, customizations); err != nil {
			return err
		}

		c := sess.Cart()
		c.AddItem(productRef(product), customizations, input.Notes)
		sess.applyCart(c)
		leavePlaced(sess)
		return nil
	})
}

func (s *service) UpdateItem(ctx context.Context, ref Ref, itemID uuid.UUID, quantity int) (*View, error) {
	return s.mutate(ctx, ref, func(sess *Session) error {
		if err := ensureMutable(sess); err != nil {
			return err
		}
		c := sess.Cart()
		if !c.UpdateQuantity(itemID, quantity) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		sess.applyCart(c)
		return nil
	})
}

func (s *service) RemoveItem(ctx context.Context, ref Ref, itemID uuid.UUID) (*View, error) {
	return s.mutate(ctx, ref, func(sess *Session) error {
		if err := ensureMutable(sess); err != nil {
			return err
		}
		c := sess.Cart()
		c.RemoveItem(itemID)
		sess.applyCart(c)
		return nil
	})
}

func (s *service) SetFulfillment(ctx context.Context, ref Ref, input FulfillmentInput) (*View, error) {
	if input.BranchID == nil && input.Option == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch or option required")
	}
	return s.mutate(ctx, ref, func(sess *Session) error {
		if err := ensureMutable(sess); err != nil {
			return err
		}
		f := sess.FulfillmentStore()
		if input.BranchID != nil {
			branch, err := s.branches.GetBranch(ctx, sess.TenantID, *input.BranchID)
			if err != nil {
				return err
			}
			f.SetBranch(*branch)
		}
		if input.Option != "" {
			if err := f.SetOption(input.Option); err != nil {
				return err
			}
		}
		sess.applyFulfillment(f)
		return nil
	})
}

func (s *service) OpenCart(ctx context.Context, ref Ref) (*View, error) {
	return s.mutate(ctx, ref, func(sess *Session) error {
		if err := ensureMutable(sess); err != nil {
			return err
		}
		sess.State = enums.CheckoutStateCartReview
		return nil
	})
}

func (s *service) ContinueShopping(ctx context.Context, ref Ref) (*View, error) {
	return s.mutate(ctx, ref, func(sess *Session) error {
		if err := ensureMutable(sess); err != nil {
			return err
		}
		sess.State = enums.CheckoutStateBrowsing
		return nil
	})
}

func (s *service) BeginCheckout(ctx context.Context, ref Ref) (*View, error) {
	return s.mutate(ctx, ref, func(sess *Session) error {
		if err := ensureMutable(sess); err != nil {
			return err
		}
		if sess.Cart().IsEmpty() {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}
		if s.requireAuth && sess.CustomerID == nil {
			sess.State = enums.CheckoutStateAuthRequired
			return nil
		}
		sess.State = enums.CheckoutStateCheckoutForm
		return nil
	})
}

// CompleteAuth attaches the customer. Coming back from the auth detour lands
// on the checkout form with cart and fulfillment untouched.
func (s *service) CompleteAuth(ctx context.Context, ref Ref, customerID uuid.UUID) (*View, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
	}
	return s.mutate(ctx, ref, func(sess *Session) error {
		if err := ensureMutable(sess); err != nil {
			return err
		}
		id := customerID
		sess.CustomerID = &id
		if sess.State == enums.CheckoutStateAuthRequired {
			sess.State = enums.CheckoutStateCheckoutForm
		}
		return nil
	})
}

func (s *service) RefreshOrderStatus(ctx context.Context, ref Ref) (*View, error) {
	return s.mutate(ctx, ref, func(sess *Session) error {
		if sess.Order == nil {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "no order to track")
		}
		order, err := s.orders.Get(ctx, sess.TenantID, sess.Order.OrderID)
		if err != nil {
			return err
		}
		if order.Status == sess.Order.Status {
			return nil
		}
		if !orders.CanTransition(sess.Order.Status, order.Status) {
			logCtx := s.logg.WithFields(ctx, map[string]any{
				"order_id": order.ID.String(),
				"from":     sess.Order.Status,
				"to":       order.Status,
			})
			s.logg.Warn(logCtx, "checkout.order_status.rejected")
			return nil
		}
		sess.Order.Status = order.Status
		sess.Order.UpdatedAt = s.now().UTC()
		return nil
	})
}

// SweepStaleSubmissions settles submissions that started more than olderThan
// ago and never reported back, typically because the instance running them died
// or could not write the outcome. A submission whose order was persisted is
// finished as placed; the rest are failed with the cart kept.
func (s *service) SweepStaleSubmissions(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := s.now().UTC().Add(-olderThan)
	ids, err := s.store.StaleSubmitting(ctx, cutoff)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list submitting sessions")
	}

	swept := 0
	var errs error
	for _, id := range ids {
		var recovered *orders.OrderDTO
		_, err := s.withSession(ctx, Ref{SessionID: id}, func(sess *Session) error {
			if sess.State != enums.CheckoutStateSubmitting || sess.LastSubmission == nil ||
				sess.LastSubmission.StartedAt.After(cutoff) {
				return errNothingToDo
			}
			order, err := s.orders.FindBySubmission(ctx, sess.TenantID, sess.LastSubmission.SubmissionID)
			switch {
			case err == nil:
				recovered = order
				s.markPlaced(sess, order)
			case pkgerrors.IsCode(err, pkgerrors.CodeNotFound):
				s.failSubmission(sess, "order submission timed out")
			default:
				return err
			}
			return nil
		})
		logCtx := s.logg.WithSessionID(ctx, id.String())
		switch {
		case err == nil && recovered != nil:
			swept++
			s.metrics.Submission("recovered")
			s.logg.Warn(s.logg.WithField(logCtx, "order_id", recovered.ID.String()), "checkout.submission.recovered")
		case err == nil:
			swept++
			s.metrics.Submission("swept")
			s.logg.Warn(logCtx, "checkout.submission.swept")
		case errors.Is(err, errNothingToDo):
		case pkgerrors.IsCode(err, pkgerrors.CodeNotFound):
			errs = multierr.Append(errs, s.store.Forget(ctx, id))
		default:
			errs = multierr.Append(errs, fmt.Errorf("sweep session %s: %w", id, err))
		}
	}
	return swept, errs
}

func (s *service) mutate(ctx context.Context, ref Ref, fn func(sess *Session) error) (*View, error) {
	sess, err := s.withSession(ctx, ref, fn)
	if err != nil {
		return nil, err
	}
	return NewView(sess), nil
}

// withSession runs fn on the freshest snapshot while holding the session lock
// and saves the result when fn succeeds. A zero tenant skips the tenant check.
func (s *service) withSession(ctx context.Context, ref Ref, fn func(sess *Session) error) (*Session, error) {
	lock, err := s.store.Lock(ref.SessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build session lock")
	}
	if err := lock.AcquireWait(ctx, s.lockWait, lockStep); err != nil {
		if errors.Is(err, redis.ErrLockNotAcquired) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "session is busy, retry shortly")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire session lock")
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			s.logg.Error(s.logg.WithSessionID(ctx, ref.SessionID.String()), "checkout.session.unlock_failed", err)
		}
	}()

	sess, err := s.load(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	sess.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session")
	}
	return sess, nil
}

func (s *service) load(ctx context.Context, ref Ref) (*Session, error) {
	sess, err := s.store.Load(ctx, ref.SessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session")
	}
	if sess == nil || (ref.TenantID != uuid.Nil && sess.TenantID != ref.TenantID) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "session not found")
	}
	return sess, nil
}

func ensureMutable(sess *Session) error {
	if sess.State == enums.CheckoutStateSubmitting {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "order submission in progress")
	}
	return nil
}

// leavePlaced starts a new purchase once the shopper edits the cart after an order.
func leavePlaced(sess *Session) {
	if sess.State == enums.CheckoutStatePlaced {
		sess.State = enums.CheckoutStateBrowsing
	}
}

func productRef(p *catalog.ProductDTO) cart.ProductRef {
	ref := cart.ProductRef{ID: p.ID, Name: p.Name, UnitPrice: p.Price}
	if len(p.Images) > 0 {
		ref.ImageURL = p.Images[0]
	}
	return ref
}
