package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/fulfillment"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	paymentgate "github.com/angelmondragon/storefront-backend/pkg/checkout"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

var errStaleSubmission = errors.New("submission superseded")

// PlaceOrder freezes the cart into a draft and hands it to the order backend
// without waiting for the result. The response reports the submitting state;
// the outcome lands on the session as LastSubmission.
func (s *service) PlaceOrder(ctx context.Context, ref Ref, input PlaceOrderInput) (*View, error) {
	var (
		draft      orders.Draft
		suppressed bool
	)
	sess, err := s.withSession(ctx, ref, func(sess *Session) error {
		if sess.State == enums.CheckoutStateSubmitting {
			suppressed = true
			return nil
		}
		if sess.State != enums.CheckoutStateCheckoutForm {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "checkout form is not open").
				WithDetails(map[string]any{"state": sess.State})
		}
		c := sess.Cart()
		f := sess.FulfillmentStore()
		if err := paymentgate.ValidateGate(gateInput(sess, c, f)); err != nil {
			return err
		}
		if notes := strings.TrimSpace(input.Notes); notes != "" {
			sess.Notes = notes
		}

		next := buildDraft(sess, c, f)
		if sess.Draft != nil && sameDraft(*sess.Draft, next) {
			next.SubmissionID = sess.Draft.SubmissionID
		} else {
			next.SubmissionID = s.newID()
		}
		sess.Draft = &next
		sess.State = enums.CheckoutStateSubmitting
		sess.LastSubmission = &LastSubmission{
			SubmissionID: next.SubmissionID,
			Status:       SubmissionPending,
			StartedAt:    s.now().UTC(),
		}
		draft = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	logCtx := s.logg.WithSessionID(ctx, sess.ID.String())
	if suppressed {
		s.metrics.Submission("suppressed")
		s.logg.Info(logCtx, "checkout.submission.suppressed")
		return NewView(sess), nil
	}

	logCtx = s.logg.WithField(logCtx, "submission_id", draft.SubmissionID.String())
	s.logg.Info(logCtx, "checkout.submission.started")
	s.dispatch(ctx, Ref{TenantID: sess.TenantID, SessionID: sess.ID}, draft)
	return NewView(sess), nil
}

// dispatch submits the draft on a context detached from the request so a
// client disconnect cannot abort an order mid-write.
func (s *service) dispatch(ctx context.Context, ref Ref, draft orders.Draft) {
	detached := context.WithoutCancel(ctx)
	s.async(func() {
		submitCtx, cancel := context.WithTimeout(detached, s.submitTimeout)
		order, err := s.orders.Submit(submitCtx, draft)
		if err == nil && order == nil {
			err = errors.New("order backend returned no order")
		}
		if err != nil && errors.Is(submitCtx.Err(), context.DeadlineExceeded) {
			err = pkgerrors.Wrap(pkgerrors.CodeOrderSubmissionFailed, err, "order submission timed out")
		}
		cancel()

		finalizeCtx, cancelFinalize := context.WithTimeout(detached, finalizeTimeout)
		defer cancelFinalize()
		s.finishSubmission(finalizeCtx, ref, draft.SubmissionID, order, err)
	})
}

func (s *service) finishSubmission(ctx context.Context, ref Ref, submissionID uuid.UUID, order *orders.OrderDTO, submitErr error) {
	logCtx := s.logg.WithFields(s.logg.WithSessionID(ctx, ref.SessionID.String()), map[string]any{
		"submission_id": submissionID.String(),
	})

	var err error
	for attempt := 1; ; attempt++ {
		_, err = s.withSession(ctx, ref, func(sess *Session) error {
			if sess.LastSubmission == nil || sess.LastSubmission.SubmissionID != submissionID {
				return errStaleSubmission
			}
			if submitErr != nil {
				s.failSubmission(sess, submissionMessage(submitErr))
				return nil
			}
			s.markPlaced(sess, order)
			return nil
		})
		if err == nil || errors.Is(err, errStaleSubmission) || attempt >= finalizeAttempts {
			break
		}
		s.logg.Warn(s.logg.WithFields(logCtx, map[string]any{"attempt": attempt, "error": err.Error()}), "checkout.submission.finalize_retry")
		if waitErr := wait(ctx, time.Duration(attempt)*s.backoff); waitErr != nil {
			err = waitErr
			break
		}
	}

	switch {
	case errors.Is(err, errStaleSubmission):
		s.logg.Warn(logCtx, "checkout.submission.superseded")
		return
	case err != nil:
		// The sweeper settles the session from the order backend.
		s.logg.Error(logCtx, "checkout.submission.finalize_failed", err)
		return
	}

	if submitErr != nil {
		s.metrics.Submission("failed")
		s.logg.Error(logCtx, "checkout.submission.failed", submitErr)
		return
	}
	s.metrics.Submission("placed")
	s.logg.Info(s.logg.WithField(logCtx, "order_id", order.ID.String()), "checkout.submission.placed")
}

// markPlaced clears the cart and records the order; fulfillment is kept.
func (s *service) markPlaced(sess *Session, order *orders.OrderDTO) {
	now := s.now().UTC()
	orderID := order.ID
	c := sess.Cart()
	c.Clear()
	sess.applyCart(c)
	sess.State = enums.CheckoutStatePlaced
	if sess.LastSubmission != nil {
		sess.LastSubmission.Status = SubmissionPlaced
		sess.LastSubmission.OrderID = &orderID
		sess.LastSubmission.ErrorCode = ""
		sess.LastSubmission.Message = ""
		sess.LastSubmission.Retryable = false
		sess.LastSubmission.FinishedAt = &now
	}
	sess.Order = &OrderTracking{OrderID: order.ID, Status: order.Status, UpdatedAt: now}
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// failSubmission returns the shopper to the form with cart and draft intact so
// an unchanged retry reuses the same submission id.
func (s *service) failSubmission(sess *Session, message string) {
	now := s.now().UTC()
	if sess.State == enums.CheckoutStateSubmitting {
		sess.State = enums.CheckoutStateCheckoutForm
	}
	if sess.LastSubmission == nil {
		return
	}
	sess.LastSubmission.Status = SubmissionFailed
	sess.LastSubmission.ErrorCode = string(pkgerrors.CodeOrderSubmissionFailed)
	sess.LastSubmission.Message = message
	sess.LastSubmission.Retryable = true
	sess.LastSubmission.FinishedAt = &now
}

func submissionMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "order submission timed out"
	}
	if typed := pkgerrors.As(err); typed != nil && typed.Code() != pkgerrors.CodeInternal {
		return typed.Message()
	}
	return "order could not be placed, please try again"
}

func buildDraft(sess *Session, c *cart.Cart, f *fulfillment.Store) orders.Draft {
	items := c.Items()
	lines := make([]orders.LineItemDraft, 0, len(items))
	for _, item := range items {
		lines = append(lines, orders.LineItemDraft{
			ProductID:      item.ProductID,
			Name:           item.Name,
			UnitPrice:      item.UnitPrice,
			Quantity:       item.Quantity,
			Customizations: item.Customizations,
			Notes:          item.Notes,
		})
	}
	selection := f.Selection()
	fee := f.DeliveryFee()
	return orders.Draft{
		TenantID:        sess.TenantID,
		CustomerID:      sess.CustomerID,
		FulfillmentType: selection.Option,
		BranchID:        selection.BranchID,
		BranchName:      selection.BranchName,
		EstimatedTime:   selection.EstimatedTime,
		Items:           lines,
		Subtotal:        c.Subtotal(),
		DeliveryFee:     fee,
		Total:           c.Total(fee),
		Currency:        sess.Currency,
		Notes:           sess.Notes,
	}
}

// sameDraft compares drafts ignoring their submission ids.
func sameDraft(a, b orders.Draft) bool {
	a.SubmissionID = uuid.Nil
	b.SubmissionID = uuid.Nil
	left, errA := json.Marshal(a)
	right, errB := json.Marshal(b)
	return errA == nil && errB == nil && bytes.Equal(left, right)
}
