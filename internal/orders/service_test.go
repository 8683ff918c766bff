package orders

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/migrate"
	"github.com/angelmondragon/storefront-backend/pkg/outbox"
	"github.com/angelmondragon/storefront-backend/pkg/policy"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

type ordersFixture struct {
	svc      Service
	outbox   *outbox.Repository
	tenantID uuid.UUID
}

func setupOrders(t *testing.T) ordersFixture {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:orders_"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrate.ApplySQLiteSchema(conn))

	outboxRepo := outbox.NewRepository(conn)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(NewRepository(conn), db.Wrap(conn), outbox.NewService(outboxRepo, logg))
	require.NoError(t, err)
	return ordersFixture{svc: svc, outbox: outboxRepo, tenantID: uuid.New()}
}

func (f ordersFixture) draft() Draft {
	return Draft{
		TenantID:        f.tenantID,
		SubmissionID:    uuid.New(),
		FulfillmentType: enums.FulfillmentDelivery,
		BranchName:      "Seef",
		Items: []LineItemDraft{
			{ProductID: uuid.New(), Name: "Sourdough", UnitPrice: 1500, Quantity: 2, Customizations: types.Customizations{"Slice": {"Yes"}}},
			{ProductID: uuid.New(), Name: "Baguette", UnitPrice: 800, Quantity: 1, Notes: "well done"},
		},
		Subtotal:    3800,
		DeliveryFee: 500,
		Total:       4300,
		Currency:    "BHD",
	}
}

func staff(tenantID uuid.UUID, role enums.ActorRole) policy.Actor {
	return policy.Actor{ID: uuid.New(), TenantID: &tenantID, Role: role}
}

func TestSubmitPersistsOrderAndEmitsEvent(t *testing.T) {
	f := setupOrders(t)

	order, err := f.svc.Submit(context.Background(), f.draft())
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusPending, order.Status)
	require.Equal(t, "4.300 BD", order.TotalFormatted)
	require.Len(t, order.LineItems, 2)
	require.Equal(t, "Sourdough", order.LineItems[0].Name)
	require.EqualValues(t, 3000, order.LineItems[0].LineTotal)

	events, err := f.outbox.ListByAggregate(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, enums.EventOrderPlaced, events[0].EventType)
}

func TestSubmitIsIdempotentOnSubmissionID(t *testing.T) {
	f := setupOrders(t)
	draft := f.draft()

	first, err := f.svc.Submit(context.Background(), draft)
	require.NoError(t, err)
	second, err := f.svc.Submit(context.Background(), draft)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	events, err := f.outbox.ListByAggregate(context.Background(), first.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
}

func TestSubmitRejectsInconsistentTotals(t *testing.T) {
	f := setupOrders(t)
	draft := f.draft()
	draft.Total = 9999

	_, err := f.svc.Submit(context.Background(), draft)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	draft = f.draft()
	draft.Items = nil
	_, err = f.svc.Submit(context.Background(), draft)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestGetIsTenantScoped(t *testing.T) {
	f := setupOrders(t)
	order, err := f.svc.Submit(context.Background(), f.draft())
	require.NoError(t, err)

	got, err := f.svc.Get(context.Background(), f.tenantID, order.ID)
	require.NoError(t, err)
	require.Equal(t, order.ID, got.ID)

	_, err = f.svc.Get(context.Background(), uuid.New(), order.ID)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestFindBySubmission(t *testing.T) {
	f := setupOrders(t)
	draft := f.draft()

	_, err := f.svc.FindBySubmission(context.Background(), f.tenantID, draft.SubmissionID)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	placed, err := f.svc.Submit(context.Background(), draft)
	require.NoError(t, err)

	found, err := f.svc.FindBySubmission(context.Background(), f.tenantID, draft.SubmissionID)
	require.NoError(t, err)
	require.Equal(t, placed.ID, found.ID)

	_, err = f.svc.FindBySubmission(context.Background(), uuid.New(), draft.SubmissionID)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestUpdateStatusFollowsMachine(t *testing.T) {
	f := setupOrders(t)
	order, err := f.svc.Submit(context.Background(), f.draft())
	require.NoError(t, err)
	actor := staff(f.tenantID, enums.ActorRoleStaff)

	updated, err := f.svc.UpdateStatus(context.Background(), StatusUpdate{TenantID: f.tenantID, OrderID: order.ID, To: enums.OrderStatusPreparing, Actor: actor})
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusPreparing, updated.Status)

	_, err = f.svc.UpdateStatus(context.Background(), StatusUpdate{TenantID: f.tenantID, OrderID: order.ID, To: enums.OrderStatusConfirmed, Actor: actor})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))

	same, err := f.svc.UpdateStatus(context.Background(), StatusUpdate{TenantID: f.tenantID, OrderID: order.ID, To: enums.OrderStatusPreparing, Actor: actor})
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusPreparing, same.Status)

	events, err := f.outbox.ListByAggregate(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
}

func TestUpdateStatusEnforcesPolicy(t *testing.T) {
	f := setupOrders(t)
	order, err := f.svc.Submit(context.Background(), f.draft())
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), StatusUpdate{TenantID: f.tenantID, OrderID: order.ID, To: enums.OrderStatusCancelled, Actor: staff(f.tenantID, enums.ActorRoleStaff)})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))

	_, err = f.svc.UpdateStatus(context.Background(), StatusUpdate{TenantID: f.tenantID, OrderID: order.ID, To: enums.OrderStatusConfirmed, Actor: staff(uuid.New(), enums.ActorRoleOwner)})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))

	cancelled, err := f.svc.UpdateStatus(context.Background(), StatusUpdate{TenantID: f.tenantID, OrderID: order.ID, To: enums.OrderStatusCancelled, Actor: staff(f.tenantID, enums.ActorRoleManager)})
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusCancelled, cancelled.Status)

	_, err = f.svc.UpdateStatus(context.Background(), StatusUpdate{TenantID: f.tenantID, OrderID: order.ID, To: enums.OrderStatusDelivered, Actor: staff(f.tenantID, enums.ActorRoleOwner)})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))
}

func TestNewServiceValidatesDependencies(t *testing.T) {
	_, err := NewService(nil, nil, nil)
	require.Error(t, err)
}
