package workorder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldops/backend/internal/domain/billing"
	"github.com/fieldops/backend/internal/domain/catalog"
	"github.com/fieldops/backend/internal/domain/customer"
	"github.com/fieldops/backend/internal/domain/scheduling"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/domain/shared/valueobject"
	"github.com/fieldops/backend/internal/domain/workorder"
)

type fixture struct {
	tenantID    uuid.UUID
	ctx         context.Context
	customer    *customer.Customer
	location    *customer.Location
	service     *catalog.Service
	appointment *scheduling.Appointment
	workOrders  *memWorkOrderRepo
	payments    paymentSums
	pub         *recordingPublisher
	svc         *WorkOrderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tenantID := uuid.New()
	cust, err := customer.NewCustomer(tenantID, "Acme", "", "")
	require.NoError(t, err)
	loc, err := customer.NewLocation(tenantID, cust.ID, "HQ", valueobject.NewAddress("1 Main", "", "Springfield", "", "", ""))
	require.NoError(t, err)
	service, err := catalog.NewService(tenantID, "REPAIR", "Boiler repair", decimal.NewFromInt(100), decimal.NewFromInt(8), 90)
	require.NoError(t, err)
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	appt, err := scheduling.Schedule(tenantID, scheduling.Booking{
		CustomerID:     cust.ID,
		LocationID:     loc.ID,
		ServiceID:      service.ID,
		ScheduledStart: start,
		ScheduledEnd:   start.Add(90 * time.Minute),
	})
	require.NoError(t, err)

	f := &fixture{
		tenantID:    tenantID,
		ctx:         shared.WithTenantID(context.Background(), tenantID),
		customer:    cust,
		location:    loc,
		service:     service,
		appointment: appt,
		workOrders:  newMemWorkOrderRepo(),
		payments:    paymentSums{paid: map[uuid.UUID]decimal.Decimal{}},
		pub:         &recordingPublisher{},
	}
	f.svc = NewWorkOrderService(Repositories{
		WorkOrders:   f.workOrders,
		Customers:    newMemCustomers(cust),
		Locations:    newMemLocations(loc),
		Appointments: newMemAppointments(appt),
		Services:     newMemServices(service),
		Payments:     f.payments,
	})
	f.svc.SetEventPublisher(f.pub)
	f.svc.now = func() time.Time { return start }
	return f
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestWorkOrderService_Create(t *testing.T) {
	t.Run("copies catalog price and tax for service lines", func(t *testing.T) {
		f := newFixture(t)
		price := dec("25")

		resp, err := f.svc.Create(f.ctx, CreateWorkOrderCommand{
			CustomerID: f.customer.ID,
			LocationID: f.location.ID,
			Items: []ItemInput{
				{ServiceID: &f.service.ID, Quantity: dec("2")},
				{Description: "Valve", Quantity: dec("1"), UnitPrice: &price},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "WO-20260302-0001", resp.Number)
		assert.Equal(t, "open", resp.Status)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "Boiler repair", resp.Items[0].Description)
		assert.True(t, resp.Items[0].Total.Equal(dec("216")))
		assert.True(t, resp.Subtotal.Equal(dec("225")))
		assert.True(t, resp.TaxAmount.Equal(dec("16")))
		assert.True(t, resp.TotalAmount.Equal(dec("241")))
		assert.True(t, resp.Balance.Equal(dec("241")))
	})

	t.Run("defaults customer and location from appointment", func(t *testing.T) {
		f := newFixture(t)

		resp, err := f.svc.Create(f.ctx, CreateWorkOrderCommand{AppointmentID: &f.appointment.ID})
		require.NoError(t, err)
		assert.Equal(t, f.customer.ID, resp.CustomerID)
		assert.Equal(t, f.location.ID, resp.LocationID)
		require.NotNil(t, resp.AppointmentID)
		assert.Equal(t, f.appointment.ID, *resp.AppointmentID)
	})

	t.Run("rejects a customer that differs from the appointment", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(f.ctx, CreateWorkOrderCommand{
			AppointmentID: &f.appointment.ID,
			CustomerID:    uuid.New(),
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "APPOINTMENT_MISMATCH", domainErr.Code)
	})

	t.Run("validation errors are returned before any lookup", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(f.ctx, CreateWorkOrderCommand{
			Items: []ItemInput{{Quantity: dec("0")}},
		})
		var verrs shared.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.NotEmpty(t, verrs)
		assert.Empty(t, f.workOrders.items)
	})

	t.Run("missing tenant", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(context.Background(), CreateWorkOrderCommand{
			CustomerID: f.customer.ID,
			LocationID: f.location.ID,
		})
		assert.ErrorIs(t, err, shared.ErrTenantContextMissing)
	})

	t.Run("unknown location", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(f.ctx, CreateWorkOrderCommand{
			CustomerID: f.customer.ID,
			LocationID: uuid.New(),
		})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestWorkOrderService_Lifecycle(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.Create(f.ctx, CreateWorkOrderCommand{
		CustomerID: f.customer.ID,
		LocationID: f.location.ID,
	})
	require.NoError(t, err)

	_, err = f.svc.Complete(f.ctx, created.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_ITEMS", domainErr.Code)

	withItem, err := f.svc.AddItem(f.ctx, created.ID, AddItemCommand{ItemInput{ServiceID: &f.service.ID, Quantity: dec("1")}})
	require.NoError(t, err)
	require.Len(t, withItem.Items, 1)

	_, err = f.svc.Start(f.ctx, created.ID)
	require.NoError(t, err)

	f.payments.paid[created.ID] = dec("50")
	done, err := f.svc.Complete(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)
	assert.NotNil(t, done.CompletedAt)
	assert.True(t, done.PaidAmount.Equal(dec("50")))
	assert.True(t, done.Balance.Equal(dec("58")))

	require.Len(t, f.pub.events, 1)
	assert.Equal(t, workorder.EventTypeWorkOrderCompleted, f.pub.events[0].EventType())

	_, err = f.svc.RemoveItem(f.ctx, created.ID, withItem.Items[0].ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	err = f.svc.Delete(f.ctx, created.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestWorkOrderService_RemoveItemAndDelete(t *testing.T) {
	f := newFixture(t)
	price := dec("10")
	created, err := f.svc.Create(f.ctx, CreateWorkOrderCommand{
		CustomerID: f.customer.ID,
		LocationID: f.location.ID,
		Items:      []ItemInput{{Description: "Filter", Quantity: dec("3"), UnitPrice: &price}},
	})
	require.NoError(t, err)

	resp, err := f.svc.RemoveItem(f.ctx, created.ID, created.Items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.TotalAmount.IsZero())

	_, err = f.svc.RemoveItem(f.ctx, created.ID, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, f.svc.Delete(f.ctx, created.ID))
	_, err = f.svc.GetByID(f.ctx, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestWorkOrderService_TenantIsolation(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.Create(f.ctx, CreateWorkOrderCommand{
		CustomerID: f.customer.ID,
		LocationID: f.location.ID,
	})
	require.NoError(t, err)

	other := shared.WithTenantID(context.Background(), uuid.New())
	_, err = f.svc.GetByID(other, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	result, err := f.svc.List(other, WorkOrderListQuery{})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Empty(t, result.Data.Items)
	assert.Zero(t, result.Data.TotalCount)
}

func TestWorkOrderListQuery_ToFilter(t *testing.T) {
	customerID := uuid.New()
	status := "completed"
	f := WorkOrderListQuery{Page: 2, CustomerID: &customerID, Status: &status}.ToFilter()

	assert.Equal(t, 2, f.Page)
	assert.Equal(t, customerID, f.Filters[workorder.FilterCustomerID])
	assert.Equal(t, workorder.StatusCompleted, f.Filters[workorder.FilterStatus])
	assert.NotContains(t, f.Filters, workorder.FilterLocationID)
}

func TestToWorkOrderListItem_UsesStoredTotal(t *testing.T) {
	wo, err := workorder.NewWorkOrder(uuid.New(), "WO-1", uuid.New(), uuid.New(), "")
	require.NoError(t, err)
	wo.TotalAmount = dec("432.10")

	item := ToWorkOrderListItem(wo)
	assert.True(t, item.TotalAmount.Equal(dec("432.10")))
}

var _ billing.PaymentRepository = paymentSums{}
