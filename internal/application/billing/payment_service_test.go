package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fieldops/backend/internal/domain/billing"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/domain/workorder"
	"github.com/fieldops/backend/internal/infrastructure/cache"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Payment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.Payment, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, p *billing.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaymentRepository) SumSettledForWorkOrder(ctx context.Context, tenantID, workOrderID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, workOrderID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type workOrderStub struct {
	items map[uuid.UUID]*workorder.WorkOrder
}

func (s workOrderStub) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*workorder.WorkOrder, error) {
	if w, ok := s.items[id]; ok && w.TenantID == tenantID {
		return w, nil
	}
	return nil, shared.ErrNotFound
}

func (workOrderStub) FindAllForTenant(context.Context, uuid.UUID, shared.Filter) ([]workorder.WorkOrder, error) {
	return nil, nil
}

func (workOrderStub) CountForTenant(context.Context, uuid.UUID, shared.Filter) (int64, error) {
	return 0, nil
}

func (workOrderStub) Save(context.Context, *workorder.WorkOrder) error { return nil }

func (workOrderStub) NextNumber(context.Context, uuid.UUID, time.Time) (string, error) {
	return "WO-TEST", nil
}

type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

type fixture struct {
	ctx       context.Context
	tenantID  uuid.UUID
	workOrder *workorder.WorkOrder
	repo      *MockPaymentRepository
	pub       *recordingPublisher
	svc       *PaymentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tenantID := uuid.New()
	wo, err := workorder.NewWorkOrder(tenantID, "WO-20260302-0001", uuid.New(), uuid.New(), "")
	require.NoError(t, err)
	_, err = wo.AddItem("Repair", decimal.NewFromInt(1), decimal.NewFromInt(200), decimal.NewFromInt(10), nil)
	require.NoError(t, err)
	require.NoError(t, wo.Start())

	f := &fixture{
		ctx:       shared.WithTenantID(context.Background(), tenantID),
		tenantID:  tenantID,
		workOrder: wo,
		repo:      new(MockPaymentRepository),
		pub:       &recordingPublisher{},
	}
	f.svc = NewPaymentService(f.repo, workOrderStub{items: map[uuid.UUID]*workorder.WorkOrder{wo.ID: wo}})
	f.svc.SetEventPublisher(f.pub)
	return f
}

func (f *fixture) command(amount string) RecordPaymentCommand {
	return RecordPaymentCommand{
		WorkOrderID: f.workOrder.ID,
		Amount:      decimal.RequireFromString(amount),
		Method:      "card",
	}
}

func TestPaymentService_Record(t *testing.T) {
	f := newFixture(t)
	f.repo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Payment")).Return(nil)
	f.repo.On("SumSettledForWorkOrder", mock.Anything, f.tenantID, f.workOrder.ID).
		Return(decimal.RequireFromString("80"), nil)

	result, err := f.svc.Record(f.ctx, f.command("80"), "")
	require.NoError(t, err)

	assert.Equal(t, "completed", result.Payment.Status)
	assert.True(t, result.WorkOrderTotal.Equal(decimal.NewFromInt(220)))
	assert.True(t, result.Balance.Equal(decimal.NewFromInt(140)))
	assert.False(t, result.Replayed)
	require.Len(t, f.pub.events, 1)
	assert.Equal(t, billing.EventTypePaymentReceived, f.pub.events[0].EventType())
}

func TestPaymentService_Record_Rejections(t *testing.T) {
	t.Run("non-positive amount", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Record(f.ctx, f.command("0"), "")
		var verrs shared.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "amount", verrs[0].Field)
		f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("open work order is not billable", func(t *testing.T) {
		f := newFixture(t)
		f.workOrder.Status = workorder.StatusOpen
		_, err := f.svc.Record(f.ctx, f.command("10"), "")
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("other tenant's work order", func(t *testing.T) {
		f := newFixture(t)
		ctx := shared.WithTenantID(context.Background(), uuid.New())
		_, err := f.svc.Record(ctx, f.command("10"), "")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("missing tenant", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Record(context.Background(), f.command("10"), "")
		assert.ErrorIs(t, err, shared.ErrTenantContextMissing)
	})
}

func TestPaymentService_Record_Idempotent(t *testing.T) {
	f := newFixture(t)
	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })
	f.svc.SetIdempotencyStore(store, shared.DefaultIdempotencyConfig())

	var saved *billing.Payment
	f.repo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Payment")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*billing.Payment) }).
		Return(nil).Once()
	f.repo.On("SumSettledForWorkOrder", mock.Anything, f.tenantID, f.workOrder.ID).
		Return(decimal.RequireFromString("50"), nil)

	first, err := f.svc.Record(f.ctx, f.command("50"), "key-1")
	require.NoError(t, err)

	f.repo.On("FindByIDForTenant", mock.Anything, f.tenantID, first.Payment.ID).Return(saved, nil)
	second, err := f.svc.Record(f.ctx, f.command("50"), "key-1")
	require.NoError(t, err)

	assert.True(t, second.Replayed)
	assert.Equal(t, first.Payment.ID, second.Payment.ID)
	f.repo.AssertNumberOfCalls(t, "Save", 1)
	assert.Len(t, f.pub.events, 1)
}

func TestPaymentService_Record_ReleasesKeyOnFailure(t *testing.T) {
	f := newFixture(t)
	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })
	f.svc.SetIdempotencyStore(store, shared.DefaultIdempotencyConfig())

	f.repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
	_, err := f.svc.Record(f.ctx, f.command("50"), "key-2")
	require.Error(t, err)

	f.repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	f.repo.On("SumSettledForWorkOrder", mock.Anything, f.tenantID, f.workOrder.ID).Return(decimal.RequireFromString("50"), nil)
	result, err := f.svc.Record(f.ctx, f.command("50"), "key-2")
	require.NoError(t, err)
	assert.False(t, result.Replayed)
}

func TestPaymentService_Record_InFlightKey(t *testing.T) {
	f := newFixture(t)
	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })
	f.svc.SetIdempotencyStore(store, shared.DefaultIdempotencyConfig())

	claimed, _, err := store.Claim(context.Background(), "payment:"+f.tenantID.String()+":key-3", shared.DefaultIdempotencyConfig().TTL)
	require.NoError(t, err)
	require.True(t, claimed)

	_, err = f.svc.Record(f.ctx, f.command("50"), "key-3")
	assert.ErrorIs(t, err, ErrRequestInProgress)
}

func TestPaymentService_Refund(t *testing.T) {
	f := newFixture(t)
	payment, err := billing.RecordPayment(f.tenantID, f.workOrder.ID, decimal.NewFromInt(220), billing.PaymentMethodCash, "", time.Time{})
	require.NoError(t, err)

	f.repo.On("FindByIDForTenant", mock.Anything, f.tenantID, payment.ID).Return(payment, nil)
	f.repo.On("Save", mock.Anything, payment).Return(nil)
	f.repo.On("SumSettledForWorkOrder", mock.Anything, f.tenantID, f.workOrder.ID).Return(decimal.Zero, nil)

	result, err := f.svc.Refund(f.ctx, payment.ID, RefundPaymentCommand{Reason: "duplicate"})
	require.NoError(t, err)
	assert.Equal(t, "refunded", result.Payment.Status)
	assert.Equal(t, "duplicate", result.Payment.RefundReason)
	assert.True(t, result.Balance.Equal(decimal.NewFromInt(220)))

	_, err = f.svc.Refund(f.ctx, payment.ID, RefundPaymentCommand{})
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestPaymentListQuery_ToFilter(t *testing.T) {
	method, status := "cash", "refunded"
	f := PaymentListQuery{Method: &method, Status: &status}.ToFilter()
	assert.Equal(t, billing.PaymentMethodCash, f.Filters[billing.FilterMethod])
	assert.Equal(t, billing.PaymentStatusRefunded, f.Filters[billing.FilterStatus])
	assert.NotContains(t, f.Filters, billing.FilterWorkOrderID)

	f = PaymentListQuery{}.ToFilter()
	assert.NotContains(t, f.Filters, billing.FilterMethod)
	assert.NotContains(t, f.Filters, billing.FilterStatus)
}
