package handler

import (
	"context"

	billingapp "github.com/fieldops/backend/internal/application/billing"
	catalogapp "github.com/fieldops/backend/internal/application/catalog"
	customerapp "github.com/fieldops/backend/internal/application/customer"
	notificationapp "github.com/fieldops/backend/internal/application/notification"
	"github.com/fieldops/backend/internal/application/query"
	schedulingapp "github.com/fieldops/backend/internal/application/scheduling"
	workorderapp "github.com/fieldops/backend/internal/application/workorder"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockPaymentUseCases struct {
	mock.Mock
}

func (m *MockPaymentUseCases) Record(ctx context.Context, cmd billingapp.RecordPaymentCommand, key string) (*billingapp.PaymentResult, error) {
	args := m.Called(ctx, cmd, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billingapp.PaymentResult), args.Error(1)
}

func (m *MockPaymentUseCases) Refund(ctx context.Context, id uuid.UUID, cmd billingapp.RefundPaymentCommand) (*billingapp.PaymentResult, error) {
	args := m.Called(ctx, id, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billingapp.PaymentResult), args.Error(1)
}

func (m *MockPaymentUseCases) GetByID(ctx context.Context, id uuid.UUID) (*billingapp.PaymentResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billingapp.PaymentResponse), args.Error(1)
}

func (m *MockPaymentUseCases) List(ctx context.Context, q billingapp.PaymentListQuery) (query.Result[shared.Paginated[billingapp.PaymentResponse]], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(query.Result[shared.Paginated[billingapp.PaymentResponse]]), args.Error(1)
}

type MockNotificationUseCases struct {
	mock.Mock
}

func (m *MockNotificationUseCases) Create(ctx context.Context, cmd notificationapp.CreateNotificationCommand) (*notificationapp.NotificationResponse, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notificationapp.NotificationResponse), args.Error(1)
}

func (m *MockNotificationUseCases) GetByID(ctx context.Context, id uuid.UUID) (*notificationapp.NotificationResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notificationapp.NotificationResponse), args.Error(1)
}

func (m *MockNotificationUseCases) List(ctx context.Context, q notificationapp.NotificationListQuery) (query.Result[shared.Paginated[notificationapp.NotificationResponse]], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(query.Result[shared.Paginated[notificationapp.NotificationResponse]]), args.Error(1)
}

func (m *MockNotificationUseCases) MarkRead(ctx context.Context, id uuid.UUID) (*notificationapp.NotificationResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notificationapp.NotificationResponse), args.Error(1)
}

func (m *MockNotificationUseCases) MarkAllRead(ctx context.Context, recipient string) (*notificationapp.MarkAllReadResponse, error) {
	args := m.Called(ctx, recipient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notificationapp.MarkAllReadResponse), args.Error(1)
}

func (m *MockNotificationUseCases) UnreadCount(ctx context.Context, recipient string) (*notificationapp.UnreadCountResponse, error) {
	args := m.Called(ctx, recipient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notificationapp.UnreadCountResponse), args.Error(1)
}

type MockWorkOrderUseCases struct {
	mock.Mock
}

func (m *MockWorkOrderUseCases) response(args mock.Arguments) (*workorderapp.WorkOrderResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workorderapp.WorkOrderResponse), args.Error(1)
}

func (m *MockWorkOrderUseCases) Create(ctx context.Context, cmd workorderapp.CreateWorkOrderCommand) (*workorderapp.WorkOrderResponse, error) {
	return m.response(m.Called(ctx, cmd))
}

func (m *MockWorkOrderUseCases) GetByID(ctx context.Context, id uuid.UUID) (*workorderapp.WorkOrderResponse, error) {
	return m.response(m.Called(ctx, id))
}

func (m *MockWorkOrderUseCases) List(ctx context.Context, q workorderapp.WorkOrderListQuery) (query.Result[shared.Paginated[workorderapp.WorkOrderListItem]], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(query.Result[shared.Paginated[workorderapp.WorkOrderListItem]]), args.Error(1)
}

func (m *MockWorkOrderUseCases) Update(ctx context.Context, id uuid.UUID, cmd workorderapp.UpdateWorkOrderCommand) (*workorderapp.WorkOrderResponse, error) {
	return m.response(m.Called(ctx, id, cmd))
}

func (m *MockWorkOrderUseCases) AddItem(ctx context.Context, id uuid.UUID, cmd workorderapp.AddItemCommand) (*workorderapp.WorkOrderResponse, error) {
	return m.response(m.Called(ctx, id, cmd))
}

func (m *MockWorkOrderUseCases) RemoveItem(ctx context.Context, id, itemID uuid.UUID) (*workorderapp.WorkOrderResponse, error) {
	return m.response(m.Called(ctx, id, itemID))
}

func (m *MockWorkOrderUseCases) Start(ctx context.Context, id uuid.UUID) (*workorderapp.WorkOrderResponse, error) {
	return m.response(m.Called(ctx, id))
}

func (m *MockWorkOrderUseCases) Complete(ctx context.Context, id uuid.UUID) (*workorderapp.WorkOrderResponse, error) {
	return m.response(m.Called(ctx, id))
}

func (m *MockWorkOrderUseCases) Cancel(ctx context.Context, id uuid.UUID) (*workorderapp.WorkOrderResponse, error) {
	return m.response(m.Called(ctx, id))
}

func (m *MockWorkOrderUseCases) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockCustomerUseCases struct {
	mock.Mock
}

func (m *MockCustomerUseCases) response(args mock.Arguments) (*customerapp.CustomerResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customerapp.CustomerResponse), args.Error(1)
}

func (m *MockCustomerUseCases) Create(ctx context.Context, cmd customerapp.CreateCustomerCommand) (*customerapp.CustomerResponse, error) {
	return m.response(m.Called(ctx, cmd))
}

func (m *MockCustomerUseCases) GetByID(ctx context.Context, id uuid.UUID) (*customerapp.CustomerResponse, error) {
	return m.response(m.Called(ctx, id))
}

func (m *MockCustomerUseCases) List(ctx context.Context, q customerapp.CustomerListQuery) (query.Result[shared.Paginated[customerapp.CustomerResponse]], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(query.Result[shared.Paginated[customerapp.CustomerResponse]]), args.Error(1)
}

func (m *MockCustomerUseCases) Update(ctx context.Context, id uuid.UUID, cmd customerapp.UpdateCustomerCommand) (*customerapp.CustomerResponse, error) {
	return m.response(m.Called(ctx, id, cmd))
}

func (m *MockCustomerUseCases) Activate(ctx context.Context, id uuid.UUID) (*customerapp.CustomerResponse, error) {
	return m.response(m.Called(ctx, id))
}

func (m *MockCustomerUseCases) Deactivate(ctx context.Context, id uuid.UUID) (*customerapp.CustomerResponse, error) {
	return m.response(m.Called(ctx, id))
}

func (m *MockCustomerUseCases) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockLocationUseCases struct {
	mock.Mock
}

func (m *MockLocationUseCases) response(args mock.Arguments) (*customerapp.LocationResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customerapp.LocationResponse), args.Error(1)
}

func (m *MockLocationUseCases) Create(ctx context.Context, cmd customerapp.CreateLocationCommand) (*customerapp.LocationResponse, error) {
	return m.response(m.Called(ctx, cmd))
}

func (m *MockLocationUseCases) GetByID(ctx context.Context, id uuid.UUID) (*customerapp.LocationResponse, error) {
	return m.response(m.Called(ctx, id))
}

func (m *MockLocationUseCases) List(ctx context.Context, q customerapp.LocationListQuery) (query.Result[shared.Paginated[customerapp.LocationResponse]], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(query.Result[shared.Paginated[customerapp.LocationResponse]]), args.Error(1)
}

func (m *MockLocationUseCases) Update(ctx context.Context, id uuid.UUID, cmd customerapp.UpdateLocationCommand) (*customerapp.LocationResponse, error) {
	return m.response(m.Called(ctx, id, cmd))
}

func (m *MockLocationUseCases) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockServiceUseCases struct {
	mock.Mock
}

func (m *MockServiceUseCases) response(args mock.Arguments) (*catalogapp.ServiceResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ServiceResponse), args.Error(1)
}

func (m *MockServiceUseCases) Create(ctx context.Context, cmd catalogapp.CreateServiceCommand) (*catalogapp.ServiceResponse, error) {
	return m.response(m.Called(ctx, cmd))
}

func (m *MockServiceUseCases) GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.ServiceResponse, error) {
	return m.response(m.Called(ctx, id))
}

func (m *MockServiceUseCases) List(ctx context.Context, q catalogapp.ServiceListQuery) (query.Result[shared.Paginated[catalogapp.ServiceResponse]], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(query.Result[shared.Paginated[catalogapp.ServiceResponse]]), args.Error(1)
}

func (m *MockServiceUseCases) Update(ctx context.Context, id uuid.UUID, cmd catalogapp.UpdateServiceCommand) (*catalogapp.ServiceResponse, error) {
	return m.response(m.Called(ctx, id, cmd))
}

func (m *MockServiceUseCases) Activate(ctx context.Context, id uuid.UUID) (*catalogapp.ServiceResponse, error) {
	return m.response(m.Called(ctx, id))
}

func (m *MockServiceUseCases) Deactivate(ctx context.Context, id uuid.UUID) (*catalogapp.ServiceResponse, error) {
	return m.response(m.Called(ctx, id))
}

func (m *MockServiceUseCases) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockAppointmentUseCases struct {
	mock.Mock
}

func (m *MockAppointmentUseCases) response(args mock.Arguments) (*schedulingapp.AppointmentResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedulingapp.AppointmentResponse), args.Error(1)
}

func (m *MockAppointmentUseCases) Schedule(ctx context.Context, cmd schedulingapp.ScheduleAppointmentCommand) (*schedulingapp.AppointmentResponse, error) {
	return m.response(m.Called(ctx, cmd))
}

func (m *MockAppointmentUseCases) GetByID(ctx context.Context, id uuid.UUID) (*schedulingapp.AppointmentResponse, error) {
	return m.response(m.Called(ctx, id))
}

func (m *MockAppointmentUseCases) List(ctx context.Context, q schedulingapp.AppointmentListQuery) (query.Result[shared.Paginated[schedulingapp.AppointmentResponse]], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(query.Result[shared.Paginated[schedulingapp.AppointmentResponse]]), args.Error(1)
}

func (m *MockAppointmentUseCases) Update(ctx context.Context, id uuid.UUID, cmd schedulingapp.UpdateAppointmentCommand) (*schedulingapp.AppointmentResponse, error) {
	return m.response(m.Called(ctx, id, cmd))
}

func (m *MockAppointmentUseCases) Reschedule(ctx context.Context, id uuid.UUID, cmd schedulingapp.RescheduleAppointmentCommand) (*schedulingapp.AppointmentResponse, error) {
	return m.response(m.Called(ctx, id, cmd))
}

func (m *MockAppointmentUseCases) Confirm(ctx context.Context, id uuid.UUID) (*schedulingapp.AppointmentResponse, error) {
	return m.response(m.Called(ctx, id))
}

func (m *MockAppointmentUseCases) Start(ctx context.Context, id uuid.UUID) (*schedulingapp.AppointmentResponse, error) {
	return m.response(m.Called(ctx, id))
}

func (m *MockAppointmentUseCases) Complete(ctx context.Context, id uuid.UUID) (*schedulingapp.AppointmentResponse, error) {
	return m.response(m.Called(ctx, id))
}

func (m *MockAppointmentUseCases) Cancel(ctx context.Context, id uuid.UUID, cmd schedulingapp.CancelAppointmentCommand) (*schedulingapp.AppointmentResponse, error) {
	return m.response(m.Called(ctx, id, cmd))
}

func (m *MockAppointmentUseCases) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
