package scheduling

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/fieldops/backend/internal/domain/catalog"
	"github.com/fieldops/backend/internal/domain/customer"
	"github.com/fieldops/backend/internal/domain/scheduling"
	"github.com/fieldops/backend/internal/domain/shared"
)

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*scheduling.Appointment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scheduling.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]scheduling.Appointment, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]scheduling.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) Save(ctx context.Context, a *scheduling.Appointment) error {
	return m.Called(ctx, a).Error(0)
}

// stubRepo serves FindByIDForTenant from a map; the other methods are unused here
type stubRepo[T any] struct {
	items map[uuid.UUID]*T
}

func (r stubRepo[T]) FindByIDForTenant(_ context.Context, _ uuid.UUID, id uuid.UUID) (*T, error) {
	if item, ok := r.items[id]; ok {
		return item, nil
	}
	return nil, shared.ErrNotFound
}

func (r stubRepo[T]) FindAllForTenant(context.Context, uuid.UUID, shared.Filter) ([]T, error) {
	return nil, nil
}

func (r stubRepo[T]) CountForTenant(context.Context, uuid.UUID, shared.Filter) (int64, error) {
	return 0, nil
}

func (r stubRepo[T]) Save(context.Context, *T) error { return nil }

type stubCustomerRepo struct{ stubRepo[customer.Customer] }

func (stubCustomerRepo) ExistsByEmail(context.Context, uuid.UUID, string, *uuid.UUID) (bool, error) {
	return false, nil
}

type stubLocationRepo struct{ stubRepo[customer.Location] }

func (stubLocationRepo) SaveAsPrimary(context.Context, *customer.Location) error { return nil }

type stubServiceRepo struct{ stubRepo[catalog.Service] }

func (stubServiceRepo) ExistsByCode(context.Context, uuid.UUID, string) (bool, error) {
	return false, nil
}

type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}
