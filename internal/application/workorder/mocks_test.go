package workorder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/fieldops/backend/internal/domain/billing"
	"github.com/fieldops/backend/internal/domain/catalog"
	"github.com/fieldops/backend/internal/domain/customer"
	"github.com/fieldops/backend/internal/domain/scheduling"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/domain/workorder"
)

// memRepo is a map-backed tenant repository honoring soft deletes
type memRepo[T any] struct {
	items    map[uuid.UUID]*T
	tenantOf func(*T) uuid.UUID
	deleted  func(*T) bool
	idOf     func(*T) uuid.UUID
	saves    int
}

func (r *memRepo[T]) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*T, error) {
	item, ok := r.items[id]
	if !ok || r.tenantOf(item) != tenantID || r.deleted(item) {
		return nil, shared.ErrNotFound
	}
	return item, nil
}

func (r *memRepo[T]) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]T, error) {
	var out []T
	for _, item := range r.items {
		if r.tenantOf(item) == tenantID && !r.deleted(item) {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *memRepo[T]) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	items, _ := r.FindAllForTenant(ctx, tenantID, filter)
	return int64(len(items)), nil
}

func (r *memRepo[T]) Save(_ context.Context, item *T) error {
	r.items[r.idOf(item)] = item
	r.saves++
	return nil
}

type memWorkOrderRepo struct {
	*memRepo[workorder.WorkOrder]
	seq int
}

func newMemWorkOrderRepo() *memWorkOrderRepo {
	return &memWorkOrderRepo{memRepo: &memRepo[workorder.WorkOrder]{
		items:    map[uuid.UUID]*workorder.WorkOrder{},
		tenantOf: func(w *workorder.WorkOrder) uuid.UUID { return w.TenantID },
		deleted:  func(w *workorder.WorkOrder) bool { return w.IsDeleted },
		idOf:     func(w *workorder.WorkOrder) uuid.UUID { return w.ID },
	}}
}

func (r *memWorkOrderRepo) NextNumber(_ context.Context, _ uuid.UUID, day time.Time) (string, error) {
	r.seq++
	return fmt.Sprintf("WO-%s-%04d", day.Format("20060102"), r.seq), nil
}

type memAttachmentRepo struct {
	*memRepo[workorder.Attachment]
}

func newMemAttachmentRepo() *memAttachmentRepo {
	return &memAttachmentRepo{&memRepo[workorder.Attachment]{
		items:    map[uuid.UUID]*workorder.Attachment{},
		tenantOf: func(a *workorder.Attachment) uuid.UUID { return a.TenantID },
		deleted:  func(a *workorder.Attachment) bool { return a.IsDeleted },
		idOf:     func(a *workorder.Attachment) uuid.UUID { return a.ID },
	}}
}

func newMemCustomers(items ...*customer.Customer) customerRepo {
	r := &memRepo[customer.Customer]{
		items:    map[uuid.UUID]*customer.Customer{},
		tenantOf: func(c *customer.Customer) uuid.UUID { return c.TenantID },
		deleted:  func(c *customer.Customer) bool { return c.IsDeleted },
		idOf:     func(c *customer.Customer) uuid.UUID { return c.ID },
	}
	for _, c := range items {
		r.items[c.ID] = c
	}
	return customerRepo{r}
}

type customerRepo struct{ *memRepo[customer.Customer] }

func (customerRepo) ExistsByEmail(context.Context, uuid.UUID, string, *uuid.UUID) (bool, error) {
	return false, nil
}

type locationRepo struct{ *memRepo[customer.Location] }

func (locationRepo) SaveAsPrimary(context.Context, *customer.Location) error { return nil }

func newMemLocations(items ...*customer.Location) locationRepo {
	r := &memRepo[customer.Location]{
		items:    map[uuid.UUID]*customer.Location{},
		tenantOf: func(l *customer.Location) uuid.UUID { return l.TenantID },
		deleted:  func(l *customer.Location) bool { return l.IsDeleted },
		idOf:     func(l *customer.Location) uuid.UUID { return l.ID },
	}
	for _, l := range items {
		r.items[l.ID] = l
	}
	return locationRepo{r}
}

type serviceRepo struct{ *memRepo[catalog.Service] }

func (serviceRepo) ExistsByCode(context.Context, uuid.UUID, string) (bool, error) {
	return false, nil
}

func newMemServices(items ...*catalog.Service) serviceRepo {
	r := &memRepo[catalog.Service]{
		items:    map[uuid.UUID]*catalog.Service{},
		tenantOf: func(s *catalog.Service) uuid.UUID { return s.TenantID },
		deleted:  func(s *catalog.Service) bool { return s.IsDeleted },
		idOf:     func(s *catalog.Service) uuid.UUID { return s.ID },
	}
	for _, s := range items {
		r.items[s.ID] = s
	}
	return serviceRepo{r}
}

func newMemAppointments(items ...*scheduling.Appointment) *memRepo[scheduling.Appointment] {
	r := &memRepo[scheduling.Appointment]{
		items:    map[uuid.UUID]*scheduling.Appointment{},
		tenantOf: func(a *scheduling.Appointment) uuid.UUID { return a.TenantID },
		deleted:  func(a *scheduling.Appointment) bool { return a.IsDeleted },
		idOf:     func(a *scheduling.Appointment) uuid.UUID { return a.ID },
	}
	for _, a := range items {
		r.items[a.ID] = a
	}
	return r
}

// paymentSums reports a fixed settled amount per work order
type paymentSums struct {
	*memRepo[billing.Payment]
	paid map[uuid.UUID]decimal.Decimal
}

func (p paymentSums) SumSettledForWorkOrder(_ context.Context, _ uuid.UUID, workOrderID uuid.UUID) (decimal.Decimal, error) {
	return p.paid[workOrderID], nil
}

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) PresignUpload(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) PresignDownload(ctx context.Context, key, fileName string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, fileName, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}
