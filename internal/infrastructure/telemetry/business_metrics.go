package telemetry

import (
	"context"
	"fmt"

	"github.com/fieldops/backend/internal/domain/billing"
	"github.com/fieldops/backend/internal/domain/scheduling"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/domain/workorder"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	AttrTenantID      = attribute.Key("tenant_id")
	AttrPaymentMethod = attribute.Key("payment_method")
	AttrEventType     = attribute.Key("event_type")
)

// BusinessMetrics counts domain activity. It subscribes to the event bus so
// use cases stay unaware of metrics.
type BusinessMetrics struct {
	appointments       metric.Int64Counter
	cancellations      metric.Int64Counter
	workOrdersComplete metric.Int64Counter
	workOrderValue     metric.Float64Histogram
	payments           metric.Int64Counter
	paymentAmount      metric.Float64Histogram
}

func NewBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	var (
		bm  BusinessMetrics
		err error
	)
	if bm.appointments, err = meter.Int64Counter("fieldops.appointments.scheduled",
		metric.WithDescription("Appointments scheduled or rescheduled")); err != nil {
		return nil, wrapMetricErr("appointments.scheduled", err)
	}
	if bm.cancellations, err = meter.Int64Counter("fieldops.appointments.cancelled",
		metric.WithDescription("Appointments cancelled")); err != nil {
		return nil, wrapMetricErr("appointments.cancelled", err)
	}
	if bm.workOrdersComplete, err = meter.Int64Counter("fieldops.work_orders.completed",
		metric.WithDescription("Work orders completed")); err != nil {
		return nil, wrapMetricErr("work_orders.completed", err)
	}
	if bm.workOrderValue, err = meter.Float64Histogram("fieldops.work_orders.total",
		metric.WithDescription("Billable total of completed work orders"),
		metric.WithExplicitBucketBoundaries(50, 100, 250, 500, 1000, 2500, 5000, 10000)); err != nil {
		return nil, wrapMetricErr("work_orders.total", err)
	}
	if bm.payments, err = meter.Int64Counter("fieldops.payments.received",
		metric.WithDescription("Payments recorded")); err != nil {
		return nil, wrapMetricErr("payments.received", err)
	}
	if bm.paymentAmount, err = meter.Float64Histogram("fieldops.payments.amount",
		metric.WithDescription("Recorded payment amounts"),
		metric.WithExplicitBucketBoundaries(10, 50, 100, 250, 500, 1000, 5000)); err != nil {
		return nil, wrapMetricErr("payments.amount", err)
	}
	return &bm, nil
}

func wrapMetricErr(name string, err error) error {
	return fmt.Errorf("failed to create metric %s: %w", name, err)
}

func (bm *BusinessMetrics) EventTypes() []string {
	return []string{
		scheduling.EventTypeAppointmentScheduled,
		scheduling.EventTypeAppointmentCancelled,
		workorder.EventTypeWorkOrderCompleted,
		billing.EventTypePaymentReceived,
	}
}

// Handle records one domain event. Money is exported as float64; the
// histograms are for dashboards, not accounting.
func (bm *BusinessMetrics) Handle(ctx context.Context, ev shared.DomainEvent) error {
	tenant := metric.WithAttributes(AttrTenantID.String(ev.TenantID().String()))

	switch e := ev.(type) {
	case *scheduling.AppointmentScheduledEvent:
		bm.appointments.Add(ctx, 1, tenant)
	case *scheduling.AppointmentCancelledEvent:
		bm.cancellations.Add(ctx, 1, tenant)
	case *workorder.WorkOrderCompletedEvent:
		bm.workOrdersComplete.Add(ctx, 1, tenant)
		bm.workOrderValue.Record(ctx, e.TotalAmount.InexactFloat64(), tenant)
	case *billing.PaymentReceivedEvent:
		attrs := metric.WithAttributes(
			AttrTenantID.String(ev.TenantID().String()),
			AttrPaymentMethod.String(string(e.Method)),
		)
		bm.payments.Add(ctx, 1, attrs)
		bm.paymentAmount.Record(ctx, e.Amount.InexactFloat64(), attrs)
	}
	return nil
}

var _ shared.EventHandler = (*BusinessMetrics)(nil)
