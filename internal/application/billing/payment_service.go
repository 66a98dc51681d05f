// Package billing implements payment recording and refunds.
package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fieldops/backend/internal/application/common"
	"github.com/fieldops/backend/internal/application/query"
	"github.com/fieldops/backend/internal/domain/billing"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/domain/workorder"
	"github.com/fieldops/backend/internal/infrastructure/logger"
	"github.com/fieldops/backend/internal/infrastructure/telemetry"
)

// ErrRequestInProgress is returned when a retry arrives while the first
// request with the same Idempotency-Key is still running
var ErrRequestInProgress = shared.NewDomainError("IDEMPOTENCY_IN_PROGRESS", "A request with this Idempotency-Key is still being processed")

// PaymentService records and refunds payments
type PaymentService struct {
	paymentRepo    billing.PaymentRepository
	workOrderRepo  workorder.WorkOrderRepository
	idempotency    shared.IdempotencyStore
	idemConfig     shared.IdempotencyConfig
	eventPublisher shared.EventPublisher
	limits         query.Limits
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo billing.PaymentRepository, workOrderRepo workorder.WorkOrderRepository) *PaymentService {
	return &PaymentService{
		paymentRepo:   paymentRepo,
		workOrderRepo: workOrderRepo,
		idemConfig:    shared.DefaultIdempotencyConfig(),
		limits:        query.DefaultLimits(),
	}
}

// SetIdempotencyStore enables Idempotency-Key handling for Record
func (s *PaymentService) SetIdempotencyStore(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) {
	s.idempotency = store
	s.idemConfig = cfg
}

// SetEventPublisher sets the publisher of PaymentReceived events
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetLimits overrides the pagination policy
func (s *PaymentService) SetLimits(limits query.Limits) {
	s.limits = limits
}

// Record stores a payment against an in-progress or completed work order.
// A non-empty idempotencyKey makes retries return the first payment.
func (s *PaymentService) Record(ctx context.Context, cmd RecordPaymentCommand, idempotencyKey string) (*PaymentResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "record",
		"work_order_id", cmd.WorkOrderID.String(),
		"method", cmd.Method,
	)
	defer span.End()

	if err := common.Validate(cmd); err != nil {
		return nil, err
	}
	tenantID, err := query.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}

	key := s.scopedKey(tenantID, idempotencyKey)
	if key != "" {
		claimed, existing, err := s.idempotency.Claim(ctx, key, s.idemConfig.ClaimTTL())
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		if !claimed {
			return s.replay(ctx, tenantID, existing)
		}
	}

	result, err := s.record(ctx, tenantID, cmd)
	if err != nil {
		telemetry.RecordError(span, err)
		if key != "" {
			if releaseErr := s.idempotency.Release(ctx, key); releaseErr != nil {
				logger.L(ctx).Warn("Failed to release idempotency key", zap.Error(releaseErr))
			}
		}
		return nil, err
	}

	if key != "" {
		if err := s.idempotency.Complete(ctx, key, result.Payment.ID.String(), s.idemConfig.TTL); err != nil {
			logger.L(ctx).Warn("Failed to complete idempotency key",
				zap.String("payment_id", result.Payment.ID.String()),
				zap.Error(err),
			)
		}
	}
	return result, nil
}

func (s *PaymentService) record(ctx context.Context, tenantID uuid.UUID, cmd RecordPaymentCommand) (*PaymentResult, error) {
	wo, err := s.workOrderRepo.FindByIDForTenant(ctx, tenantID, cmd.WorkOrderID)
	if err != nil {
		return nil, common.NotFound(err, "Work order")
	}
	if !wo.IsBillable() {
		return nil, shared.NewInvalidStateError("Payments can only be recorded for in-progress or completed work orders")
	}

	paidAt := time.Now()
	if cmd.PaidAt != nil {
		paidAt = *cmd.PaidAt
	}
	payment, err := billing.RecordPayment(tenantID, wo.ID, cmd.Amount, billing.PaymentMethod(cmd.Method), cmd.Reference, paidAt)
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	common.PublishEvents(ctx, s.eventPublisher, payment)

	logger.L(ctx).Info("Payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("work_order_id", wo.ID.String()),
		zap.String("amount", payment.Amount.StringFixed(2)),
	)
	return s.result(ctx, wo, payment)
}

func (s *PaymentService) replay(ctx context.Context, tenantID uuid.UUID, existing string) (*PaymentResult, error) {
	if existing == "" {
		return nil, ErrRequestInProgress
	}
	paymentID, err := uuid.Parse(existing)
	if err != nil {
		return nil, err
	}
	payment, err := s.paymentRepo.FindByIDForTenant(ctx, tenantID, paymentID)
	if err != nil {
		return nil, common.NotFound(err, "Payment")
	}
	wo, err := s.workOrderRepo.FindByIDForTenant(ctx, tenantID, payment.WorkOrderID)
	if err != nil {
		return nil, common.NotFound(err, "Work order")
	}
	result, err := s.result(ctx, wo, payment)
	if err != nil {
		return nil, err
	}
	result.Replayed = true
	logger.L(ctx).Info("Payment replayed for idempotency key", zap.String("payment_id", paymentID.String()))
	return result, nil
}

// Refund reverses a completed payment
func (s *PaymentService) Refund(ctx context.Context, id uuid.UUID, cmd RefundPaymentCommand) (*PaymentResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "refund", "payment_id", id.String())
	defer span.End()

	if err := common.Validate(cmd); err != nil {
		return nil, err
	}
	payment, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := payment.Refund(cmd.Reason); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	wo, err := s.workOrderRepo.FindByIDForTenant(ctx, payment.TenantID, payment.WorkOrderID)
	if err != nil {
		return nil, common.NotFound(err, "Work order")
	}

	logger.L(ctx).Info("Payment refunded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", payment.Amount.StringFixed(2)),
	)
	return s.result(ctx, wo, payment)
}

// GetByID retrieves a payment of the caller's tenant
func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment)
	return &response, nil
}

// List returns one page of the caller's payments
func (s *PaymentService) List(ctx context.Context, q PaymentListQuery) (query.Result[shared.Paginated[PaymentResponse]], error) {
	return query.ListPaged[billing.Payment, PaymentResponse](ctx, s.paymentRepo, q.ToFilter(), s.limits, ToPaymentResponse)
}

func (s *PaymentService) result(ctx context.Context, wo *workorder.WorkOrder, payment *billing.Payment) (*PaymentResult, error) {
	paid, err := s.paymentRepo.SumSettledForWorkOrder(ctx, wo.TenantID, wo.ID)
	if err != nil {
		return nil, err
	}
	return &PaymentResult{
		Payment:        ToPaymentResponse(payment),
		WorkOrderTotal: wo.Total(),
		PaidAmount:     paid,
		Balance:        wo.Balance(paid),
	}, nil
}

func (s *PaymentService) scopedKey(tenantID uuid.UUID, key string) string {
	if key == "" || s.idempotency == nil || !s.idemConfig.Enabled {
		return ""
	}
	return "payment:" + tenantID.String() + ":" + key
}

func (s *PaymentService) load(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	tenantID, err := query.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	payment, err := s.paymentRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, common.NotFound(err, "Payment")
	}
	return payment, nil
}
