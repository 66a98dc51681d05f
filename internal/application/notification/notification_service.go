// Package notification implements the notification inbox and the handlers
// that turn domain events into notifications.
package notification

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fieldops/backend/internal/application/common"
	"github.com/fieldops/backend/internal/application/query"
	"github.com/fieldops/backend/internal/domain/notification"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/infrastructure/logger"
)

// NotificationService manages notifications of the caller's tenant
type NotificationService struct {
	repo   notification.NotificationRepository
	limits query.Limits
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo notification.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo, limits: query.DefaultLimits()}
}

// SetLimits overrides the pagination policy
func (s *NotificationService) SetLimits(limits query.Limits) {
	s.limits = limits
}

// Create stores a notification; the channel defaults to in_app
func (s *NotificationService) Create(ctx context.Context, cmd CreateNotificationCommand) (*NotificationResponse, error) {
	if err := common.Validate(cmd); err != nil {
		return nil, err
	}
	tenantID, err := query.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	channel := notification.Channel(cmd.Channel)
	if channel == "" {
		channel = notification.ChannelInApp
	}
	n, err := notification.NewNotification(tenantID, cmd.Recipient, channel, cmd.Subject, cmd.Body)
	if err != nil {
		return nil, err
	}
	if cmd.ReferenceID != nil {
		n.About(cmd.ReferenceType, *cmd.ReferenceID)
	}
	if err := s.repo.Save(ctx, n); err != nil {
		return nil, err
	}
	logger.L(ctx).Debug("Notification created",
		zap.String("notification_id", n.ID.String()),
		zap.String("channel", string(n.Channel)),
	)
	response := ToNotificationResponse(n)
	return &response, nil
}

// GetByID retrieves a notification
func (s *NotificationService) GetByID(ctx context.Context, id uuid.UUID) (*NotificationResponse, error) {
	n, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToNotificationResponse(n)
	return &response, nil
}

// List returns one page of notifications
func (s *NotificationService) List(ctx context.Context, q NotificationListQuery) (query.Result[shared.Paginated[NotificationResponse]], error) {
	return query.ListPaged[notification.Notification, NotificationResponse](ctx, s.repo, q.ToFilter(), s.limits, ToNotificationResponse)
}

// MarkRead marks one notification as read
func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) (*NotificationResponse, error) {
	n, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !n.IsRead {
		n.MarkRead()
		if err := s.repo.Save(ctx, n); err != nil {
			return nil, err
		}
	}
	response := ToNotificationResponse(n)
	return &response, nil
}

// MarkAllRead marks every unread notification of recipient as read
func (s *NotificationService) MarkAllRead(ctx context.Context, recipient string) (*MarkAllReadResponse, error) {
	tenantID, err := query.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	recipient, err = requireRecipient(recipient)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.MarkAllRead(ctx, tenantID, recipient)
	if err != nil {
		return nil, err
	}
	return &MarkAllReadResponse{Updated: updated}, nil
}

// UnreadCount counts the unread notifications of recipient
func (s *NotificationService) UnreadCount(ctx context.Context, recipient string) (*UnreadCountResponse, error) {
	tenantID, err := query.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	recipient, err = requireRecipient(recipient)
	if err != nil {
		return nil, err
	}
	var filter shared.Filter
	filter.Set(notification.FilterRecipient, recipient)
	filter.Set(notification.FilterIsRead, false)
	count, err := s.repo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	return &UnreadCountResponse{Recipient: recipient, Unread: count}, nil
}

func (s *NotificationService) load(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	tenantID, err := query.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	n, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, common.NotFound(err, "Notification")
	}
	return n, nil
}

func requireRecipient(recipient string) (string, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return "", shared.ValidationErrors{{Field: "recipient", Message: "is required"}}
	}
	return recipient, nil
}
