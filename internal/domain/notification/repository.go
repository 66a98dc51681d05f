package notification

import (
	"context"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Filter keys understood by NotificationRepository
const (
	FilterIsRead    = "is_read"
	FilterChannel   = "channel"
	FilterRecipient = "recipient"
)

// NotificationRepository defines persistence for notifications
type NotificationRepository interface {
	shared.TenantRepository[Notification]

	// MarkAllRead marks every unread notification of the recipient as read and
	// returns the number of rows changed
	MarkAllRead(ctx context.Context, tenantID uuid.UUID, recipient string) (int64, error)
}
