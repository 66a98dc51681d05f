package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/fieldops/backend/internal/domain/notification"
	"github.com/fieldops/backend/internal/domain/shared"
)

// CreateNotificationCommand creates a notification through the API
type CreateNotificationCommand struct {
	Recipient     string     `json:"recipient" binding:"required,max=255"`
	Channel       string     `json:"channel" binding:"omitempty,oneof=in_app email sms"`
	Subject       string     `json:"subject" binding:"required,max=200"`
	Body          string     `json:"body" binding:"max=4000"`
	ReferenceType string     `json:"referenceType" binding:"max=50"`
	ReferenceID   *uuid.UUID `json:"referenceId"`
}

// Validate checks the command fields
func (c CreateNotificationCommand) Validate() []shared.FieldError {
	var v shared.Validator
	v.Required(c.Recipient, "recipient")
	v.MaxLength(c.Recipient, 255, "recipient")
	v.Check(c.Channel == "" || notification.Channel(c.Channel).IsValid(), "channel", "must be one of in_app, email, sms")
	v.Required(c.Subject, "subject")
	v.MaxLength(c.Subject, 200, "subject")
	v.MaxLength(c.Body, 4000, "body")
	v.MaxLength(c.ReferenceType, 50, "referenceType")
	v.Check(c.ReferenceID == nil || c.ReferenceType != "", "referenceType", "is required with referenceId")
	return v.Errors()
}

// NotificationListQuery holds the optional criteria of the notification list.
// IsRead is tri-state: absent lists both.
type NotificationListQuery struct {
	Page      int     `form:"page"`
	PageSize  int     `form:"page_size"`
	OrderBy   string  `form:"order_by"`
	OrderDir  string  `form:"order_dir"`
	Search    string  `form:"search"`
	Recipient *string `form:"recipient"`
	Channel   *string `form:"channel" binding:"omitempty,oneof=in_app email sms"`
	IsRead    *bool   `form:"is_read"`
}

// ToFilter converts the query into repository criteria
func (q NotificationListQuery) ToFilter() shared.Filter {
	f := shared.Filter{
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
		Search:   q.Search,
	}
	if q.Recipient != nil {
		f.Set(notification.FilterRecipient, *q.Recipient)
	}
	if q.Channel != nil {
		f.Set(notification.FilterChannel, notification.Channel(*q.Channel))
	}
	if q.IsRead != nil {
		f.Set(notification.FilterIsRead, *q.IsRead)
	}
	return f
}

// NotificationResponse is the public projection of a notification
type NotificationResponse struct {
	ID            uuid.UUID  `json:"id"`
	Recipient     string     `json:"recipient"`
	Channel       string     `json:"channel"`
	Subject       string     `json:"subject"`
	Body          string     `json:"body"`
	ReferenceType string     `json:"referenceType,omitempty"`
	ReferenceID   *uuid.UUID `json:"referenceId,omitempty"`
	IsRead        bool       `json:"isRead"`
	ReadAt        *time.Time `json:"readAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ToNotificationResponse projects a notification
func ToNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:            n.ID,
		Recipient:     n.Recipient,
		Channel:       string(n.Channel),
		Subject:       n.Subject,
		Body:          n.Body,
		ReferenceType: n.ReferenceType,
		ReferenceID:   n.ReferenceID,
		IsRead:        n.IsRead,
		ReadAt:        n.ReadAt,
		CreatedAt:     n.CreatedAt,
	}
}

// UnreadCountResponse is returned by the unread-count endpoint
type UnreadCountResponse struct {
	Recipient string `json:"recipient"`
	Unread    int64  `json:"unread"`
}

// MarkAllReadResponse reports how many notifications changed
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
