package notification

import (
	"strings"
	"time"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Channel is the delivery medium of a notification
type Channel string

const (
	ChannelInApp Channel = "in_app"
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// IsValid checks if the channel is a known value
func (c Channel) IsValid() bool {
	switch c {
	case ChannelInApp, ChannelEmail, ChannelSMS:
		return true
	}
	return false
}

// Notification is a message to a recipient about something that happened
// in the tenant (an appointment booked, a payment received).
type Notification struct {
	shared.TenantAggregateRoot
	Recipient     string
	Channel       Channel
	Subject       string
	Body          string
	ReferenceType string
	ReferenceID   *uuid.UUID
	IsRead        bool
	ReadAt        *time.Time
}

// NewNotification creates an unread notification
func NewNotification(tenantID uuid.UUID, recipient string, channel Channel, subject, body string) (*Notification, error) {
	recipient = strings.TrimSpace(recipient)
	subject = strings.TrimSpace(subject)
	if recipient == "" {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Recipient cannot be empty")
	}
	if !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Notification channel is not supported")
	}
	if subject == "" {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Subject cannot be empty")
	}
	if len([]rune(subject)) > 200 {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Subject cannot exceed 200 characters")
	}
	return &Notification{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Recipient:           recipient,
		Channel:             channel,
		Subject:             subject,
		Body:                body,
	}, nil
}

// About links the notification to the record it describes
func (n *Notification) About(referenceType string, referenceID uuid.UUID) *Notification {
	n.ReferenceType = referenceType
	n.ReferenceID = &referenceID
	return n
}

// MarkRead records that the recipient has seen the notification.
// Marking an already read notification is a no-op.
func (n *Notification) MarkRead() {
	if n.IsRead {
		return
	}
	now := time.Now()
	n.IsRead = true
	n.ReadAt = &now
	n.Touch()
	n.IncrementVersion()
}
