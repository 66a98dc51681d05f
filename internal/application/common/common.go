// Package common holds the plumbing every use-case service shares: command
// validation, not-found translation and after-save event publishing.
package common

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/infrastructure/logger"
)

// Command is implemented by every write request
type Command interface {
	Validate() []shared.FieldError
}

// Validate runs the command's checks and returns them as a ValidationErrors error
func Validate(cmd Command) error {
	return shared.AsValidationError(cmd.Validate())
}

// NotFound rewrites a repository miss into a not-found error naming the resource.
// Other errors pass through unchanged.
func NotFound(err error, resource string) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewNotFoundError(resource)
	}
	return err
}

// EventSource is an aggregate that buffers domain events
type EventSource interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}

// PublishEvents hands the aggregate's buffered events to publisher and clears
// them. It runs after the aggregate was saved; delivery failures are logged
// and never fail the use case.
func PublishEvents(ctx context.Context, publisher shared.EventPublisher, source EventSource) {
	events := source.GetDomainEvents()
	source.ClearDomainEvents()
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.L(ctx).Warn("Failed to publish domain events",
			zap.Int("count", len(events)),
			zap.Error(err),
		)
	}
}
