package common

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldops/backend/internal/domain/shared"
)

type fakeCommand struct{ name string }

func (c fakeCommand) Validate() []shared.FieldError {
	var v shared.Validator
	v.Required(c.name, "name")
	return v.Errors()
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(fakeCommand{name: "ok"}))

	err := Validate(fakeCommand{})
	var verrs shared.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "name: is required", verrs.Error())
}

func TestNotFound(t *testing.T) {
	err := NotFound(shared.ErrNotFound, "Customer")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, "Customer not found", domainErr.Message)

	other := errors.New("connection reset")
	assert.Same(t, other, NotFound(other, "Customer"))
	assert.NoError(t, NotFound(nil, "Customer"))
}

type recordingPublisher struct {
	events []shared.DomainEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return p.err
}

type fakeAggregate struct {
	shared.BaseAggregateRoot
}

func TestPublishEvents(t *testing.T) {
	agg := &fakeAggregate{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	ev := shared.NewBaseDomainEvent("Something", "Fake", uuid.New(), uuid.New())
	agg.AddDomainEvent(&ev)

	pub := &recordingPublisher{err: errors.New("handler down")}
	PublishEvents(context.Background(), pub, agg)

	assert.Len(t, pub.events, 1)
	assert.Empty(t, agg.GetDomainEvents())

	// nil publisher still clears the buffer
	agg.AddDomainEvent(&ev)
	PublishEvents(context.Background(), nil, agg)
	assert.Empty(t, agg.GetDomainEvents())
}
