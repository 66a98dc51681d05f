package customer

import (
	"testing"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates active customer", func(t *testing.T) {
		c, err := NewCustomer(tenantID, "  Acme Plumbing ", "Ops@Acme.test", "555-0100")
		require.NoError(t, err)
		assert.Equal(t, "Acme Plumbing", c.Name)
		assert.Equal(t, "ops@acme.test", c.Email)
		assert.True(t, c.IsActive)
		assert.False(t, c.IsDeleted)
		assert.Equal(t, tenantID, c.TenantID)
		require.Len(t, c.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeCustomerCreated, c.GetDomainEvents()[0].EventType())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCustomer(tenantID, "  ", "", "")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_NAME", domainErr.Code)
	})

	t.Run("rejects bad email", func(t *testing.T) {
		_, err := NewCustomer(tenantID, "Acme", "not-an-email", "")
		require.Error(t, err)
	})
}

func TestCustomer_ActivateDeactivate(t *testing.T) {
	c, err := NewCustomer(uuid.New(), "Acme", "", "")
	require.NoError(t, err)

	require.Error(t, c.Activate())
	require.NoError(t, c.Deactivate())
	assert.False(t, c.IsActive)
	require.Error(t, c.Deactivate())
	require.NoError(t, c.Activate())
	assert.True(t, c.IsActive)
	assert.Equal(t, 3, c.GetVersion())
}

func TestCustomer_SoftDelete(t *testing.T) {
	c, err := NewCustomer(uuid.New(), "Acme", "", "")
	require.NoError(t, err)

	require.NoError(t, c.SoftDelete())
	assert.True(t, c.IsDeleted)
	assert.False(t, c.BelongsTo(c.TenantID))
	assert.Error(t, c.SoftDelete())
}

func TestNewLocation(t *testing.T) {
	tenantID := uuid.New()
	customerID := uuid.New()
	addr := valueobject.NewAddress("12 Elm St", "", "Springfield", "IL", "62701", "US")

	t.Run("valid", func(t *testing.T) {
		loc, err := NewLocation(tenantID, customerID, "HQ", addr)
		require.NoError(t, err)
		assert.True(t, loc.IsActive)
		assert.False(t, loc.IsPrimary)
		assert.Equal(t, customerID, loc.CustomerID)
	})

	t.Run("requires customer", func(t *testing.T) {
		_, err := NewLocation(tenantID, uuid.Nil, "HQ", addr)
		assert.Error(t, err)
	})

	t.Run("requires address line and city", func(t *testing.T) {
		_, err := NewLocation(tenantID, customerID, "HQ", valueobject.NewAddress("", "", "", "", "", ""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line1 and city")
	})
}
