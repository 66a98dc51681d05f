package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	tenantID := uuid.New()

	t.Run("normalizes code", func(t *testing.T) {
		svc, err := NewService(tenantID, " insp-01 ", "Boiler inspection", decimal.NewFromInt(120), decimal.NewFromInt(8), 60)
		require.NoError(t, err)
		assert.Equal(t, "INSP-01", svc.Code)
		assert.True(t, svc.IsActive)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewService(tenantID, "X", "X", decimal.NewFromInt(-1), decimal.Zero, 0)
		assert.Error(t, err)
	})

	t.Run("rejects negative tax", func(t *testing.T) {
		_, err := NewService(tenantID, "X", "X", decimal.Zero, decimal.NewFromInt(-5), 0)
		assert.Error(t, err)
	})
}

func TestService_PriceWithTax(t *testing.T) {
	svc, err := NewService(uuid.New(), "A", "A", decimal.RequireFromString("19.99"), decimal.NewFromInt(10), 30)
	require.NoError(t, err)
	assert.True(t, svc.PriceWithTax().Equal(decimal.RequireFromString("21.989")))
}

func TestService_Reprice(t *testing.T) {
	svc, err := NewService(uuid.New(), "A", "A", decimal.NewFromInt(10), decimal.Zero, 30)
	require.NoError(t, err)

	require.NoError(t, svc.Reprice(decimal.NewFromInt(15), decimal.NewFromInt(5), 45))
	assert.True(t, svc.UnitPrice.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, 45, svc.DurationMinutes)

	assert.Error(t, svc.Reprice(decimal.NewFromInt(15), decimal.NewFromInt(5), -1))
}

func TestService_Deactivate(t *testing.T) {
	svc, err := NewService(uuid.New(), "A", "A", decimal.NewFromInt(10), decimal.Zero, 30)
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate())
	assert.False(t, svc.IsActive)
	assert.Error(t, svc.Deactivate())
	require.NoError(t, svc.Activate())
}
