package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPayment(t *testing.T) {
	tenantID := uuid.New()
	woID := uuid.New()

	t.Run("valid", func(t *testing.T) {
		p, err := RecordPayment(tenantID, woID, decimal.RequireFromString("26.604"), PaymentMethodCard, " ch_123 ", time.Time{})
		require.NoError(t, err)
		assert.True(t, p.Amount.Equal(decimal.RequireFromString("26.60")))
		assert.Equal(t, "ch_123", p.Reference)
		assert.False(t, p.PaidAt.IsZero())
		assert.Equal(t, PaymentStatusCompleted, p.Status)
		require.Len(t, p.GetDomainEvents(), 1)
	})

	t.Run("amount must be positive", func(t *testing.T) {
		_, err := RecordPayment(tenantID, woID, decimal.Zero, PaymentMethodCash, "", time.Now())
		assert.Error(t, err)
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := RecordPayment(tenantID, woID, decimal.NewFromInt(1), PaymentMethod("barter"), "", time.Now())
		assert.Error(t, err)
	})
}

func TestPayment_Refund(t *testing.T) {
	p, err := RecordPayment(uuid.New(), uuid.New(), decimal.NewFromInt(50), PaymentMethodCash, "", time.Now())
	require.NoError(t, err)

	require.NoError(t, p.Refund("duplicate"))
	assert.Equal(t, PaymentStatusRefunded, p.Status)
	assert.True(t, p.SettledAmount().IsZero())
	assert.Error(t, p.Refund("again"))
}

func TestSumSettled(t *testing.T) {
	a, _ := RecordPayment(uuid.New(), uuid.New(), decimal.NewFromInt(10), PaymentMethodCash, "", time.Now())
	b, _ := RecordPayment(uuid.New(), uuid.New(), decimal.RequireFromString("5.25"), PaymentMethodCard, "", time.Now())
	c, _ := RecordPayment(uuid.New(), uuid.New(), decimal.NewFromInt(100), PaymentMethodCard, "", time.Now())
	require.NoError(t, c.Refund(""))

	assert.True(t, SumSettled([]Payment{*a, *b, *c}).Equal(decimal.RequireFromString("15.25")))
}
