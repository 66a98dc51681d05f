package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordingHandler(t *testing.T) {
	h := NewRecordingHandler("AppointmentScheduled")
	assert.Equal(t, []string{"AppointmentScheduled"}, h.EventTypes())

	tenantID := uuid.New()
	require.NoError(t, h.Handle(context.Background(), NewTestEvent("AppointmentScheduled", tenantID)))

	h.SetError(errors.New("boom"))
	assert.Error(t, h.Handle(context.Background(), NewTestEvent("PaymentReceived", tenantID)))

	assert.Equal(t, []string{"AppointmentScheduled", "PaymentReceived"}, h.Types())
	assert.Equal(t, tenantID, h.Handled()[0].TenantID())
}
