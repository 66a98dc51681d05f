//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldops/backend/internal/domain/catalog"
	"github.com/fieldops/backend/internal/domain/customer"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/domain/shared/valueobject"
	"github.com/fieldops/backend/internal/domain/workorder"
	"github.com/fieldops/backend/internal/infrastructure/persistence"
)

func TestTenantIsolation_Repositories(t *testing.T) {
	tdb := NewSharedTestDB(t)
	ctx := context.Background()

	customers := persistence.NewGormCustomerRepository(tdb.DB)
	locations := persistence.NewGormLocationRepository(tdb.DB)
	services := persistence.NewGormServiceRepository(tdb.DB)
	workOrders := persistence.NewGormWorkOrderRepository(tdb.DB)

	tenantA, tenantB := uuid.New(), uuid.New()

	custA, err := customer.NewCustomer(tenantA, "Alpha Plumbing", "ops@alpha.test", "")
	require.NoError(t, err)
	require.NoError(t, customers.Save(ctx, custA))
	custB, err := customer.NewCustomer(tenantB, "Beta Heating", "", "")
	require.NoError(t, err)
	require.NoError(t, customers.Save(ctx, custB))

	locA, err := customer.NewLocation(tenantA, custA.ID, "Depot", valueobject.NewAddress("1 Main", "", "Springfield", "", "", ""))
	require.NoError(t, err)
	require.NoError(t, locations.Save(ctx, locA))

	svcA, err := catalog.NewService(tenantA, "INSP", "Inspection", decimal.NewFromInt(80), decimal.NewFromInt(10), 60)
	require.NoError(t, err)
	require.NoError(t, services.Save(ctx, svcA))

	woA, err := workorder.NewWorkOrder(tenantA, "WO-A-0001", custA.ID, locA.ID, "Annual inspection")
	require.NoError(t, err)
	_, err = woA.AddItem("Inspection", decimal.NewFromInt(1), svcA.UnitPrice, svcA.TaxRatePercent, &svcA.ID)
	require.NoError(t, err)
	require.NoError(t, workOrders.Save(ctx, woA))

	t.Run("lookups by id do not cross tenants", func(t *testing.T) {
		_, err := customers.FindByIDForTenant(ctx, tenantB, custA.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		_, err = locations.FindByIDForTenant(ctx, tenantB, locA.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		_, err = services.FindByIDForTenant(ctx, tenantB, svcA.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		_, err = workOrders.FindByIDForTenant(ctx, tenantB, woA.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		found, err := workOrders.FindByIDForTenant(ctx, tenantA, woA.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 1)
		assert.True(t, decimal.RequireFromString("88").Equal(found.TotalAmount), "total %s", found.TotalAmount)
	})

	t.Run("pages and counts only see own rows", func(t *testing.T) {
		filter := shared.DefaultFilter()

		items, err := customers.FindAllForTenant(ctx, tenantB, filter)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, custB.ID, items[0].ID)

		count, err := customers.CountForTenant(ctx, tenantB, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		count, err = workOrders.CountForTenant(ctx, tenantB, filter)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("email uniqueness is per tenant", func(t *testing.T) {
		exists, err := customers.ExistsByEmail(ctx, tenantB, "ops@alpha.test", nil)
		require.NoError(t, err)
		assert.False(t, exists)

		exists, err = customers.ExistsByEmail(ctx, tenantA, "ops@alpha.test", nil)
		require.NoError(t, err)
		assert.True(t, exists)
	})
}
