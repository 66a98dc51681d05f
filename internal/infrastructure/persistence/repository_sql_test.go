package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fieldops/backend/internal/domain/customer"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/domain/workorder"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCustomerRepository_SQL(t *testing.T) {
	tenantID := uuid.New()

	t.Run("list applies tenant, soft delete, flag, order and page", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db.DB)

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE tenant_id = \$1 AND is_deleted = \$2 AND is_active = \$3 ORDER BY name ASC,id ASC LIMIT \$4 OFFSET \$5`).
			WithArgs(tenantID, false, true, 10, 20).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name", "is_active"}))

		filter := shared.Filter{Page: 3, PageSize: 10, OrderBy: "name", OrderDir: "asc"}
		filter.Set(customer.FilterIsActive, true)

		items, err := repo.FindAllForTenant(context.Background(), tenantID, filter)
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count uses the same predicates without paging", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db.DB)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "customers" WHERE tenant_id = \$1 AND is_deleted = \$2 AND \(LOWER\(name\) LIKE \$3 OR LOWER\(email\) LIKE \$4 OR LOWER\(phone\) LIKE \$5\)$`).
			WithArgs(tenantID, false, "%acme%", "%acme%", "%acme%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

		count, err := repo.CountForTenant(context.Background(), tenantID, shared.Filter{Page: 2, PageSize: 5, Search: "ACME"})
		require.NoError(t, err)
		assert.Equal(t, int64(42), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("find by id maps missing rows to ErrNotFound", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db.DB)
		id := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE tenant_id = \$1 AND is_deleted = \$2 AND id = \$3`).
			WithArgs(tenantID, false, id, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByIDForTenant(context.Background(), tenantID, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent optional filter adds no predicate", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db.DB)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "customers" WHERE tenant_id = \$1 AND is_deleted = \$2$`).
			WithArgs(tenantID, false).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		var unset *bool
		filter := shared.Filter{}
		filter.Set(customer.FilterIsActive, unset)

		_, err := repo.CountForTenant(context.Background(), tenantID, filter)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormWorkOrderRepository_SQL(t *testing.T) {
	tenantID := uuid.New()

	t.Run("list by status orders by total with id tie-break", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormWorkOrderRepository(db.DB)

		mock.ExpectQuery(`SELECT \* FROM "work_orders" WHERE tenant_id = \$1 AND is_deleted = \$2 AND status = \$3 ORDER BY total_amount DESC,id ASC LIMIT \$4`).
			WithArgs(tenantID, false, "completed", 20).
			WillReturnRows(sqlmock.NewRows([]string{"id", "number", "total_amount"}).
				AddRow(uuid.New(), "WO-20260310-0001", "26.6"))

		filter := shared.Filter{Page: 1, PageSize: 20, OrderBy: "total_amount", OrderDir: "desc"}
		filter.Set(workorder.FilterStatus, workorder.StatusCompleted)

		items, err := repo.FindAllForTenant(context.Background(), tenantID, filter)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "26.6", items[0].Total().String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("next number bumps the tenant's daily counter", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormWorkOrderRepository(db.DB)

		mock.ExpectQuery(`INSERT INTO work_order_sequences \(tenant_id, day, last_value\) VALUES \(\$1, \$2, 1\)\s+ON CONFLICT \(tenant_id, day\) DO UPDATE SET last_value = work_order_sequences.last_value \+ 1\s+RETURNING last_value`).
			WithArgs(tenantID, "20260310").
			WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(12))

		day, _ := time.Parse("2006-01-02", "2026-03-10")
		number, err := repo.NextNumber(context.Background(), tenantID, day)
		require.NoError(t, err)
		assert.Equal(t, "WO-20260310-0012", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
