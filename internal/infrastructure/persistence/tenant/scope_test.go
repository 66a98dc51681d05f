package tenant

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestModel is a simple model for testing tenant scoping
type TestModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	IsDeleted bool
	Name      string `gorm:"size:100"`
}

func (TestModel) TableName() string {
	return "test_models"
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestLive(t *testing.T) {
	tenantID := uuid.New()

	t.Run("filters tenant and soft delete", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "test_models" WHERE tenant_id = \$1 AND is_deleted = \$2`).
			WithArgs(tenantID, false).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "is_deleted", "name"}))

		var rows []TestModel
		err := db.Scopes(Live(tenantID)).Find(&rows).Error
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil tenant fails without querying", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		var rows []TestModel
		err := db.Scopes(Live(uuid.Nil)).Find(&rows).Error
		assert.ErrorIs(t, err, ErrTenantIDRequired)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTenantDB_Transaction(t *testing.T) {
	t.Run("hands the context tenant to fn and commits", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		ctx := shared.WithTenantID(context.Background(), tenantID)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "test_models" WHERE tenant_id = \$1 AND is_deleted = \$2`).
			WithArgs(tenantID, false).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectCommit()

		var count int64
		err := NewTenantDB(db).Transaction(ctx, func(tx *gorm.DB, got uuid.UUID) error {
			assert.Equal(t, tenantID, got)
			return tx.Model(&TestModel{}).Scopes(Live(got)).Count(&count).Error
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		ctx := shared.WithTenantID(context.Background(), uuid.New())
		boom := errors.New("boom")

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := NewTenantDB(db).Transaction(ctx, func(*gorm.DB, uuid.UUID) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("requires a tenant", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		called := false
		err := NewTenantDB(db).Transaction(context.Background(), func(*gorm.DB, uuid.UUID) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, ErrTenantIDRequired)
		assert.False(t, called)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
