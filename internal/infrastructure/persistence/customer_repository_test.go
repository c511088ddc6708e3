package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/stockbook/backend/internal/domain/shared"
)

func newMockCustomerRepository(t *testing.T) (*GormCustomerRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormCustomerRepository(gormDB), mock, mockDB
}

func TestGormCustomerRepository_FindByIDForUser(t *testing.T) {
	t.Run("finds customer scoped to user", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		customerID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "user_id", "name", "email", "phone", "address"}).
			AddRow(customerID, userID, "Acme Retail", "sales@acme.test", "555-0100", "")

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE user_id = \$1 AND id = \$2`).
			WithArgs(userID, customerID, 1).
			WillReturnRows(rows)

		customer, err := repo.FindByIDForUser(context.Background(), userID, customerID)

		assert.NoError(t, err)
		assert.Equal(t, customerID, customer.ID)
		assert.Equal(t, "Acme Retail", customer.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		customerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE user_id = \$1 AND id = \$2`).
			WithArgs(userID, customerID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByIDForUser(context.Background(), userID, customerID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_CountForUser(t *testing.T) {
	t.Run("counts with search applied", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		rows := sqlmock.NewRows([]string{"count"}).AddRow(3)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "customers" WHERE user_id = \$1`).
			WithArgs(userID, "%acme%", "%acme%", "%acme%").
			WillReturnRows(rows)

		count, err := repo.CountForUser(context.Background(), userID, shared.Filter{Search: "acme"})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_DeleteForUser(t *testing.T) {
	t.Run("deletes existing customer", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		customerID := uuid.New()

		mock.ExpectExec(`DELETE FROM "customers" WHERE user_id = \$1 AND id = \$2`).
			WithArgs(userID, customerID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteForUser(context.Background(), userID, customerID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing customer reports not found", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		customerID := uuid.New()

		mock.ExpectExec(`DELETE FROM "customers" WHERE user_id = \$1 AND id = \$2`).
			WithArgs(userID, customerID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteForUser(context.Background(), userID, customerID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
