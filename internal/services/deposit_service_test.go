package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const outstandingSumQuery = `SELECT COALESCE\(SUM\(j.price\), 0\) FROM jobs j JOIN contracts c ON c.id = j.contract_id WHERE c.payer_id = \$1 AND c.status = 'in_progress' AND j.paid = false`

func TestDepositService_MaxDeposit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	service := NewDepositService(db)
	ctx := context.Background()

	t.Run("quarter of outstanding unpaid work", func(t *testing.T) {
		// one unpaid job priced 200.00 on an in_progress contract
		mock.ExpectQuery(outstandingSumQuery).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(20000))

		limit, err := service.MaxDeposit(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(5000), limit)
	})

	t.Run("zero when nothing outstanding", func(t *testing.T) {
		mock.ExpectQuery(outstandingSumQuery).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(0))

		limit, err := service.MaxDeposit(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(0), limit)
	})

	t.Run("fractional cents truncate downward", func(t *testing.T) {
		mock.ExpectQuery(outstandingSumQuery).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(101))

		limit, err := service.MaxDeposit(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(25), limit)
	})

	t.Run("consecutive calls agree when state is unchanged", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			mock.ExpectQuery(outstandingSumQuery).WithArgs(int64(1)).
				WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(20000))
		}

		first, err := service.MaxDeposit(ctx, 1)
		require.NoError(t, err)
		second, err := service.MaxDeposit(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepositService_Deposit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	service := NewDepositService(db)
	ctx := context.Background()

	t.Run("depositing exactly the limit succeeds", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockProfileQuery).WithArgs(int64(1)).
			WillReturnRows(profileRow(1, "payer", "", 11500, "Harry", "Potter", 0))
		mock.ExpectQuery(outstandingSumQuery).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(20000))
		mock.ExpectExec(updateBalanceFmt).WithArgs(int64(16500), sqlmock.AnyArg(), int64(1), 0).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(insertEntryStmt).
			WithArgs(sqlmock.AnyArg(), int64(1), int64(5000), "CREDIT", "deposit", int64(16500), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		balance, err := service.Deposit(ctx, 1, 5000)
		require.NoError(t, err)
		assert.Equal(t, int64(16500), balance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("one cent over the limit is rejected", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockProfileQuery).WithArgs(int64(1)).
			WillReturnRows(profileRow(1, "payer", "", 11500, "Harry", "Potter", 0))
		mock.ExpectQuery(outstandingSumQuery).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(20000))
		mock.ExpectRollback()

		_, err := service.Deposit(ctx, 1, 5001)
		var limitErr *DepositLimitError
		require.ErrorAs(t, err, &limitErr)
		assert.Equal(t, int64(5000), limitErr.Limit)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-positive amounts are invalid", func(t *testing.T) {
		_, err := service.Deposit(ctx, 1, 0)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = service.Deposit(ctx, 1, -500)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("unknown payer", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockProfileQuery).WithArgs(int64(42)).WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := service.Deposit(ctx, 42, 100)
		assert.ErrorIs(t, err, ErrPayerNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("performer profiles cannot deposit", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockProfileQuery).WithArgs(int64(3)).
			WillReturnRows(profileRow(3, "performer", "wizard", 500, "John", "Snow", 1))
		mock.ExpectRollback()

		_, err := service.Deposit(ctx, 3, 100)
		assert.ErrorIs(t, err, ErrPayerNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("optimistic lock failure surfaces as store error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockProfileQuery).WithArgs(int64(1)).
			WillReturnRows(profileRow(1, "payer", "", 11500, "Harry", "Potter", 0))
		mock.ExpectQuery(outstandingSumQuery).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(20000))
		mock.ExpectExec(updateBalanceFmt).WithArgs(int64(16500), sqlmock.AnyArg(), int64(1), 0).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		_, err := service.Deposit(ctx, 1, 5000)
		var storeFailure *StoreError
		assert.ErrorAs(t, err, &storeFailure)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeposit_LimitExceededFormatting(t *testing.T) {
	err := &DepositLimitError{Limit: 5000}
	assert.Equal(t, "deposit exceeds limit of 50.00", err.Error())

	err = &DepositLimitError{Limit: 25}
	assert.Equal(t, "deposit exceeds limit of 0.25", err.Error())

	err = &DepositLimitError{Limit: 0}
	assert.Equal(t, "deposit exceeds limit of 0.00", err.Error())
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "50.00", FormatCents(5000))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "-12.34", FormatCents(-1234))
}
