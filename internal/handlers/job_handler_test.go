package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workpay/backend/internal/middleware"
	"github.com/workpay/backend/internal/models"
	"github.com/workpay/backend/internal/services"
)

const (
	lockJobQuery     = `SELECT id, contract_id, description, price, paid, payment_date FROM jobs WHERE id = \$1 FOR UPDATE`
	loadContractStmt = `SELECT performer_id FROM contracts WHERE id = \$1`
	lockProfileQuery = `SELECT id, role, profession, balance, first_name, last_name, version FROM profiles WHERE id = \$1 FOR UPDATE`
	updateBalanceFmt = `UPDATE profiles SET balance = \$1`
	markJobPaidStmt  = `UPDATE jobs SET paid = true`
	insertEntryStmt  = `INSERT INTO ledger_entries`
)

// payRouter wires the pay route behind a fixed authenticated profile.
func payRouter(db *sql.DB, caller *models.Profile) http.Handler {
	handler := NewJobHandler(services.NewContractService(db), services.NewPaymentService(db))
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithProfile(req.Context(), caller)))
		})
	})
	r.Post("/jobs/{jobID}/pay", handler.Pay)
	return r
}

func payerProfile(id int64, balance int64) *models.Profile {
	return &models.Profile{ID: id, Role: models.RolePayer, Balance: balance, FirstName: "Harry", LastName: "Potter"}
}

func TestJobHandler_Pay(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	router := payRouter(db, payerProfile(1, 10000))

	t.Run("settles and returns the paid job", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockJobQuery).WithArgs(int64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "contract_id", "description", "price", "paid", "payment_date"}).
				AddRow(10, 5, "sample work", 8000, false, nil))
		mock.ExpectQuery(loadContractStmt).WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"performer_id"}).AddRow(3))
		mock.ExpectQuery(lockProfileQuery).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "role", "profession", "balance", "first_name", "last_name", "version"}).
				AddRow(1, "payer", "", 10000, "Harry", "Potter", 0))
		mock.ExpectQuery(lockProfileQuery).WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "role", "profession", "balance", "first_name", "last_name", "version"}).
				AddRow(3, "performer", "wizard", 500, "John", "Snow", 0))
		mock.ExpectExec(updateBalanceFmt).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(updateBalanceFmt).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(markJobPaidStmt).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(insertEntryStmt).WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(insertEntryStmt).WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		req := httptest.NewRequest(http.MethodPost, "/jobs/10/pay", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":true`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing job is 404", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockJobQuery).WithArgs(int64(99)).WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		req := httptest.NewRequest(http.MethodPost, "/jobs/99/pay", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insufficient funds is 400", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockJobQuery).WithArgs(int64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "contract_id", "description", "price", "paid", "payment_date"}).
				AddRow(10, 5, "sample work", 8000, false, nil))
		mock.ExpectQuery(loadContractStmt).WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"performer_id"}).AddRow(3))
		mock.ExpectQuery(lockProfileQuery).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "role", "profession", "balance", "first_name", "last_name", "version"}).
				AddRow(1, "payer", "", 100, "Harry", "Potter", 0))
		mock.ExpectQuery(lockProfileQuery).WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "role", "profession", "balance", "first_name", "last_name", "version"}).
				AddRow(3, "performer", "wizard", 500, "John", "Snow", 0))
		mock.ExpectRollback()

		req := httptest.NewRequest(http.MethodPost, "/jobs/10/pay", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "insufficient funds")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already paid is 409", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockJobQuery).WithArgs(int64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "contract_id", "description", "price", "paid", "payment_date"}).
				AddRow(10, 5, "sample work", 8000, true, time.Date(2020, 8, 15, 19, 11, 26, 0, time.UTC)))
		mock.ExpectRollback()

		req := httptest.NewRequest(http.MethodPost, "/jobs/10/pay", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-numeric job id is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/jobs/abc/pay", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
