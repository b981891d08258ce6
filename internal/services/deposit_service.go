package services

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/workpay/backend/internal/models"
)

// depositCapDivisor caps a deposit at 25% of the payer's outstanding
// unpaid work. Integer division truncates fractional cents, so the cap
// never exceeds a true 25%.
const depositCapDivisor = 4

// outstandingQuery sums the unpaid job prices across a payer's
// in_progress contracts.
const outstandingQuery = `
	SELECT COALESCE(SUM(j.price), 0)
	FROM jobs j
	JOIN contracts c ON c.id = j.contract_id
	WHERE c.payer_id = $1 AND c.status = 'in_progress' AND j.paid = false`

// DepositService enforces the deposit cap and applies balance top-ups.
type DepositService struct {
	db *sql.DB
}

func NewDepositService(db *sql.DB) *DepositService {
	return &DepositService{db: db}
}

// MaxDeposit returns the largest amount, in cents, the payer may
// currently deposit. It is a pure function of the payer's outstanding
// unpaid jobs and is zero when there are none.
func (s *DepositService) MaxDeposit(ctx context.Context, payerID int64) (int64, error) {
	var outstanding int64
	if err := s.db.QueryRowContext(ctx, outstandingQuery, payerID).Scan(&outstanding); err != nil {
		return 0, storeErr("sum outstanding jobs", err)
	}
	return outstanding / depositCapDivisor, nil
}

// Deposit adds amount cents to the payer's balance, subject to the
// deposit cap, and returns the new balance. The cap is recomputed inside
// the transaction so the check and the balance update see the same state.
func (s *DepositService) Deposit(ctx context.Context, payerID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storeErr("begin deposit", err)
	}
	defer tx.Rollback()

	payer, err := lockProfile(tx, payerID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrPayerNotFound
	}
	if err != nil {
		return 0, storeErr("lock payer", err)
	}
	if payer.Role != models.RolePayer {
		return 0, ErrPayerNotFound
	}

	var outstanding int64
	if err := tx.QueryRow(outstandingQuery, payerID).Scan(&outstanding); err != nil {
		return 0, storeErr("sum outstanding jobs", err)
	}
	limit := outstanding / depositCapDivisor
	if amount > limit {
		return 0, &DepositLimitError{Limit: limit}
	}

	now := time.Now().UTC()
	if err := applyBalanceChange(tx, payer, amount, now); err != nil {
		return 0, err
	}
	if err := writeLedgerEntry(tx, uuid.NewString(), payer.ID, amount, models.EntryTypeCredit, models.EntryKindDeposit, payer.Balance, now); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, storeErr("commit deposit", err)
	}

	log.Printf("[DEPOSIT] profile %d deposited %s, new balance %s",
		payer.ID, FormatCents(amount), FormatCents(payer.Balance))
	return payer.Balance, nil
}
