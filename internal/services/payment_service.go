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

// PaymentService executes job settlements: it moves a job's price from a
// payer balance to the performer's balance and marks the job paid, as one
// atomic unit.
type PaymentService struct {
	db *sql.DB
}

func NewPaymentService(db *sql.DB) *PaymentService {
	return &PaymentService{db: db}
}

// SettleJob settles the job identified by jobID on behalf of the payer
// profile payerID. Either every effect is applied (payer debited,
// performer credited, job marked paid, journal written) or none is.
//
// The payer is any profile with role payer; it is not required to be the
// payer party on the job's contract.
func (s *PaymentService) SettleJob(ctx context.Context, jobID, payerID int64) (*models.Job, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storeErr("begin settlement", err)
	}
	defer tx.Rollback()

	job, err := lockJob(tx, jobID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, storeErr("lock job", err)
	}
	if job.Paid {
		return nil, ErrJobAlreadyPaid
	}

	var performerID int64
	err = tx.QueryRow(`SELECT performer_id FROM contracts WHERE id = $1`, job.ContractID).Scan(&performerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContractNotFound
	}
	if err != nil {
		return nil, storeErr("load contract", err)
	}

	payer, performer, err := lockParties(tx, payerID, performerID)
	if err != nil {
		return nil, err
	}

	if payer.Balance < job.Price {
		return nil, ErrInsufficientFunds
	}

	now := time.Now().UTC()
	transferID := uuid.NewString()

	if err := applyBalanceChange(tx, payer, -job.Price, now); err != nil {
		return nil, err
	}
	if err := applyBalanceChange(tx, performer, job.Price, now); err != nil {
		return nil, err
	}

	result, err := tx.Exec(`
		UPDATE jobs
		SET paid = true, payment_date = $1
		WHERE id = $2 AND paid = false`, now, jobID)
	if err != nil {
		return nil, storeErr("mark job paid", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, storeErr("mark job paid", err)
	}
	if rowsAffected == 0 {
		// Lost a race to a concurrent settlement of the same job.
		return nil, ErrJobAlreadyPaid
	}

	if err := writeLedgerEntry(tx, transferID, payer.ID, -job.Price, models.EntryTypeDebit, models.EntryKindSettlement, payer.Balance, now); err != nil {
		return nil, err
	}
	if err := writeLedgerEntry(tx, transferID, performer.ID, job.Price, models.EntryTypeCredit, models.EntryKindSettlement, performer.Balance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, storeErr("commit settlement", err)
	}

	job.Paid = true
	job.PaymentDate = &now
	log.Printf("[PAYMENT] job %d settled: %s from profile %d to profile %d",
		job.ID, FormatCents(job.Price), payer.ID, performer.ID)
	return job, nil
}

func lockJob(tx *sql.Tx, jobID int64) (*models.Job, error) {
	var job models.Job
	err := tx.QueryRow(`
		SELECT id, contract_id, description, price, paid, payment_date
		FROM jobs
		WHERE id = $1
		FOR UPDATE`, jobID).
		Scan(&job.ID, &job.ContractID, &job.Description, &job.Price, &job.Paid, &job.PaymentDate)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// lockParties locks both profile rows in ascending id order to prevent
// deadlocks between settlements running in opposite directions, then
// attributes each row to its side of the transfer.
func lockParties(tx *sql.Tx, payerID, performerID int64) (*models.Profile, *models.Profile, error) {
	firstID, secondID := payerID, performerID
	if firstID > secondID {
		firstID, secondID = secondID, firstID
	}

	locked := make(map[int64]*models.Profile, 2)
	for _, id := range []int64{firstID, secondID} {
		p, lockErr := lockProfile(tx, id)
		if errors.Is(lockErr, sql.ErrNoRows) {
			continue
		}
		if lockErr != nil {
			return nil, nil, storeErr("lock profile", lockErr)
		}
		locked[id] = p
	}

	payer := locked[payerID]
	if payer == nil || payer.Role != models.RolePayer {
		return nil, nil, ErrPayerNotFound
	}
	performer := locked[performerID]
	if performer == nil || performer.Role != models.RolePerformer {
		return nil, nil, ErrPerformerNotFound
	}
	return payer, performer, nil
}
