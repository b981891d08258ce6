package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/workpay/backend/internal/models"
)

// ContractService answers the read-only contract and job listings the
// request layer exposes.
type ContractService struct {
	db *sql.DB
}

func NewContractService(db *sql.DB) *ContractService {
	return &ContractService{db: db}
}

// GetContract returns the contract only when the caller is its payer.
// A contract that exists but belongs to someone else reports plain
// not-found, so callers cannot probe for foreign contract ids.
func (s *ContractService) GetContract(ctx context.Context, contractID, callerID int64) (*models.Contract, error) {
	var c models.Contract
	err := s.db.QueryRowContext(ctx, `
		SELECT id, payer_id, performer_id, terms, status, created_at, updated_at
		FROM contracts
		WHERE id = $1 AND payer_id = $2`, contractID, callerID).
		Scan(&c.ID, &c.PayerID, &c.PerformerID, &c.Terms, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContractNotFound
	}
	if err != nil {
		return nil, storeErr("get contract", err)
	}
	return &c, nil
}

// ListActiveContracts returns the caller's in_progress contracts, on
// either side of the agreement. No matches is an empty list.
func (s *ContractService) ListActiveContracts(ctx context.Context, callerID int64) ([]models.Contract, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, payer_id, performer_id, terms, status, created_at, updated_at
		FROM contracts
		WHERE status = 'in_progress' AND (payer_id = $1 OR performer_id = $1)
		ORDER BY id`, callerID)
	if err != nil {
		return nil, storeErr("list contracts", err)
	}
	defer rows.Close()

	contracts := []models.Contract{}
	for rows.Next() {
		var c models.Contract
		if err := rows.Scan(&c.ID, &c.PayerID, &c.PerformerID, &c.Terms, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, storeErr("list contracts scan", err)
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list contracts rows", err)
	}
	return contracts, nil
}

// ListUnpaidJobs returns the unpaid jobs under the caller's in_progress
// contracts.
func (s *ContractService) ListUnpaidJobs(ctx context.Context, callerID int64) ([]models.Job, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT j.id, j.contract_id, j.description, j.price, j.paid, j.payment_date
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE j.paid = false AND c.status = 'in_progress'
			AND (c.payer_id = $1 OR c.performer_id = $1)
		ORDER BY j.id`, callerID)
	if err != nil {
		return nil, storeErr("list unpaid jobs", err)
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		var j models.Job
		if err := rows.Scan(&j.ID, &j.ContractID, &j.Description, &j.Price, &j.Paid, &j.PaymentDate); err != nil {
			return nil, storeErr("list unpaid jobs scan", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list unpaid jobs rows", err)
	}
	return jobs, nil
}
