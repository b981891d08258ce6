package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/workpay/backend/internal/models"
)

// lockProfile reads a profile row under FOR UPDATE so concurrent balance
// mutations on the same profile serialize at the store.
func lockProfile(tx *sql.Tx, profileID int64) (*models.Profile, error) {
	var p models.Profile
	err := tx.QueryRow(`
		SELECT id, role, profession, balance, first_name, last_name, version
		FROM profiles
		WHERE id = $1
		FOR UPDATE`, profileID).
		Scan(&p.ID, &p.Role, &p.Profession, &p.Balance, &p.FirstName, &p.LastName, &p.Version)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// applyBalanceChange moves a profile's balance by delta. The version
// re-check guards the read-modify-write even if the row lock was lost to
// a retried transaction.
func applyBalanceChange(tx *sql.Tx, p *models.Profile, delta int64, now time.Time) error {
	result, err := tx.Exec(`
		UPDATE profiles
		SET balance = $1, version = version + 1, updated_at = $2
		WHERE id = $3 AND version = $4`,
		p.Balance+delta, now, p.ID, p.Version)
	if err != nil {
		return storeErr("update balance", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storeErr("update balance", err)
	}

	if rowsAffected == 0 {
		return storeErr("update balance", fmt.Errorf("optimistic lock failed for profile %d", p.ID))
	}

	p.Balance += delta
	return nil
}

// writeLedgerEntry records one leg of a balance movement in the same
// transaction that applied it.
func writeLedgerEntry(tx *sql.Tx, transferID string, profileID int64, amount int64, entryType, kind string, balance int64, now time.Time) error {
	_, err := tx.Exec(`
		INSERT INTO ledger_entries (transfer_id, profile_id, amount, entry_type, kind, balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		transferID, profileID, amount, entryType, kind, balance, now)
	if err != nil {
		return storeErr("write ledger entry", err)
	}
	return nil
}
