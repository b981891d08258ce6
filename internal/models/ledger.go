package models

import (
	"time"
)

const (
	EntryTypeDebit  = "DEBIT"
	EntryTypeCredit = "CREDIT"

	EntryKindSettlement = "settlement"
	EntryKindDeposit    = "deposit"
)

// LedgerEntry is one leg of a balance movement. Every settlement writes a
// DEBIT/CREDIT pair sharing a transfer ID; every deposit writes a single
// CREDIT. Entries are written in the same transaction as the balance
// update they describe.
type LedgerEntry struct {
	ID         int64     `json:"id" db:"id"`
	TransferID string    `json:"transfer_id" db:"transfer_id"`
	ProfileID  int64     `json:"profile_id" db:"profile_id"`
	Amount     int64     `json:"amount" db:"amount"` // in cents, signed
	EntryType  string    `json:"entry_type" db:"entry_type"`
	Kind       string    `json:"kind" db:"kind"`
	Balance    int64     `json:"balance" db:"balance"` // profile balance after this entry
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
