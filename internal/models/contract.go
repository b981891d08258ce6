package models

import "time"

const (
	ContractStatusNew        = "new"
	ContractStatusInProgress = "in_progress"
	ContractStatusTerminated = "terminated"
)

// Contract is an agreement between exactly one payer and one performer.
// The ledger only ever reads contracts; they are created and terminated
// out-of-band.
type Contract struct {
	ID          int64     `json:"id" db:"id"`
	PayerID     int64     `json:"payerId" db:"payer_id"`
	PerformerID int64     `json:"performerId" db:"performer_id"`
	Terms       string    `json:"terms" db:"terms"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
