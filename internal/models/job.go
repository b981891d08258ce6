package models

import "time"

// Job is a billable unit of work under one contract. PaymentDate is set
// exactly once, when the job transitions to paid.
type Job struct {
	ID          int64      `json:"id" db:"id"`
	ContractID  int64      `json:"contractId" db:"contract_id"`
	Description string     `json:"description" db:"description"`
	Price       int64      `json:"price" db:"price"` // in cents
	Paid        bool       `json:"paid" db:"paid"`
	PaymentDate *time.Time `json:"paymentDate,omitempty" db:"payment_date"`
}
