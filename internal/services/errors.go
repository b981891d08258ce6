package services

import (
	"errors"
	"fmt"
)

var (
	// ErrJobNotFound no job with the given id
	ErrJobNotFound = errors.New("job not found")

	// ErrContractNotFound no contract backing the job, or not visible to the caller
	ErrContractNotFound = errors.New("contract not found")

	// ErrPayerNotFound no profile with role payer under the given id
	ErrPayerNotFound = errors.New("payer profile not found")

	// ErrPerformerNotFound contract references a missing or non-performer profile
	ErrPerformerNotFound = errors.New("performer profile not found")

	// ErrJobAlreadyPaid job was settled before
	ErrJobAlreadyPaid = errors.New("job already paid")

	// ErrInsufficientFunds payer balance below job price
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount deposit amount must be positive
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidRange report window needs both start and end
	ErrInvalidRange = errors.New("start and end dates are required")

	// ErrNoResults no paid jobs inside the report window
	ErrNoResults = errors.New("no paid jobs in range")
)

// DepositLimitError rejects a deposit above the payer's current cap. Limit
// is in cents; the message renders it as a decimal currency amount.
type DepositLimitError struct {
	Limit int64
}

func (e *DepositLimitError) Error() string {
	return fmt.Sprintf("deposit exceeds limit of %s", FormatCents(e.Limit))
}

// StoreError wraps an infrastructure failure from the ledger store. It is
// never used for business-rule rejections, so callers can tell "your
// request was rejected" apart from "the store could not process it".
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// FormatCents renders an amount in cents as a decimal string, e.g. 5000
// becomes "50.00".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
