package database

import (
	"database/sql"
	"fmt"
	"log"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id BIGSERIAL PRIMARY KEY,
		role TEXT NOT NULL CHECK (role IN ('payer', 'performer')),
		profession TEXT NOT NULL DEFAULT '',
		balance BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		version INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id BIGSERIAL PRIMARY KEY,
		payer_id BIGINT NOT NULL REFERENCES profiles(id),
		performer_id BIGINT NOT NULL REFERENCES profiles(id),
		terms TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'new' CHECK (status IN ('new', 'in_progress', 'terminated')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (payer_id <> performer_id)
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id BIGSERIAL PRIMARY KEY,
		contract_id BIGINT NOT NULL REFERENCES contracts(id),
		description TEXT NOT NULL DEFAULT '',
		price BIGINT NOT NULL CHECK (price > 0),
		paid BOOLEAN NOT NULL DEFAULT false,
		payment_date TIMESTAMPTZ,
		CHECK ((paid AND payment_date IS NOT NULL) OR (NOT paid AND payment_date IS NULL))
	)`,
	`CREATE TABLE IF NOT EXISTS ledger_entries (
		id BIGSERIAL PRIMARY KEY,
		transfer_id UUID NOT NULL,
		profile_id BIGINT NOT NULL REFERENCES profiles(id),
		amount BIGINT NOT NULL,
		entry_type TEXT NOT NULL CHECK (entry_type IN ('DEBIT', 'CREDIT')),
		kind TEXT NOT NULL CHECK (kind IN ('settlement', 'deposit')),
		balance BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_paid_payment_date ON jobs (paid, payment_date)`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_payer_status ON contracts (payer_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_performer_status ON contracts (performer_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_ledger_entries_transfer ON ledger_entries (transfer_id)`,
}

// EnsureSchema creates the ledger tables and indexes if they do not exist.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema bootstrap failed: %w", err)
		}
	}
	return nil
}

// SeedDemoData inserts a small set of profiles, contracts and jobs for
// local development. It is a no-op when profiles already exist.
func SeedDemoData(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM profiles`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []string{
		`INSERT INTO profiles (id, role, profession, balance, first_name, last_name) VALUES
			(1, 'payer', '', 115000, 'Harry', 'Potter'),
			(2, 'payer', '', 23110, 'Ash', 'Ketchum'),
			(3, 'performer', 'wizard', 6400, 'John', 'Snow'),
			(4, 'performer', 'programmer', 121500, 'Linus', 'Torvalds'),
			(5, 'performer', 'musician', 130, 'Alan', 'Turing')`,
		`INSERT INTO contracts (id, payer_id, performer_id, terms, status) VALUES
			(1, 1, 3, 'sample terms', 'in_progress'),
			(2, 1, 4, 'sample terms', 'in_progress'),
			(3, 2, 4, 'sample terms', 'in_progress'),
			(4, 2, 5, 'sample terms', 'terminated')`,
		`INSERT INTO jobs (contract_id, description, price, paid, payment_date) VALUES
			(1, 'magic wand polishing', 20000, false, NULL),
			(1, 'broom repair', 20100, false, NULL),
			(2, 'kernel patch review', 200000, false, NULL),
			(3, 'build a website', 20000, true, '2020-08-15T19:11:26Z'),
			(3, 'fix the website', 20000, true, '2020-08-16T19:11:26Z'),
			(4, 'wedding gig', 20000, true, '2020-08-17T19:11:26Z')`,
		`SELECT setval('profiles_id_seq', (SELECT MAX(id) FROM profiles))`,
		`SELECT setval('contracts_id_seq', (SELECT MAX(id) FROM contracts))`,
	}
	for _, stmt := range seed {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
	}
	log.Println("Demo data seeded")
	return nil
}
