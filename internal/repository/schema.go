package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrNotFound is returned by every lookup that matches no row.
var ErrNotFound = errors.New("record not found")

// ErrStaleVersion is returned when a versioned update loses to a concurrent write.
var ErrStaleVersion = errors.New("record was modified concurrently")

var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id                                    TEXT PRIMARY KEY,
		account_number                        TEXT NOT NULL UNIQUE,
		account_type                          TEXT NOT NULL,
		customer_type                         TEXT NOT NULL,
		customer_id                           TEXT NOT NULL,
		balance                               NUMERIC NOT NULL,
		status                                TEXT NOT NULL,
		monthly_movements                     INTEGER NOT NULL DEFAULT 0,
		maintenance_fee                       NUMERIC NOT NULL DEFAULT 0,
		max_monthly_movements_no_fee          INTEGER NOT NULL DEFAULT 0,
		transaction_commission_fee_percentage NUMERIC NOT NULL DEFAULT 0,
		holders                               JSONB NOT NULL DEFAULT '[]',
		signers                               JSONB NOT NULL DEFAULT '[]',
		type_details                          JSONB NOT NULL DEFAULT '{}',
		created_at                            TIMESTAMPTZ NOT NULL,
		version                               INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_customer_id ON accounts (customer_id)`,
	`CREATE TABLE IF NOT EXISTS debit_cards (
		id           TEXT PRIMARY KEY,
		card_number  TEXT NOT NULL UNIQUE,
		customer_id  TEXT NOT NULL,
		associations JSONB NOT NULL DEFAULT '[]',
		created_at   TIMESTAMPTZ NOT NULL,
		version      INTEGER NOT NULL DEFAULT 1
	)`,
}

// EnsureSchema creates the tables the service needs. It is safe to run on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	for _, ddl := range schema {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

const uniqueViolation = pq.ErrorCode("23505")

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

type rowScanner interface {
	Scan(dest ...any) error
}
