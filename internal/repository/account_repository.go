package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/eaglebank/account-service/shared/models"
)

// typeDetails is the JSONB payload holding the type-specific part of an account.
type typeDetails struct {
	Savings   *models.SavingsTerms   `json:"savings,omitempty"`
	FixedTerm *models.FixedTermTerms `json:"fixedTerm,omitempty"`
}

const accountColumns = `id, account_number, account_type, customer_type, customer_id, balance, status,
	monthly_movements, maintenance_fee, max_monthly_movements_no_fee,
	transaction_commission_fee_percentage, holders, signers, type_details, created_at, version`

// AccountWriteRepository handles all state-mutating operations for accounts.
// It operates exclusively against the PostgreSQL write store (source of truth).
type AccountWriteRepository struct {
	db *sql.DB
}

func NewAccountWriteRepository(db *sql.DB) *AccountWriteRepository {
	return &AccountWriteRepository{db: db}
}

func (r *AccountWriteRepository) Create(ctx context.Context, account *models.Account) error {
	holders, signers, details, err := encodeAccountDocuments(account)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, 1)
	`
	_, err = r.db.ExecContext(ctx, query,
		account.ID, account.AccountNumber, account.AccountType, account.CustomerType, account.CustomerID,
		account.Balance, account.Status, account.MonthlyMovements, account.MaintenanceFee,
		account.MaxMonthlyMovementsNoFee, account.TransactionCommissionFeePercentage,
		holders, signers, details, account.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("account %s already exists: %w", account.AccountNumber, err)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	account.Version = 1
	return nil
}

func (r *AccountWriteRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccount(r.db.QueryRowContext(ctx, query, id))
}

func (r *AccountWriteRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1`
	return scanAccount(r.db.QueryRowContext(ctx, query, accountNumber))
}

// ListByCustomer returns every account of the customer, inactive ones included.
func (r *AccountWriteRepository) ListByCustomer(ctx context.Context, customerID string) ([]*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE customer_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []*models.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// Update persists the mutable fields of account if its Version still matches
// the stored row, and bumps Version on success.
func (r *AccountWriteRepository) Update(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts
		SET balance = $3, monthly_movements = $4, status = $5, version = version + 1
		WHERE id = $1 AND version = $2
	`
	result, err := r.db.ExecContext(ctx, query,
		account.ID, account.Version, account.Balance, account.MonthlyMovements, account.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return r.missingOrStale(ctx, `SELECT 1 FROM accounts WHERE id = $1`, account.ID)
	}
	account.Version++
	return nil
}

func (r *AccountWriteRepository) missingOrStale(ctx context.Context, query, id string) error {
	var one int
	err := r.db.QueryRowContext(ctx, query, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check account: %w", err)
	}
	return ErrStaleVersion
}

func encodeAccountDocuments(account *models.Account) (holders, signers, details []byte, err error) {
	if holders, err = json.Marshal(nonNil(account.Holders)); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode holders: %w", err)
	}
	if signers, err = json.Marshal(nonNil(account.Signers)); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode signers: %w", err)
	}
	if details, err = json.Marshal(typeDetails{Savings: account.Savings, FixedTerm: account.FixedTerm}); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode type details: %w", err)
	}
	return holders, signers, details, nil
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var (
		account                   models.Account
		holders, signers, details []byte
	)
	err := row.Scan(
		&account.ID, &account.AccountNumber, &account.AccountType, &account.CustomerType, &account.CustomerID,
		&account.Balance, &account.Status, &account.MonthlyMovements, &account.MaintenanceFee,
		&account.MaxMonthlyMovementsNoFee, &account.TransactionCommissionFeePercentage,
		&holders, &signers, &details, &account.CreatedAt, &account.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if err := decodeAccountDocuments(&account, holders, signers, details); err != nil {
		return nil, err
	}
	return &account, nil
}

func decodeAccountDocuments(account *models.Account, holders, signers, details []byte) error {
	if err := json.Unmarshal(holders, &account.Holders); err != nil {
		return fmt.Errorf("failed to decode holders of account %s: %w", account.ID, err)
	}
	if err := json.Unmarshal(signers, &account.Signers); err != nil {
		return fmt.Errorf("failed to decode signers of account %s: %w", account.ID, err)
	}
	var td typeDetails
	if err := json.Unmarshal(details, &td); err != nil {
		return fmt.Errorf("failed to decode type details of account %s: %w", account.ID, err)
	}
	account.Savings = td.Savings
	account.FixedTerm = td.FixedTerm
	account.CreatedAt = account.CreatedAt.UTC()
	return nil
}

func nonNil(members []models.AccountMember) []models.AccountMember {
	if members == nil {
		return []models.AccountMember{}
	}
	return members
}
