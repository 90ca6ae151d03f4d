// internal/repository/postgres/account_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eaglebank/internal/domain"
	"eaglebank/internal/repository"
	"eaglebank/internal/util"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// AccountRepository implements repository.AccountRepository for PostgreSQL.
type AccountRepository struct{}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &AccountRepository{}
}

const accountColumns = `id, user_id, bank_name, account_type, sort_code, account_number, balance, created_at, updated_at`

// CreateAccount inserts a new bank account.
func (r *AccountRepository) CreateAccount(ctx context.Context, q repository.DBExecutor, account *domain.BankAccount) error {
	query := `INSERT INTO bank_accounts (` + accountColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := q.ExecContext(ctx, query,
		account.ID, account.UserID, account.BankName, account.AccountType,
		account.SortCode, account.AccountNumber, account.Balance,
		account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetAccountByID retrieves an account by its id.
func (r *AccountRepository) GetAccountByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.BankAccount, error) {
	var account domain.BankAccount
	query := `SELECT ` + accountColumns + ` FROM bank_accounts WHERE id = $1`
	err := q.GetContext(ctx, &account, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by ID %s: %w", id, err)
	}
	return &account, nil
}

// GetAccountByIDForUpdate retrieves an account under a row lock so that a
// concurrent ledger operation on the same account blocks until this
// transaction commits or rolls back.
func (r *AccountRepository) GetAccountByIDForUpdate(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.BankAccount, error) {
	var account domain.BankAccount
	query := `SELECT ` + accountColumns + ` FROM bank_accounts WHERE id = $1 FOR UPDATE`
	err := q.GetContext(ctx, &account, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock account %s: %w", id, err)
	}
	return &account, nil
}

// ListAccountsByUserID retrieves all accounts owned by a user.
func (r *AccountRepository) ListAccountsByUserID(ctx context.Context, q repository.DBExecutor, userID uuid.UUID) ([]domain.BankAccount, error) {
	accounts := []domain.BankAccount{}
	query := `SELECT ` + accountColumns + ` FROM bank_accounts WHERE user_id = $1 ORDER BY created_at`
	if err := q.SelectContext(ctx, &accounts, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list accounts for user %s: %w", userID, err)
	}
	return accounts, nil
}

// UpdateAccount overwrites the descriptive fields of an account. The balance
// column is untouched; money moves only through AdjustBalance.
func (r *AccountRepository) UpdateAccount(ctx context.Context, q repository.DBExecutor, account *domain.BankAccount) error {
	query := `UPDATE bank_accounts SET
				bank_name = $1, account_type = $2, sort_code = $3, account_number = $4, updated_at = $5
			  WHERE id = $6`
	result, err := q.ExecContext(ctx, query,
		account.BankName, account.AccountType, account.SortCode, account.AccountNumber,
		account.UpdatedAt, account.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating account %s: %w", account.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// AdjustBalance applies a relative balance change to an account. The
// CHECK (balance >= 0) constraint backs the service-level funds check.
func (r *AccountRepository) AdjustBalance(ctx context.Context, q repository.DBExecutor, id uuid.UUID, delta decimal.Decimal) error {
	query := `UPDATE bank_accounts SET balance = balance + $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, delta, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to adjust balance of account %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after adjusting balance of account %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account. Its historical transactions keep their
// weak references to the now-missing id.
func (r *AccountRepository) DeleteAccount(ctx context.Context, q repository.DBExecutor, id uuid.UUID) error {
	result, err := q.ExecContext(ctx, `DELETE FROM bank_accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting account %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// CountAccountsByUserID returns how many accounts a user owns.
func (r *AccountRepository) CountAccountsByUserID(ctx context.Context, q repository.DBExecutor, userID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM bank_accounts WHERE user_id = $1`
	if err := q.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count accounts for user %s: %w", userID, err)
	}
	return count, nil
}
