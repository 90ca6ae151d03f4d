// internal/repository/account_repo.go
package repository

import (
	"context"

	"eaglebank/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRepository defines the interface for bank account data operations.
type AccountRepository interface {
	// CreateAccount adds a new bank account.
	CreateAccount(ctx context.Context, q DBExecutor, account *domain.BankAccount) error
	// GetAccountByID retrieves an account by id, util.ErrNotFound if absent.
	GetAccountByID(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.BankAccount, error)
	// GetAccountByIDForUpdate retrieves an account by id under a row lock
	// (SELECT ... FOR UPDATE). Must run inside a transaction; the lock is
	// held until commit or rollback.
	GetAccountByIDForUpdate(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.BankAccount, error)
	// ListAccountsByUserID retrieves all accounts owned by a user.
	ListAccountsByUserID(ctx context.Context, q DBExecutor, userID uuid.UUID) ([]domain.BankAccount, error)
	// UpdateAccount overwrites the mutable descriptive fields of an account.
	// The balance is deliberately not among them; only AdjustBalance moves money.
	UpdateAccount(ctx context.Context, q DBExecutor, account *domain.BankAccount) error
	// AdjustBalance applies a relative balance change (positive or negative)
	// to an account and bumps its updated timestamp.
	AdjustBalance(ctx context.Context, q DBExecutor, id uuid.UUID, delta decimal.Decimal) error
	// DeleteAccount removes an account by id. Historical transactions
	// referencing it are left untouched.
	DeleteAccount(ctx context.Context, q DBExecutor, id uuid.UUID) error
	// CountAccountsByUserID returns how many accounts a user owns.
	CountAccountsByUserID(ctx context.Context, q DBExecutor, userID uuid.UUID) (int64, error)
}
