// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"eaglebank/internal/domain"

	"github.com/google/uuid"
)

// TransactionRepository defines the interface for transfer record operations.
// Transactions are write-once; there is no update or delete.
type TransactionRepository interface {
	// CreateTransaction inserts the record of a completed transfer.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetTransactionByID retrieves a transaction by id, util.ErrNotFound if absent.
	GetTransactionByID(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.Transaction, error)
	// ListTransactionsByAccountID retrieves every transaction where the
	// account is source or destination, newest first.
	ListTransactionsByAccountID(ctx context.Context, q DBExecutor, accountID uuid.UUID) ([]domain.Transaction, error)
	// ListTransactionsByAccountIDs retrieves every transaction touching any
	// of the given accounts, newest first.
	ListTransactionsByAccountIDs(ctx context.Context, q DBExecutor, accountIDs []uuid.UUID) ([]domain.Transaction, error)
}
