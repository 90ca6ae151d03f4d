// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eaglebank/internal/domain"
	"eaglebank/internal/repository"
	"eaglebank/internal/util"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

const transactionColumns = `id, from_account_id, to_account_id, amount, created_at`

// CreateTransaction inserts the record of a completed transfer.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
              VALUES ($1, $2, $3, $4, $5)`
	_, err := q.ExecContext(ctx, query,
		transaction.ID, transaction.FromAccountID, transaction.ToAccountID,
		transaction.Amount, transaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetTransactionByID retrieves a transaction by its id.
func (r *TransactionRepository) GetTransactionByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Transaction, error) {
	var transaction domain.Transaction
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	err := q.GetContext(ctx, &transaction, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by ID %s: %w", id, err)
	}
	return &transaction, nil
}

// ListTransactionsByAccountID retrieves every transaction where the account
// is source or destination, most recent first.
func (r *TransactionRepository) ListTransactionsByAccountID(ctx context.Context, q repository.DBExecutor, accountID uuid.UUID) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE from_account_id = $1 OR to_account_id = $1
		ORDER BY created_at DESC`
	if err := q.SelectContext(ctx, &transactions, query, accountID); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for account %s: %w", accountID, err)
	}
	return transactions, nil
}

// ListTransactionsByAccountIDs retrieves every transaction touching any of
// the given accounts, most recent first.
func (r *TransactionRepository) ListTransactionsByAccountIDs(ctx context.Context, q repository.DBExecutor, accountIDs []uuid.UUID) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	if len(accountIDs) == 0 {
		return transactions, nil
	}
	ids := make([]string, len(accountIDs))
	for i, id := range accountIDs {
		ids[i] = id.String()
	}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE from_account_id = ANY($1) OR to_account_id = ANY($1)
		ORDER BY created_at DESC`
	if err := q.SelectContext(ctx, &transactions, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for %d accounts: %w", len(accountIDs), err)
	}
	return transactions, nil
}
