// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Transaction is an immutable record of one completed transfer between two
// accounts. Account references are weak identifiers: deleting an account
// leaves its historical transactions in place with a dangling id, and query
// code tolerates the missing referent.
type Transaction struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	FromAccountID uuid.UUID       `db:"from_account_id" json:"from_account_id"`
	ToAccountID   uuid.UUID       `db:"to_account_id" json:"to_account_id"`
	Amount        decimal.Decimal `db:"amount" json:"amount"` // always > 0
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// NewTransaction creates the record for a completed transfer of amount from
// one account to another. Written exactly once, never mutated.
func NewTransaction(fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal) *Transaction {
	return &Transaction{
		ID:            uuid.New(),
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        amount,
		CreatedAt:     time.Now().UTC(),
	}
}
