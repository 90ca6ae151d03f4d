// internal/domain/account.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// BankAccount is a named balance owned by exactly one user.
// The balance is NUMERIC(20, 2) in the DB and never drops below zero;
// it is mutated only through the ledger operations (deposit, withdraw,
// transfer), never written directly.
type BankAccount struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	UserID        uuid.UUID       `db:"user_id" json:"user_id"`
	BankName      string          `db:"bank_name" json:"bank_name"`
	AccountType   string          `db:"account_type" json:"account_type"`
	SortCode      string          `db:"sort_code" json:"sort_code"`
	AccountNumber string          `db:"account_number" json:"account_number"`
	Balance       decimal.Decimal `db:"balance" json:"balance"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// NewBankAccount creates a new BankAccount owned by userID with the given
// opening balance. The caller is responsible for validating the balance.
func NewBankAccount(userID uuid.UUID, bankName, accountType, sortCode, accountNumber string, balance decimal.Decimal) *BankAccount {
	now := time.Now().UTC()
	return &BankAccount{
		ID:            uuid.New(),
		UserID:        userID,
		BankName:      bankName,
		AccountType:   accountType,
		SortCode:      sortCode,
		AccountNumber: accountNumber,
		Balance:       balance,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Touch bumps the last-update timestamp.
func (a *BankAccount) Touch() {
	a.UpdatedAt = time.Now().UTC()
}
