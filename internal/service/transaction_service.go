// internal/service/transaction_service.go
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"eaglebank/internal/domain"
	"eaglebank/internal/repository"
	"eaglebank/internal/util"
	"eaglebank/pkg/db"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionService defines the transfer operation and transfer-history
// queries.
type TransactionService interface {
	// CreateTransfer atomically moves amount from one account to another and
	// records the transfer. The principal must own the source account; the
	// destination may belong to anyone.
	CreateTransfer(ctx context.Context, fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal, principal string) (*domain.Transaction, error)
	// GetTransaction returns a transfer record the principal is a party to.
	GetTransaction(ctx context.Context, transactionID uuid.UUID, principal string) (*domain.Transaction, error)
	// ListTransactions returns every transfer touching any of the
	// principal's accounts, most recent first.
	ListTransactions(ctx context.Context, principal string) ([]domain.Transaction, error)
	// ListTransactionsForAccount returns every transfer touching one account
	// the principal owns, most recent first.
	ListTransactionsForAccount(ctx context.Context, accountID uuid.UUID, principal string) ([]domain.Transaction, error)
}

type transactionService struct {
	dbBeginner      db.DBTxBeginner
	dbExecutor      repository.DBExecutor
	userRepo        repository.UserRepository
	accountRepo     repository.AccountRepository
	transactionRepo repository.TransactionRepository
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewTransactionService creates a new instance of TransactionService.
func NewTransactionService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) TransactionService {
	return &transactionService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		userRepo:        userRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
	}
}

// CreateTransfer debits the source, credits the destination and inserts the
// transfer record as one database transaction. Both account rows are locked
// before the balances are read, in ascending id order so two concurrent
// opposite-direction transfers cannot deadlock.
func (s *transactionService) CreateTransfer(ctx context.Context, fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal, principal string) (*domain.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transfer amount must be positive", util.ErrValidation)
	}
	if fromAccountID == toAccountID {
		return nil, util.ErrSameAccountTransfer
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("transfer: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("transfer: transaction controller does not implement DBExecutor")
	}

	sender, err := resolvePrincipal(ctx, txExecutor, s.userRepo, principal)
	if err != nil {
		return nil, fmt.Errorf("transfer: %w", err)
	}

	from, err := s.lockAccountPair(ctx, txExecutor, fromAccountID, toAccountID)
	if err != nil {
		return nil, err
	}

	if err := assertOwnsAccount(sender, from); err != nil {
		return nil, err
	}

	if from.Balance.LessThan(amount) {
		return nil, util.ErrInsufficientFunds
	}

	if err := s.accountRepo.AdjustBalance(ctx, txExecutor, fromAccountID, amount.Neg()); err != nil {
		return nil, fmt.Errorf("transfer: failed to debit source account: %w", err)
	}
	if err := s.accountRepo.AdjustBalance(ctx, txExecutor, toAccountID, amount); err != nil {
		return nil, fmt.Errorf("transfer: failed to credit destination account: %w", err)
	}

	transaction := domain.NewTransaction(fromAccountID, toAccountID, amount)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, fmt.Errorf("transfer: failed to record transaction: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("transfer: failed to commit transaction: %w", err)
	}

	return transaction, nil
}

// lockAccountPair locks both accounts of a transfer with FOR UPDATE, lower
// id first, and returns the source account. Only the source balance is read
// afterwards; the destination is locked for its balance update. A missing
// account is reported naming which side is gone.
func (s *transactionService) lockAccountPair(ctx context.Context, q repository.DBExecutor, fromID, toID uuid.UUID) (*domain.BankAccount, error) {
	first, second := fromID, toID
	if bytes.Compare(toID[:], fromID[:]) < 0 {
		first, second = toID, fromID
	}

	var source *domain.BankAccount
	for _, id := range []uuid.UUID{first, second} {
		account, err := s.accountRepo.GetAccountByIDForUpdate(ctx, q, id)
		if err != nil {
			side := "source"
			if id == toID {
				side = "destination"
			}
			return nil, fmt.Errorf("transfer: %s account %s: %w", side, id, err)
		}
		if id == fromID {
			source = account
		}
	}
	return source, nil
}

// GetTransaction returns a transfer record if the principal owns its source
// or destination account. An account deleted since the transfer grants
// nothing; its id is still returned in the record.
func (s *transactionService) GetTransaction(ctx context.Context, transactionID uuid.UUID, principal string) (*domain.Transaction, error) {
	user, err := resolvePrincipal(ctx, s.dbExecutor, s.userRepo, principal)
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}

	transaction, err := s.transactionRepo.GetTransactionByID(ctx, s.dbExecutor, transactionID)
	if err != nil {
		return nil, fmt.Errorf("get transaction: failed to get transaction %s: %w", transactionID, err)
	}

	from, err := s.lookupParty(ctx, transaction.FromAccountID)
	if err != nil {
		return nil, err
	}
	to, err := s.lookupParty(ctx, transaction.ToAccountID)
	if err != nil {
		return nil, err
	}

	if err := assertParty(user, from, to); err != nil {
		return nil, err
	}

	return transaction, nil
}

// lookupParty resolves one side of a transfer, tolerating a deleted account.
func (s *transactionService) lookupParty(ctx context.Context, accountID uuid.UUID) (*domain.BankAccount, error) {
	account, err := s.accountRepo.GetAccountByID(ctx, s.dbExecutor, accountID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, nil // tombstone: account deleted after the transfer
		}
		return nil, fmt.Errorf("get transaction: failed to resolve account %s: %w", accountID, err)
	}
	return account, nil
}

// ListTransactions returns the principal's full transfer history across all
// owned accounts, most recent first.
func (s *transactionService) ListTransactions(ctx context.Context, principal string) ([]domain.Transaction, error) {
	user, err := resolvePrincipal(ctx, s.dbExecutor, s.userRepo, principal)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	accounts, err := s.accountRepo.ListAccountsByUserID(ctx, s.dbExecutor, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	accountIDs := make([]uuid.UUID, len(accounts))
	for i, account := range accounts {
		accountIDs[i] = account.ID
	}

	transactions, err := s.transactionRepo.ListTransactionsByAccountIDs(ctx, s.dbExecutor, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

// ListTransactionsForAccount returns the transfer history of one account the
// principal owns. An account owned by someone else is reported as
// ErrNotFound, same as a missing one.
func (s *transactionService) ListTransactionsForAccount(ctx context.Context, accountID uuid.UUID, principal string) ([]domain.Transaction, error) {
	user, err := resolvePrincipal(ctx, s.dbExecutor, s.userRepo, principal)
	if err != nil {
		return nil, fmt.Errorf("list account transactions: %w", err)
	}

	account, err := s.accountRepo.GetAccountByID(ctx, s.dbExecutor, accountID)
	if err != nil {
		return nil, fmt.Errorf("list account transactions: failed to get account %s: %w", accountID, err)
	}
	if account.UserID != user.ID {
		return nil, util.ErrNotFound
	}

	transactions, err := s.transactionRepo.ListTransactionsByAccountID(ctx, s.dbExecutor, accountID)
	if err != nil {
		return nil, fmt.Errorf("list account transactions: %w", err)
	}
	return transactions, nil
}
