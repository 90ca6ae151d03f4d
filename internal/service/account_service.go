// internal/service/account_service.go
package service

import (
	"context"
	"fmt"

	"eaglebank/internal/domain"
	"eaglebank/internal/repository"
	"eaglebank/internal/util"
	"eaglebank/pkg/db"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountParams carries the descriptive fields of a bank account, used for
// both creation and update. The balance is separate: it is supplied once at
// creation and after that moves only through the ledger operations.
type AccountParams struct {
	BankName      string
	AccountType   string
	SortCode      string
	AccountNumber string
}

// AccountService defines account CRUD and the single-account ledger
// operations (deposit, withdraw).
//
// Ownership policy: reads collapse "exists but not yours" into ErrNotFound
// so account ids cannot be probed for existence; mutations report
// ErrForbidden.
type AccountService interface {
	CreateAccount(ctx context.Context, principal string, params AccountParams, initialBalance decimal.Decimal) (*domain.BankAccount, error)
	ListAccounts(ctx context.Context, principal string) ([]domain.BankAccount, error)
	GetAccount(ctx context.Context, accountID uuid.UUID, principal string) (*domain.BankAccount, error)
	UpdateAccount(ctx context.Context, accountID uuid.UUID, principal string, params AccountParams) (*domain.BankAccount, error)
	DeleteAccount(ctx context.Context, accountID uuid.UUID, principal string) error
	Deposit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, principal string) (*domain.BankAccount, error)
	Withdraw(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, principal string) (*domain.BankAccount, error)
}

type accountService struct {
	dbBeginner  db.DBTxBeginner
	dbExecutor  repository.DBExecutor
	userRepo    repository.UserRepository
	accountRepo repository.AccountRepository
	beginTx     db.BeginTxFunc
	commitTx    db.CommitTxFunc
	rollbackTx  db.RollbackTxFunc
}

// NewAccountService creates a new instance of AccountService.
func NewAccountService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	accountRepo repository.AccountRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) AccountService {
	return &accountService{
		dbBeginner:  dbBeginner,
		dbExecutor:  dbExecutor,
		userRepo:    userRepo,
		accountRepo: accountRepo,
		beginTx:     beginTx,
		commitTx:    commitTx,
		rollbackTx:  rollbackTx,
	}
}

// CreateAccount opens a new account owned by the principal. The opening
// balance must not be negative.
func (s *accountService) CreateAccount(ctx context.Context, principal string, params AccountParams, initialBalance decimal.Decimal) (*domain.BankAccount, error) {
	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance cannot be negative", util.ErrValidation)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create account: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create account: transaction controller does not implement DBExecutor")
	}

	owner, err := resolvePrincipal(ctx, txExecutor, s.userRepo, principal)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	account := domain.NewBankAccount(owner.ID, params.BankName, params.AccountType, params.SortCode, params.AccountNumber, initialBalance)
	if err := s.accountRepo.CreateAccount(ctx, txExecutor, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create account: failed to commit transaction: %w", err)
	}

	return account, nil
}

// ListAccounts returns all accounts owned by the principal.
func (s *accountService) ListAccounts(ctx context.Context, principal string) ([]domain.BankAccount, error) {
	owner, err := resolvePrincipal(ctx, s.dbExecutor, s.userRepo, principal)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	accounts, err := s.accountRepo.ListAccountsByUserID(ctx, s.dbExecutor, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// GetAccount returns an account the principal owns. An account owned by
// someone else is reported as ErrNotFound, same as a missing one.
func (s *accountService) GetAccount(ctx context.Context, accountID uuid.UUID, principal string) (*domain.BankAccount, error) {
	owner, err := resolvePrincipal(ctx, s.dbExecutor, s.userRepo, principal)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	account, err := s.accountRepo.GetAccountByID(ctx, s.dbExecutor, accountID)
	if err != nil {
		return nil, fmt.Errorf("get account: failed to get account %s: %w", accountID, err)
	}
	if account.UserID != owner.ID {
		return nil, util.ErrNotFound
	}
	return account, nil
}

// UpdateAccount overwrites the descriptive fields of an account the
// principal owns and bumps the updated timestamp.
func (s *accountService) UpdateAccount(ctx context.Context, accountID uuid.UUID, principal string, params AccountParams) (*domain.BankAccount, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("update account: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("update account: transaction controller does not implement DBExecutor")
	}

	owner, err := resolvePrincipal(ctx, txExecutor, s.userRepo, principal)
	if err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}

	account, err := s.accountRepo.GetAccountByID(ctx, txExecutor, accountID)
	if err != nil {
		return nil, fmt.Errorf("update account: failed to get account %s: %w", accountID, err)
	}
	if err := assertOwnsAccount(owner, account); err != nil {
		return nil, err
	}

	account.BankName = params.BankName
	account.AccountType = params.AccountType
	account.SortCode = params.SortCode
	account.AccountNumber = params.AccountNumber
	account.Touch()

	if err := s.accountRepo.UpdateAccount(ctx, txExecutor, account); err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("update account: failed to commit transaction: %w", err)
	}

	return account, nil
}

// DeleteAccount removes an account the principal owns. Historical
// transactions referencing the account are left in place.
func (s *accountService) DeleteAccount(ctx context.Context, accountID uuid.UUID, principal string) error {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return fmt.Errorf("delete account: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("delete account: transaction controller does not implement DBExecutor")
	}

	owner, err := resolvePrincipal(ctx, txExecutor, s.userRepo, principal)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	account, err := s.accountRepo.GetAccountByID(ctx, txExecutor, accountID)
	if err != nil {
		return fmt.Errorf("delete account: failed to get account %s: %w", accountID, err)
	}
	if err := assertOwnsAccount(owner, account); err != nil {
		return err
	}

	if err := s.accountRepo.DeleteAccount(ctx, txExecutor, accountID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("delete account: failed to commit transaction: %w", err)
	}

	return nil
}

// Deposit adds money to an account the principal owns. The amount must be
// strictly positive; there is no upper bound on the balance.
func (s *accountService) Deposit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, principal string) (*domain.BankAccount, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: deposit amount must be positive", util.ErrValidation)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("deposit: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("deposit: transaction controller does not implement DBExecutor")
	}

	owner, err := resolvePrincipal(ctx, txExecutor, s.userRepo, principal)
	if err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}

	account, err := s.accountRepo.GetAccountByIDForUpdate(ctx, txExecutor, accountID)
	if err != nil {
		return nil, fmt.Errorf("deposit: failed to get account %s: %w", accountID, err)
	}
	if err := assertOwnsAccount(owner, account); err != nil {
		return nil, err
	}

	if err := s.accountRepo.AdjustBalance(ctx, txExecutor, accountID, amount); err != nil {
		return nil, fmt.Errorf("deposit: failed to adjust balance: %w", err)
	}

	updated, err := s.accountRepo.GetAccountByID(ctx, txExecutor, accountID)
	if err != nil {
		return nil, fmt.Errorf("deposit: failed to re-fetch account %s: %w", accountID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("deposit: failed to commit transaction: %w", err)
	}

	return updated, nil
}

// Withdraw removes money from an account the principal owns. Fails with
// ErrInsufficientFunds if the balance would drop below zero; the balance is
// left unchanged in that case.
func (s *accountService) Withdraw(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, principal string) (*domain.BankAccount, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive", util.ErrValidation)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("withdraw: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("withdraw: transaction controller does not implement DBExecutor")
	}

	owner, err := resolvePrincipal(ctx, txExecutor, s.userRepo, principal)
	if err != nil {
		return nil, fmt.Errorf("withdraw: %w", err)
	}

	account, err := s.accountRepo.GetAccountByIDForUpdate(ctx, txExecutor, accountID)
	if err != nil {
		return nil, fmt.Errorf("withdraw: failed to get account %s: %w", accountID, err)
	}
	if err := assertOwnsAccount(owner, account); err != nil {
		return nil, err
	}

	if account.Balance.LessThan(amount) {
		return nil, util.ErrInsufficientFunds
	}

	if err := s.accountRepo.AdjustBalance(ctx, txExecutor, accountID, amount.Neg()); err != nil {
		return nil, fmt.Errorf("withdraw: failed to adjust balance: %w", err)
	}

	updated, err := s.accountRepo.GetAccountByID(ctx, txExecutor, accountID)
	if err != nil {
		return nil, fmt.Errorf("withdraw: failed to re-fetch account %s: %w", accountID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("withdraw: failed to commit transaction: %w", err)
	}

	return updated, nil
}
