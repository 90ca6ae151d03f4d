// internal/service/account_service_test.go
package service

import (
	"context"
	"testing"

	"eaglebank/internal/domain"
	"eaglebank/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDeposit(t *testing.T) {
	accountID := uuid.New()
	principal := "alice@example.com"
	owner := &domain.User{ID: uuid.New(), Email: principal}

	t.Run("SuccessfulDeposit", func(t *testing.T) {
		ctx := context.Background()
		m := newServiceMocks()
		svc := m.newAccountService()

		amount := decimal.NewFromFloat(100.00)
		initial := &domain.BankAccount{ID: accountID, UserID: owner.ID, Balance: decimal.NewFromFloat(500.00)}
		updated := &domain.BankAccount{ID: accountID, UserID: owner.ID, Balance: decimal.NewFromFloat(600.00)}

		m.txController.On("Commit").Return(nil).Once()
		m.txController.On("Rollback").Return(nil).Maybe()
		m.userRepo.On("GetUserByEmail", ctx, mock.Anything, principal).Return(owner, nil).Once()
		m.accountRepo.On("GetAccountByIDForUpdate", ctx, mock.Anything, accountID).Return(initial, nil).Once()
		m.accountRepo.On("AdjustBalance", ctx, mock.Anything, accountID, amount).Return(nil).Once()
		m.accountRepo.On("GetAccountByID", ctx, mock.Anything, accountID).Return(updated, nil).Once()

		result, err := svc.Deposit(ctx, accountID, amount, principal)

		assert.NoError(t, err)
		assert.True(t, result.Balance.Equal(decimal.NewFromFloat(600.00)))
		mock.AssertExpectationsForObjects(t, m.txController, m.userRepo, m.accountRepo)
	})

	t.Run("NegativeAmount", func(t *testing.T) {
		ctx := context.Background()
		m := newServiceMocks()
		svc := m.newAccountService()

		result, err := svc.Deposit(ctx, accountID, decimal.NewFromFloat(-5.00), principal)

		assert.ErrorIs(t, err, util.ErrValidation)
		assert.Nil(t, result)
		m.txController.AssertNotCalled(t, "Commit")
		m.accountRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ZeroAmount", func(t *testing.T) {
		ctx := context.Background()
		m := newServiceMocks()
		svc := m.newAccountService()

		result, err := svc.Deposit(ctx, accountID, decimal.Zero, principal)

		assert.ErrorIs(t, err, util.ErrValidation)
		assert.Nil(t, result)
	})

	t.Run("AccountNotFound", func(t *testing.T) {
		ctx := context.Background()
		m := newServiceMocks()
		svc := m.newAccountService()

		m.txController.On("Rollback").Return(nil).Once()
		m.userRepo.On("GetUserByEmail", ctx, mock.Anything, principal).Return(owner, nil).Once()
		m.accountRepo.On("GetAccountByIDForUpdate", ctx, mock.Anything, accountID).Return(nil, util.ErrNotFound).Once()

		result, err := svc.Deposit(ctx, accountID, decimal.NewFromFloat(100.00), principal)

		assert.ErrorIs(t, err, util.ErrNotFound)
		assert.Nil(t, result)
		m.txController.AssertNotCalled(t, "Commit")
		mock.AssertExpectationsForObjects(t, m.txController, m.userRepo, m.accountRepo)
	})

	t.Run("NotOwner", func(t *testing.T) {
		ctx := context.Background()
		m := newServiceMocks()
		svc := m.newAccountService()

		otherAccount := &domain.BankAccount{ID: accountID, UserID: uuid.New(), Balance: decimal.NewFromFloat(200.00)}

		m.txController.On("Rollback").Return(nil).Once()
		m.userRepo.On("GetUserByEmail", ctx, mock.Anything, principal).Return(owner, nil).Once()
		m.accountRepo.On("GetAccountByIDForUpdate", ctx, mock.Anything, accountID).Return(otherAccount, nil).Once()

		result, err := svc.Deposit(ctx, accountID, decimal.NewFromFloat(100.00), principal)

		assert.ErrorIs(t, err, util.ErrForbidden)
		assert.Nil(t, result)
		m.accountRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.txController.AssertNotCalled(t, "Commit")
	})
}

func TestWithdraw(t *testing.T) {
	accountID := uuid.New()
	principal := "alice@example.com"
	owner := &domain.User{ID: uuid.New(), Email: principal}

	t.Run("SuccessfulWithdrawal", func(t *testing.T) {
		ctx := context.Background()
		m := newServiceMocks()
		svc := m.newAccountService()

		amount := decimal.NewFromFloat(40.00)
		initial := &domain.BankAccount{ID: accountID, UserID: owner.ID, Balance: decimal.NewFromFloat(100.00)}
		updated := &domain.BankAccount{ID: accountID, UserID: owner.ID, Balance: decimal.NewFromFloat(60.00)}

		m.txController.On("Commit").Return(nil).Once()
		m.txController.On("Rollback").Return(nil).Maybe()
		m.userRepo.On("GetUserByEmail", ctx, mock.Anything, principal).Return(owner, nil).Once()
		m.accountRepo.On("GetAccountByIDForUpdate", ctx, mock.Anything, accountID).Return(initial, nil).Once()
		m.accountRepo.On("AdjustBalance", ctx, mock.Anything, accountID, amount.Neg()).Return(nil).Once()
		m.accountRepo.On("GetAccountByID", ctx, mock.Anything, accountID).Return(updated, nil).Once()

		result, err := svc.Withdraw(ctx, accountID, amount, principal)

		assert.NoError(t, err)
		assert.True(t, result.Balance.Equal(decimal.NewFromFloat(60.00)))
		mock.AssertExpectationsForObjects(t, m.txController, m.userRepo, m.accountRepo)
	})

	t.Run("InsufficientFunds", func(t *testing.T) {
		ctx := context.Background()
		m := newServiceMocks()
		svc := m.newAccountService()

		account := &domain.BankAccount{ID: accountID, UserID: owner.ID, Balance: decimal.NewFromFloat(100.00)}

		m.txController.On("Rollback").Return(nil).Once()
		m.userRepo.On("GetUserByEmail", ctx, mock.Anything, principal).Return(owner, nil).Once()
		m.accountRepo.On("GetAccountByIDForUpdate", ctx, mock.Anything, accountID).Return(account, nil).Once()

		result, err := svc.Withdraw(ctx, accountID, decimal.NewFromFloat(150.00), principal)

		assert.ErrorIs(t, err, util.ErrInsufficientFunds)
		assert.ErrorIs(t, err, util.ErrValidation)
		assert.Nil(t, result)
		m.accountRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.txController.AssertNotCalled(t, "Commit")
		mock.AssertExpectationsForObjects(t, m.txController, m.userRepo, m.accountRepo)
	})

	t.Run("ExactBalanceSucceeds", func(t *testing.T) {
		ctx := context.Background()
		m := newServiceMocks()
		svc := m.newAccountService()

		amount := decimal.NewFromFloat(100.00)
		account := &domain.BankAccount{ID: accountID, UserID: owner.ID, Balance: decimal.NewFromFloat(100.00)}
		drained := &domain.BankAccount{ID: accountID, UserID: owner.ID, Balance: decimal.Zero}

		m.txController.On("Commit").Return(nil).Once()
		m.txController.On("Rollback").Return(nil).Maybe()
		m.userRepo.On("GetUserByEmail", ctx, mock.Anything, principal).Return(owner, nil).Once()
		m.accountRepo.On("GetAccountByIDForUpdate", ctx, mock.Anything, accountID).Return(account, nil).Once()
		m.accountRepo.On("AdjustBalance", ctx, mock.Anything, accountID, amount.Neg()).Return(nil).Once()
		m.accountRepo.On("GetAccountByID", ctx, mock.Anything, accountID).Return(drained, nil).Once()

		result, err := svc.Withdraw(ctx, accountID, amount, principal)

		assert.NoError(t, err)
		assert.True(t, result.Balance.IsZero())
	})
}

func TestCreateAccount(t *testing.T) {
	principal := "alice@example.com"
	owner := &domain.User{ID: uuid.New(), Email: principal}
	params := AccountParams{BankName: "Eagle Bank", AccountType: "personal", SortCode: "10-10-10", AccountNumber: "01234567"}

	t.Run("Success", func(t *testing.T) {
		ctx := context.Background()
		m := newServiceMocks()
		svc := m.newAccountService()

		m.txController.On("Commit").Return(nil).Once()
		m.txController.On("Rollback").Return(nil).Maybe()
		m.userRepo.On("GetUserByEmail", ctx, mock.Anything, principal).Return(owner, nil).Once()
		m.accountRepo.On("CreateAccount", ctx, mock.Anything, mock.AnythingOfType("*domain.BankAccount")).Return(nil).Once()

		account, err := svc.CreateAccount(ctx, principal, params, decimal.NewFromFloat(25.50))

		assert.NoError(t, err)
		assert.Equal(t, owner.ID, account.UserID)
		assert.True(t, account.Balance.Equal(decimal.NewFromFloat(25.50)))
		assert.NotEqual(t, uuid.Nil, account.ID)
		mock.AssertExpectationsForObjects(t, m.txController, m.userRepo, m.accountRepo)
	})

	t.Run("NegativeInitialBalance", func(t *testing.T) {
		ctx := context.Background()
		m := newServiceMocks()
		svc := m.newAccountService()

		account, err := svc.CreateAccount(ctx, principal, params, decimal.NewFromFloat(-1.00))

		assert.ErrorIs(t, err, util.ErrValidation)
		assert.Nil(t, account)
		m.accountRepo.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetAccount(t *testing.T) {
	principal := "alice@example.com"
	owner := &domain.User{ID: uuid.New(), Email: principal}
	accountID := uuid.New()

	t.Run("OwnedAccount", func(t *testing.T) {
		ctx := context.Background()
		m := newServiceMocks()
		svc := m.newAccountService()

		account := &domain.BankAccount{ID: accountID, UserID: owner.ID, Balance: decimal.NewFromFloat(10.00)}

		m.userRepo.On("GetUserByEmail", ctx, mock.Anything, principal).Return(owner, nil).Once()
		m.accountRepo.On("GetAccountByID", ctx, mock.Anything, accountID).Return(account, nil).Once()

		result, err := svc.GetAccount(ctx, accountID, principal)

		assert.NoError(t, err)
		assert.Equal(t, accountID, result.ID)
	})

	t.Run("ForeignAccountReportsNotFound", func(t *testing.T) {
		// "Exists but not yours" must be indistinguishable from missing on
		// the read path.
		ctx := context.Background()
		m := newServiceMocks()
		svc := m.newAccountService()

		account := &domain.BankAccount{ID: accountID, UserID: uuid.New()}

		m.userRepo.On("GetUserByEmail", ctx, mock.Anything, principal).Return(owner, nil).Once()
		m.accountRepo.On("GetAccountByID", ctx, mock.Anything, accountID).Return(account, nil).Once()

		result, err := svc.GetAccount(ctx, accountID, principal)

		assert.ErrorIs(t, err, util.ErrNotFound)
		assert.NotErrorIs(t, err, util.ErrForbidden)
		assert.Nil(t, result)
	})
}

func TestUpdateAccountDoesNotTouchBalance(t *testing.T) {
	ctx := context.Background()
	principal := "alice@example.com"
	owner := &domain.User{ID: uuid.New(), Email: principal}
	accountID := uuid.New()

	m := newServiceMocks()
	svc := m.newAccountService()

	account := &domain.BankAccount{ID: accountID, UserID: owner.ID, Balance: decimal.NewFromFloat(77.00), BankName: "Old Bank"}

	m.txController.On("Commit").Return(nil).Once()
	m.txController.On("Rollback").Return(nil).Maybe()
	m.userRepo.On("GetUserByEmail", ctx, mock.Anything, principal).Return(owner, nil).Once()
	m.accountRepo.On("GetAccountByID", ctx, mock.Anything, accountID).Return(account, nil).Once()
	m.accountRepo.On("UpdateAccount", ctx, mock.Anything, mock.AnythingOfType("*domain.BankAccount")).Return(nil).Once()

	result, err := svc.UpdateAccount(ctx, accountID, principal, AccountParams{
		BankName: "New Bank", AccountType: "personal", SortCode: "20-20-20", AccountNumber: "76543210",
	})

	assert.NoError(t, err)
	assert.Equal(t, "New Bank", result.BankName)
	assert.True(t, result.Balance.Equal(decimal.NewFromFloat(77.00)))
}
