// internal/service/user_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"eaglebank/internal/domain"
	"eaglebank/internal/repository"
	"eaglebank/internal/util"
	"eaglebank/pkg/db"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// CreateUserParams carries the fields for registering a new user.
// Password arrives raw and is stored only as a bcrypt hash.
type CreateUserParams struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
	Address     domain.Address
}

// UpdateUserParams carries the mutable profile fields.
type UpdateUserParams struct {
	Name        string
	Email       string
	PhoneNumber string
	Address     domain.Address
}

// UserService defines the interface for user lifecycle operations.
type UserService interface {
	CreateUser(ctx context.Context, params CreateUserParams) (*domain.User, error)
	GetUser(ctx context.Context, userID uuid.UUID, principal string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, principal string, params UpdateUserParams) (*domain.User, error)
	DeleteUser(ctx context.Context, userID uuid.UUID, principal string) error
	// Authenticate verifies an email/password pair for the login surface.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

type userService struct {
	dbBeginner  db.DBTxBeginner
	dbExecutor  repository.DBExecutor
	userRepo    repository.UserRepository
	accountRepo repository.AccountRepository
	beginTx     db.BeginTxFunc
	commitTx    db.CommitTxFunc
	rollbackTx  db.RollbackTxFunc
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	accountRepo repository.AccountRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) UserService {
	return &userService{
		dbBeginner:  dbBeginner,
		dbExecutor:  dbExecutor,
		userRepo:    userRepo,
		accountRepo: accountRepo,
		beginTx:     beginTx,
		commitTx:    commitTx,
		rollbackTx:  rollbackTx,
	}
}

// CreateUser registers a new user. A second registration with the same
// email fails with ErrEmailTaken.
func (s *userService) CreateUser(ctx context.Context, params CreateUserParams) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("create user: failed to hash password: %w", err)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create user: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create user: transaction controller does not implement DBExecutor")
	}

	_, err = s.userRepo.GetUserByEmail(ctx, txExecutor, params.Email)
	if err == nil {
		return nil, util.ErrEmailTaken
	}
	if !errors.Is(err, util.ErrNotFound) {
		return nil, fmt.Errorf("create user: failed to check existing email: %w", err)
	}

	user := domain.NewUser(params.Name, params.Email, string(hash), params.PhoneNumber, params.Address)
	if err := s.userRepo.CreateUser(ctx, txExecutor, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create user: failed to commit transaction: %w", err)
	}

	return user, nil
}

// GetUser returns a user's record. The principal may only read their own.
func (s *userService) GetUser(ctx context.Context, userID uuid.UUID, principal string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: failed to get user %s: %w", userID, err)
	}
	if user.Email != principal {
		return nil, util.ErrForbidden
	}
	return user, nil
}

// UpdateUser overwrites the profile fields of the principal's own record
// and bumps the updated timestamp.
func (s *userService) UpdateUser(ctx context.Context, userID uuid.UUID, principal string, params UpdateUserParams) (*domain.User, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("update user: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("update user: transaction controller does not implement DBExecutor")
	}

	acting, err := resolvePrincipal(ctx, txExecutor, s.userRepo, principal)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if err := assertIsSelf(acting, userID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, txExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("update user: failed to get user %s: %w", userID, err)
	}

	user.Name = params.Name
	user.Email = params.Email
	user.PhoneNumber = params.PhoneNumber
	user.Address = params.Address
	user.Touch()

	if err := s.userRepo.UpdateUser(ctx, txExecutor, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("update user: failed to commit transaction: %w", err)
	}

	return user, nil
}

// DeleteUser removes the principal's own record. A user who still owns
// bank accounts cannot be deleted.
func (s *userService) DeleteUser(ctx context.Context, userID uuid.UUID, principal string) error {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return fmt.Errorf("delete user: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("delete user: transaction controller does not implement DBExecutor")
	}

	acting, err := resolvePrincipal(ctx, txExecutor, s.userRepo, principal)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if err := assertIsSelf(acting, userID); err != nil {
		return err
	}

	count, err := s.accountRepo.CountAccountsByUserID(ctx, txExecutor, userID)
	if err != nil {
		return fmt.Errorf("delete user: failed to count accounts: %w", err)
	}
	if count > 0 {
		return util.ErrUserHasAccounts
	}

	if err := s.userRepo.DeleteUser(ctx, txExecutor, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("delete user: failed to commit transaction: %w", err)
	}

	return nil
}

// Authenticate verifies an email/password pair and returns the user on
// success. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, s.dbExecutor, email)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}
	return user, nil
}
