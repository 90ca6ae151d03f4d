// internal/repository/user_repo.go
package repository

import (
	"context"

	"eaglebank/internal/domain"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// CreateUser adds a new user. A duplicate email surfaces as util.ErrEmailTaken.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetUserByID retrieves a user by id, util.ErrNotFound if absent.
	GetUserByID(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.User, error)
	// GetUserByEmail resolves an authenticated principal's email to its user record.
	GetUserByEmail(ctx context.Context, q DBExecutor, email string) (*domain.User, error)
	// UpdateUser overwrites the mutable profile fields of an existing user.
	UpdateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// DeleteUser removes a user by id.
	DeleteUser(ctx context.Context, q DBExecutor, id uuid.UUID) error
}
