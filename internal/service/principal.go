// internal/service/principal.go
package service

import (
	"context"
	"fmt"

	"eaglebank/internal/domain"
	"eaglebank/internal/repository"
)

// resolvePrincipal maps an authenticated principal's email to its user
// record. Every operation starts here to turn "who is calling" into a
// concrete user id. A principal without a user record is ErrNotFound.
func resolvePrincipal(ctx context.Context, q repository.DBExecutor, users repository.UserRepository, email string) (*domain.User, error) {
	user, err := users.GetUserByEmail(ctx, q, email)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve principal: %w", err)
	}
	return user, nil
}
