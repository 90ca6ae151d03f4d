// internal/service/authz.go
package service

import (
	"eaglebank/internal/domain"
	"eaglebank/internal/util"

	"github.com/google/uuid"
)

// Ownership predicates gating every read and mutation. They are pure checks:
// no retries, no side effects; a failure is terminal for the request.

// assertOwnsAccount fails with ErrForbidden unless the account is owned by
// the acting user.
func assertOwnsAccount(user *domain.User, account *domain.BankAccount) error {
	if account.UserID != user.ID {
		return util.ErrForbidden
	}
	return nil
}

// assertIsSelf fails with ErrForbidden unless the acting user is the target.
func assertIsSelf(user *domain.User, targetUserID uuid.UUID) error {
	if user.ID != targetUserID {
		return util.ErrForbidden
	}
	return nil
}

// assertParty fails with ErrForbidden unless the acting user owns the source
// or destination account of a transaction. Either account may be nil when it
// has been deleted since the transfer; a missing account grants nothing.
func assertParty(user *domain.User, from, to *domain.BankAccount) error {
	if from != nil && from.UserID == user.ID {
		return nil
	}
	if to != nil && to.UserID == user.ID {
		return nil
	}
	return util.ErrForbidden
}
