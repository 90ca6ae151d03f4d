// internal/domain/user.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Address is a user's postal address, embedded in User.
// Line1 is the only required line.
type Address struct {
	Line1    string `db:"address_line1" json:"line1"`
	Line2    string `db:"address_line2" json:"line2,omitempty"`
	Line3    string `db:"address_line3" json:"line3,omitempty"`
	Town     string `db:"address_town" json:"town,omitempty"`
	County   string `db:"address_county" json:"county,omitempty"`
	Postcode string `db:"address_postcode" json:"postcode,omitempty"`
}

// User represents a registered customer. Email is unique and doubles as
// the authenticated principal identity.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"` // bcrypt hash, never serialized
	PhoneNumber  string    `db:"phone_number" json:"phone_number"`
	Address      `json:"address"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// NewUser creates a new User with a fresh id and both timestamps set to now.
func NewUser(name, email, passwordHash, phoneNumber string, address Address) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		PhoneNumber:  phoneNumber,
		Address:      address,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Touch bumps the last-update timestamp.
func (u *User) Touch() {
	u.UpdatedAt = time.Now().UTC()
}
