// Package users manages service accounts: credentials, roles, and the
// login flow that issues access tokens for the API and the dashboard.
package users

import (
	"time"

	"github.com/JaimeStill/catalog-admin/internal/auth"
	"github.com/JaimeStill/catalog-admin/internal/validation"
	"github.com/google/uuid"
)

// User represents a service account. The password hash never leaves this
// package.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      auth.Role `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserCommand contains the data needed to create an account.
type CreateUserCommand struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin editor viewer"`
}

// Validate checks the command against its field rules.
func (c CreateUserCommand) Validate() error {
	if verr := validation.Struct(c); verr != nil {
		return verr
	}
	return nil
}

// UpdateUserCommand updates account metadata. A nil password keeps the
// current hash; a nil active flag keeps the current state.
type UpdateUserCommand struct {
	Email    string  `json:"email" validate:"required,email"`
	Role     string  `json:"role" validate:"required,oneof=admin editor viewer"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Active   *bool   `json:"active,omitempty"`
}

// Validate checks the command against its field rules.
func (c UpdateUserCommand) Validate() error {
	if verr := validation.Struct(c); verr != nil {
		return verr
	}
	return nil
}

// LoginCommand carries login credentials.
type LoginCommand struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate checks the command against its field rules.
func (c LoginCommand) Validate() error {
	if verr := validation.Struct(c); verr != nil {
		return verr
	}
	return nil
}

// LoginResult pairs an issued token with the authenticated account.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
