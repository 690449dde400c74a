package users

import (
	"context"

	"github.com/JaimeStill/catalog-admin/pkg/pagination"
	"github.com/google/uuid"
)

// System defines the interface for account management operations.
type System interface {
	// List returns a paginated list of accounts with optional filtering.
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[User], error)

	// Find returns a single account by id.
	Find(ctx context.Context, id uuid.UUID) (*User, error)

	// Login verifies credentials and issues an access token. Unknown
	// emails, wrong passwords, and inactive accounts all return
	// ErrInvalidCredentials.
	Login(ctx context.Context, cmd LoginCommand) (*LoginResult, error)

	// Create creates a new account with a hashed password.
	Create(ctx context.Context, cmd CreateUserCommand) (*User, error)

	// Update updates account metadata and optionally rotates the password.
	Update(ctx context.Context, id uuid.UUID, cmd UpdateUserCommand) (*User, error)

	// Delete removes an account.
	Delete(ctx context.Context, id uuid.UUID) error
}
