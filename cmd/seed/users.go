package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JaimeStill/catalog-admin/internal/auth"
)

func init() {
	registerSeeder(&UserSeeder{})
}

// UserSeeder seeds one service account per role. Accounts are saved by
// email, so repeated runs refresh rather than duplicate them.
type UserSeeder struct{}

func (s *UserSeeder) Name() string {
	return "users"
}

func (s *UserSeeder) Description() string {
	return "Seeds one service account per role (admin, editor, viewer)"
}

type seedUser struct {
	Username string
	Email    string
	Password string
	Role     auth.Role
}

var seedUsers = []seedUser{
	{Username: "admin", Email: "admin@example.com", Password: "admin-dev-password", Role: auth.RoleAdmin},
	{Username: "editor", Email: "editor@example.com", Password: "editor-dev-password", Role: auth.RoleEditor},
	{Username: "viewer", Email: "viewer@example.com", Password: "viewer-dev-password", Role: auth.RoleViewer},
}

func (s *UserSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	const stmt = `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE
		SET username = EXCLUDED.username,
		    password_hash = EXCLUDED.password_hash,
		    role = EXCLUDED.role,
		    updated_at = now()`

	for _, u := range seedUsers {
		hash, err := auth.HashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.Email, err)
		}

		if _, err := tx.ExecContext(ctx, stmt, u.Username, u.Email, hash, string(u.Role)); err != nil {
			return fmt.Errorf("save user %s: %w", u.Email, err)
		}
	}

	return nil
}
