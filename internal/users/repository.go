package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/catalog-admin/internal/auth"
	"github.com/JaimeStill/catalog-admin/pkg/pagination"
	"github.com/JaimeStill/catalog-admin/pkg/query"
	"github.com/JaimeStill/catalog-admin/pkg/repository"
	"github.com/google/uuid"
)

type repo struct {
	db         *sql.DB
	tokens     *auth.Tokens
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an account repository that issues tokens through the given
// token source.
func New(db *sql.DB, tokens *auth.Tokens, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		tokens:     tokens,
		logger:     logger.With("system", "users"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[User], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Username", "Email")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Limit, page.Offset)
	users, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanUser)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}

	result := pagination.NewPageResult(users, total, page)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*User, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		BuildSingle("ID", id)

	user, err := repository.QueryOne(ctx, r.db, q, args, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &user, nil
}

func (r *repo) Login(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		SELECT id, username, email, role, active, created_at, updated_at, password_hash
		FROM users
		WHERE email = $1`

	var user User
	var hash string
	err := r.db.QueryRowContext(ctx, q, cmd.Email).Scan(
		&user.ID, &user.Username, &user.Email,
		&user.Role, &user.Active, &user.CreatedAt, &user.UpdatedAt, &hash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("query credentials: %w", err)
	}

	if !user.Active {
		return nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(hash, cmd.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := r.tokens.Issue(auth.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	r.logger.Info("user logged in", "id", user.ID, "username", user.Username)
	return &LoginResult{Token: token, User: user}, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateUserCommand) (*User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	q := `
		INSERT INTO users(username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, email, role, active, created_at, updated_at`

	user, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (User, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.Username, cmd.Email, hash, cmd.Role}, scanUser)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user created", "id", user.ID, "username", user.Username, "role", user.Role)
	return &user, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateUserCommand) (*User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var hash *string
	if cmd.Password != nil {
		h, err := auth.HashPassword(*cmd.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hash = &h
	}

	q := `
		UPDATE users
		SET email = $2,
			role = $3,
			active = COALESCE($4, active),
			password_hash = COALESCE($5, password_hash),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, username, email, role, active, created_at, updated_at`

	user, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (User, error) {
		return repository.QueryOne(ctx, tx, q, []any{id, cmd.Email, cmd.Role, cmd.Active, hash}, scanUser)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user updated", "id", user.ID, "username", user.Username)
	return &user, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := `DELETE FROM users WHERE id = $1`

	if err := repository.ExecExpectOne(ctx, r.db, q, id); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user deleted", "id", id)
	return nil
}
