// Package database provides PostgreSQL connection management with embedded
// schema migrations applied at startup.
package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/catalog-admin/internal/config"
	"github.com/JaimeStill/catalog-admin/internal/lifecycle"
	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// System manages the database connection pool and schema migrations.
type System interface {
	// Start verifies connectivity, applies pending migrations, and registers
	// shutdown handling with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error

	// Connection returns the underlying connection pool.
	Connection() *sql.DB
}

type system struct {
	db     *sql.DB
	cfg    *config.DatabaseConfig
	logger *slog.Logger
}

// New opens the connection pool described by the configuration. The pool is
// not verified until Start runs.
func New(cfg *config.DatabaseConfig, logger *slog.Logger) (System, error) {
	db, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &system{
		db:     db,
		cfg:    cfg,
		logger: logger.With("system", "database"),
	}, nil
}

func (s *system) Start(lc *lifecycle.Coordinator) error {
	ctx, cancel := context.WithTimeout(lc.Context(), s.cfg.ConnTimeoutDuration())
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	if err := s.migrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	s.logger.Info("database ready", "host", s.cfg.Host, "name", s.cfg.Name)

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := s.db.Close(); err != nil {
			s.logger.Error("database close error", "error", err)
		}
	})

	return nil
}

func (s *system) Connection() *sql.DB {
	return s.db
}

func (s *system) migrate() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	driver, err := migratepgx.WithInstance(s.db, &migratepgx.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, s.cfg.Name, driver)
	if err != nil {
		return fmt.Errorf("migrator: %w", err)
	}

	from, _, _ := m.Version()
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			s.logger.Info("database schema up to date", "version", from)
			return nil
		}
		return err
	}

	to, _, _ := m.Version()
	s.logger.Info("database schema migrated", "from", from, "to", to)
	return nil
}
