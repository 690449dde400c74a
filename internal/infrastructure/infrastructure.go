// Package infrastructure provides core service initialization for application
// startup. It assembles the shared dependencies (logging, database, storage,
// cache, events) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/catalog-admin/internal/cache"
	"github.com/JaimeStill/catalog-admin/internal/config"
	"github.com/JaimeStill/catalog-admin/internal/database"
	"github.com/JaimeStill/catalog-admin/internal/events"
	"github.com/JaimeStill/catalog-admin/internal/lifecycle"
	"github.com/JaimeStill/catalog-admin/internal/storage"
	"github.com/JaimeStill/catalog-admin/pkg/logging"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, database access, file storage, caching, and event publishing.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Cache     cache.System
	Events    events.Publisher
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
// Cache and events fall back to no-op systems when their sections are
// disabled, so domain code never branches on their availability.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store := storage.NewFilesystem(&cfg.Storage, logger)

	cacheSys := cache.NewNoop()
	if cfg.Cache.Enabled {
		cacheSys = cache.NewRedis(&cfg.Cache, logger)
	}

	publisher := events.NewNoop()
	if cfg.Events.Enabled {
		publisher = events.NewAMQP(&cfg.Events, logger)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Cache:     cacheSys,
		Events:    publisher,
	}, nil
}

// Start initializes all infrastructure systems and registers them with the
// lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	if err := i.Cache.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("cache start failed: %w", err)
	}
	if err := i.Events.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("events start failed: %w", err)
	}
	return nil
}
