package container

import (
	"context"
	"fmt"

	"catalog/navigator/internal/catalog"
	"catalog/navigator/internal/client"
	"catalog/navigator/internal/config"
	"catalog/navigator/internal/proxy"
	"catalog/navigator/internal/queue"
	"catalog/navigator/internal/repository"
	"catalog/navigator/internal/service"
	"catalog/navigator/internal/state"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config     *config.Config
	Source     client.Source
	Repository repository.SelectionRepository
	Publisher  queue.Publisher
	Tracker    state.SnapshotTracker
	Loader     *service.Loader

	Service *service.Service

	db *pgxpool.Pool
}

// New creates a new container with all dependencies initialized.
// Postgres and Redis are only connected when enabled in the config.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config:    cfg,
		Publisher: queue.NopPublisher{},
		Tracker:   state.NewMemorySnapshotTracker(),
	}

	source, err := newSource(ctx, cfg.Source)
	if err != nil {
		return nil, err
	}
	container.Source = source

	if cfg.Database.Enabled {
		db, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		container.db = db
		container.Repository = repository.NewSelectionRepository(db)
		log.Info("✅ Connected to database successfully")
	}

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		// Test connection
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			container.Close()
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")

		container.Publisher = queue.NewRedisPublisher(rdb, cfg.Redis)
		container.Tracker = state.NewRedisSnapshotTracker(rdb)
	}

	container.Loader = service.NewLoader(
		source,
		client.NewTreePageParser(cfg.Source.TreeSelector),
		container.Tracker,
		container.Publisher,
		catalog.Options{
			MaxVisibleLevels: cfg.Navigator.MaxVisibleLevels,
			SearchLimit:      cfg.Navigator.SearchLimit,
		},
	)

	container.Service = service.NewService(container.Loader, container.Repository, container.Publisher, cfg.Session.Owner)

	return container, nil
}

func newSource(ctx context.Context, cfg config.SourceConfig) (client.Source, error) {
	if cfg.File != "" {
		log.Infof("📄 Reading categories from %s", cfg.File)
		return client.NewFileSource(cfg.File, client.Format(cfg.Format)), nil
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("no category source configured: set source.url or source.file")
	}

	// Initialize proxy rotator
	rotator, err := proxy.NewRotator(ctx, cfg.Proxies, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize proxy rotator: %w", err)
	}

	log.Infof("🌐 Fetching categories from %s", cfg.URL)
	return client.NewHTTPSource(cfg, rotator), nil
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Debug("Shutting down container...")

	if c.Service != nil {
		c.Service.Unmount()
	}
	if c.db != nil {
		c.db.Close()
	}
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			return fmt.Errorf("failed to close publisher: %w", err)
		}
	}

	log.Debug("Container shut down successfully")
	return nil
}
