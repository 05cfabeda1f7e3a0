package store

import (
	"context"
	"fmt"

	"github.com/retailhub/retailhub-backend/config"
	"github.com/retailhub/retailhub-backend/internal/app/repository"
	"github.com/retailhub/retailhub-backend/internal/db"
	"github.com/retailhub/retailhub-backend/pkg/logger"
	pkgredis "github.com/retailhub/retailhub-backend/pkg/redis"
)

// Open connects the configured backend and returns its repository together
// with a function that releases the backend's connections.
func Open(ctx context.Context, cfg *config.Config, instrument bool) (repository.RetailerRepository, func() error, error) {
	backend := repository.Backend{
		Name:        cfg.Store.Backend,
		FilePath:    cfg.Store.FilePath,
		RedisPrefix: cfg.Redis.KeyPrefix,
		Instrument:  instrument,
	}
	closer := func() error { return nil }

	switch cfg.Store.Backend {
	case config.BackendPostgres:
		if err := db.Initialize(&cfg.Database); err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(db.GetDB()); err != nil {
			db.Close()
			return nil, nil, err
		}
		backend.DB = db.GetDB()
		closer = db.Close

	case config.BackendRedis:
		client, err := pkgredis.Connect(ctx, &cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		backend.Redis = client
		closer = client.Close
	}

	repo, err := repository.NewRetailerRepository(backend)
	if err != nil {
		closer()
		return nil, nil, fmt.Errorf("failed to create retailer repository: %w", err)
	}

	logger.Info("Record store ready", logger.Fields{
		"backend": cfg.Store.Backend,
	})
	return repo, closer, nil
}
