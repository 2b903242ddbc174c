package storage

import (
	"catalog/app/item"
	"catalog/infra/mongodb"
	"catalog/infra/postgres"
	"catalog/pkg/config"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// NewRepository opens the backend selected by STORAGE_DRIVER.
func NewRepository(ctx context.Context, cfg *config.AppConfig) (item.Repository, error) {
	switch cfg.StorageDriver {
	case config.StorageMongo:
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		repo, err := mongodb.NewMongoRepository(connectCtx, cfg.MongoURI, cfg.DatabaseName, cfg.CollectionName)
		if err != nil {
			return nil, err
		}
		zap.L().Info("Connected to mongo",
			zap.String("database", cfg.DatabaseName),
			zap.String("collection", cfg.CollectionName),
		)
		return repo, nil

	case config.StoragePostgres:
		repo, err := postgres.NewPgRepository(
			cfg.PostgresHost,
			cfg.PostgresDatabase,
			cfg.PostgresUsername,
			cfg.PostgresPassword,
			cfg.PostgresPort,
			cfg.PostgresSSLMode,
		)
		if err != nil {
			return nil, err
		}
		zap.L().Info("Connected to postgres", zap.String("database", cfg.PostgresDatabase))
		return repo, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
