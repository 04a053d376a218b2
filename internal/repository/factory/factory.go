// Package factory opens the storage backend selected in the configuration.
package factory

import (
	"context"
	"fmt"

	"biceppump/backend/internal/config"
	"biceppump/backend/internal/repository"
	"biceppump/backend/internal/repository/memory"
	"biceppump/backend/internal/repository/mongo"
	"biceppump/backend/internal/repository/postgres"

	log "github.com/sirupsen/logrus"
)

// NewStore returns the repositories of the configured database driver.
func NewStore(ctx context.Context, cfg config.DatabaseConfig) (*repository.Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		log.Infof("connecting to mongodb database %q", cfg.Name)
		return mongo.NewStore(cfg.URI, cfg.Name)
	case config.DriverPostgres:
		log.Infoln("connecting to postgres")
		return postgres.NewStore(ctx, cfg.URI)
	case config.DriverMemory:
		log.Warnln("using in-memory storage, data is lost on restart")
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
