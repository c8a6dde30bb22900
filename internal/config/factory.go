package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/openaims/sectorflow/pkg/cache"
	"github.com/openaims/sectorflow/pkg/errors"
	"github.com/openaims/sectorflow/pkg/store"
)

// NewCache constructs the configured cache backend.
func (c *Config) NewCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case "null":
		return cache.NewNullCache(), nil
	case "file":
		dir := c.Cache.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve cache dir")
			}
			dir = filepath.Join(home, ".cache", "sectorflow")
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open file cache at %s", dir)
		}
		return fc, nil
	case "redis":
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open redis cache")
		}
		return rc, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
}

// NewStore constructs the configured saved-view backend.
func (c *Config) NewStore(ctx context.Context) (store.Store, error) {
	switch c.Store.Backend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		ms, err := store.NewMongoStore(ctx, store.MongoConfig{
			URI:        c.Store.Mongo.URI,
			Database:   c.Store.Mongo.Database,
			Collection: c.Store.Mongo.Collection,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "open mongo store")
		}
		return ms, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
}
