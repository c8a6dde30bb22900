// Package config loads server and CLI configuration from TOML files.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/openaims/sectorflow/pkg/errors"
	"github.com/openaims/sectorflow/pkg/layout"
)

// Config is the top-level configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Layout LayoutConfig `toml:"layout"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Listen is the address the HTTP server binds to.
	Listen string `toml:"listen"`

	// RequestTimeoutSeconds bounds request handling time.
	RequestTimeoutSeconds int `toml:"request_timeout_seconds"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "null", "file", "redis".
	Backend string `toml:"backend"`

	// Dir is the cache directory for the file backend.
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig holds Redis connection settings for the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StoreConfig selects and configures the saved-view backend.
type StoreConfig struct {
	// Backend is one of "memory", "mongo".
	Backend string `toml:"backend"`

	Mongo MongoConfig `toml:"mongo"`
}

// MongoConfig holds MongoDB connection settings for the mongo store backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// LayoutConfig holds default layout parameters, used when a request or
// CLI invocation doesn't specify its own.
type LayoutConfig struct {
	Mode   string  `toml:"mode"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Listen:                ":8080",
			RequestTimeoutSeconds: 30,
		},
		Cache: CacheConfig{
			Backend: "null",
		},
		Store: StoreConfig{
			Backend: "memory",
		},
		Layout: LayoutConfig{
			Mode:   "flow",
			Width:  975,
			Height: 800,
		},
	}
}

// Load reads a TOML config file and merges it over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config file %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks backend names and layout defaults.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case "null", "file", "redis":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want null, file, or redis)", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.Redis.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis requires cache.redis.addr")
	}

	switch c.Store.Backend {
	case "memory", "mongo":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q (want memory or mongo)", c.Store.Backend)
	}
	if c.Store.Backend == "mongo" && c.Store.Mongo.URI == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "store backend mongo requires store.mongo.uri")
	}

	switch c.Layout.Mode {
	case "flow", "radial":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown layout mode %q (want flow or radial)", c.Layout.Mode)
	}
	if err := errors.ValidateCanvas(c.Layout.Width, c.Layout.Height); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid default canvas")
	}

	if c.Server.RequestTimeoutSeconds <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.request_timeout_seconds must be positive")
	}
	return nil
}

// Canvas returns the default canvas from the layout section.
func (c *Config) Canvas() layout.Canvas {
	return layout.Canvas{Width: c.Layout.Width, Height: c.Layout.Height}
}
