package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/openaims/sectorflow/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sectorflow.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() should validate: %v", err)
	}
	if cfg.Server.Listen != ":8080" {
		t.Errorf("default listen = %q", cfg.Server.Listen)
	}
	if cfg.Layout.Mode != "flow" {
		t.Errorf("default mode = %q", cfg.Layout.Mode)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
listen = ":9090"

[cache]
backend = "file"
dir = "/tmp/sectorflow-cache"

[layout]
mode = "radial"
width = 600
height = 600
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Listen != ":9090" {
		t.Errorf("listen = %q", cfg.Server.Listen)
	}
	// Unset fields keep defaults
	if cfg.Server.RequestTimeoutSeconds != 30 {
		t.Errorf("timeout = %d, want default 30", cfg.Server.RequestTimeoutSeconds)
	}
	if cfg.Cache.Backend != "file" || cfg.Cache.Dir != "/tmp/sectorflow-cache" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Layout.Mode != "radial" {
		t.Errorf("mode = %q", cfg.Layout.Mode)
	}
	if c := cfg.Canvas(); c.Width != 600 || c.Height != 600 {
		t.Errorf("canvas = %+v", c)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %q, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestLoadMalformedTOML(t *testing.T) {
	path := writeConfig(t, "[server\nlisten=")
	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %q, want INVALID_CONFIG", errors.GetCode(err))
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown cache backend", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"redis without addr", func(c *Config) { c.Cache.Backend = "redis" }},
		{"unknown store backend", func(c *Config) { c.Store.Backend = "postgres" }},
		{"mongo without uri", func(c *Config) { c.Store.Backend = "mongo" }},
		{"unknown layout mode", func(c *Config) { c.Layout.Mode = "sunburst" }},
		{"zero canvas", func(c *Config) { c.Layout.Width = 0 }},
		{"negative timeout", func(c *Config) { c.Server.RequestTimeoutSeconds = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestNewCacheBackends(t *testing.T) {
	ctx := context.Background()

	cfg := Default()
	c, err := cfg.NewCache(ctx)
	if err != nil {
		t.Fatalf("null cache: %v", err)
	}
	c.Close()

	cfg.Cache.Backend = "file"
	cfg.Cache.Dir = t.TempDir()
	c, err = cfg.NewCache(ctx)
	if err != nil {
		t.Fatalf("file cache: %v", err)
	}
	c.Close()
}

func TestNewStoreMemory(t *testing.T) {
	cfg := Default()
	s, err := cfg.NewStore(context.Background())
	if err != nil {
		t.Fatalf("memory store: %v", err)
	}
	s.Close(context.Background())
}
