// Package cli implements the sectorflow command-line interface.
//
// This package provides commands for computing hierarchical allocation
// layouts, inspecting the sector classification dataset, browsing results
// interactively, serving the HTTP API, and managing the layout cache. The
// CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/openaims/sectorflow/internal/config"
	"github.com/openaims/sectorflow/pkg/buildinfo"
	"github.com/openaims/sectorflow/pkg/cache"
	"github.com/openaims/sectorflow/pkg/engine"
)

// appName is the application name used for directories and display.
const appName = "sectorflow"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the optional --config file, applied by commands that
	// read configuration (serve, layout defaults).
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Sectorflow lays out hierarchical aid allocations",
		Long:         `Sectorflow turns flat sector allocation lists into hierarchical flow and radial layouts, with deterministic geometry and colors suitable for rendering or diffing.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "path to a sectorflow.toml config file")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.classifyCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig loads the --config file, or defaults when none was given.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.ConfigPath == "" {
		return config.Default(), nil
	}
	return config.Load(c.ConfigPath)
}

// newRunner creates a layout runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*engine.Runner, error) {
	backend, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return engine.NewRunner(backend, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/sectorflow/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
