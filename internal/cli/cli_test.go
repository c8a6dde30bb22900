package cli

import (
	"io"
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"layout", "classify", "browse", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	c := New(io.Discard, LogInfo)

	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig without --config: %v", err)
	}
	if cfg.Layout.Mode != "flow" {
		t.Errorf("default mode = %q", cfg.Layout.Mode)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.ConfigPath = "/does/not/exist.toml"

	if _, err := c.loadConfig(); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}
