// Package config handles configuration for the passkeep CLI, applying
// defaults, an optional JSON overlay and command-line flags.
package config

import "github.com/passkeep/passkeep/internal/storage"

// Config holds runtime settings for the passkeep CLI.
//
// When ServerAddr is set the CLI works against a remote server; otherwise it
// opens the configured local backend directly.
type Config struct {
	ServerAddr string
	Storage    storage.Config
}

// LoadDefaults populates c with sensible defaults: a local file vault in the
// working directory.
func (c *Config) LoadDefaults() {
	c.ServerAddr = ""
	c.Storage = storage.Config{
		Kind:      storage.KindFile,
		Path:      "vault.json",
		Namespace: storage.DefaultNamespace,
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
