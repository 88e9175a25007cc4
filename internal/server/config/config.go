// Package config handles configuration for the server binary, applying
// defaults, an optional .env file, an optional JSON overlay and finally
// command-line flags.
package config

import (
	"time"

	"github.com/passkeep/passkeep/internal/storage"
)

// Config holds runtime settings for the passkeep server.
type Config struct {
	// EndpointAddr is the HTTP bind address.
	EndpointAddr string

	// Storage selects and parameterizes the persistence backend.
	Storage storage.Config

	// SecretKey is the HMAC secret for signing access tokens (HS256).
	SecretKey string

	// AccessTokenValidity is the lifetime of an issued access token.
	AccessTokenValidity time.Duration

	// MasterPasswordHash is the encoded argon2id hash of the vault master
	// password. Login is disabled while it is empty.
	MasterPasswordHash string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key default is insecure and must be overridden in prod.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.Storage = storage.Config{
		Kind:      storage.KindFile,
		Path:      "vault.json",
		Namespace: storage.DefaultNamespace,
	}
	c.SecretKey = "secretKey"
	c.AccessTokenValidity = 15 * time.Minute
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment, an optional JSON file and command-line flags. Later
// sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
