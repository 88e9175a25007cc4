package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/passkeep/passkeep/internal/storage"
)

// parseEnv overlays Config with values from the process environment. A .env
// file in the working directory is loaded first, if present; real environment
// variables win over it.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("PASSKEEP_ADDRESS"); ok {
		cfg.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("PASSKEEP_STORAGE"); ok {
		cfg.Storage.Kind = storage.Kind(v)
	}
	if v, ok := os.LookupEnv("PASSKEEP_VAULT_FILE"); ok {
		cfg.Storage.Path = v
	}
	if v, ok := os.LookupEnv("PASSKEEP_DATABASE_DSN"); ok {
		cfg.Storage.DSN = v
	}
	if v, ok := os.LookupEnv("PASSKEEP_NAMESPACE"); ok {
		cfg.Storage.Namespace = v
	}
	if v, ok := os.LookupEnv("PASSKEEP_S3_BUCKET"); ok {
		cfg.Storage.Bucket = v
	}
	if v, ok := os.LookupEnv("PASSKEEP_S3_REGION"); ok {
		cfg.Storage.Region = v
	}
	if v, ok := os.LookupEnv("PASSKEEP_S3_ENDPOINT"); ok {
		cfg.Storage.Endpoint = v
	}
	if v, ok := os.LookupEnv("PASSKEEP_S3_ACCESS_KEY"); ok {
		cfg.Storage.AccessKey = v
	}
	if v, ok := os.LookupEnv("PASSKEEP_S3_SECRET_KEY"); ok {
		cfg.Storage.SecretKey = v
	}
	if v, ok := os.LookupEnv("PASSKEEP_SECRET_KEY"); ok {
		cfg.SecretKey = v
	}
	if v, ok := os.LookupEnv("PASSKEEP_MASTER_PASSWORD_HASH"); ok {
		cfg.MasterPasswordHash = v
	}
}
