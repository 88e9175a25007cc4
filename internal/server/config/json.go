package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/passkeep/passkeep/internal/flagx"
	"github.com/passkeep/passkeep/internal/storage"
	"github.com/passkeep/passkeep/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration so JSON can specify them as strings like "15m" or as
// integer nanoseconds. After parsing, set values are copied into the runtime
// Config.
type JsonConfig struct {
	EndpointAddr        string         `json:"endpoint_addr"`
	StorageKind         string         `json:"storage_kind"`
	VaultFile           string         `json:"vault_file"`
	DatabaseDSN         string         `json:"database_dsn"`
	Namespace           string         `json:"namespace"`
	S3Bucket            string         `json:"s3_bucket"`
	S3Region            string         `json:"s3_region"`
	S3Endpoint          string         `json:"s3_endpoint"`
	S3AccessKey         string         `json:"s3_access_key"`
	S3SecretKey         string         `json:"s3_secret_key"`
	SecretKey           string         `json:"secret_key"`
	AccessTokenValidity timex.Duration `json:"access_token_validity"`
	MasterPasswordHash  string         `json:"master_password_hash"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c/-config flags. When no flag is given, nothing is loaded. Read or
// unmarshal errors panic; configuration problems should stop startup.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		cfg.EndpointAddr = c.EndpointAddr
	}
	if c.StorageKind != "" {
		cfg.Storage.Kind = storage.Kind(c.StorageKind)
	}
	if c.VaultFile != "" {
		cfg.Storage.Path = c.VaultFile
	}
	if c.DatabaseDSN != "" {
		cfg.Storage.DSN = c.DatabaseDSN
	}
	if c.Namespace != "" {
		cfg.Storage.Namespace = c.Namespace
	}
	if c.S3Bucket != "" {
		cfg.Storage.Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		cfg.Storage.Region = c.S3Region
	}
	if c.S3Endpoint != "" {
		cfg.Storage.Endpoint = c.S3Endpoint
	}
	if c.S3AccessKey != "" {
		cfg.Storage.AccessKey = c.S3AccessKey
	}
	if c.S3SecretKey != "" {
		cfg.Storage.SecretKey = c.S3SecretKey
	}
	if c.SecretKey != "" {
		cfg.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidity.Duration != 0 {
		cfg.AccessTokenValidity = time.Duration(c.AccessTokenValidity.Duration)
	}
	if c.MasterPasswordHash != "" {
		cfg.MasterPasswordHash = c.MasterPasswordHash
	}
}
