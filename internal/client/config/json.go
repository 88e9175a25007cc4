package config

import (
	"encoding/json"
	"os"

	"github.com/passkeep/passkeep/internal/flagx"
	"github.com/passkeep/passkeep/internal/storage"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. After parsing,
// set values are copied into the runtime Config.
type JsonConfig struct {
	ServerAddr  string `json:"server_addr"`
	StorageKind string `json:"storage_kind"`
	VaultFile   string `json:"vault_file"`
	DatabaseDSN string `json:"database_dsn"`
	Namespace   string `json:"namespace"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c/-config flags; nothing happens when the flag is absent. Read or
// unmarshal errors panic, configuration problems should stop startup.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerAddr != "" {
		cfg.ServerAddr = jc.ServerAddr
	}
	if jc.StorageKind != "" {
		cfg.Storage.Kind = storage.Kind(jc.StorageKind)
	}
	if jc.VaultFile != "" {
		cfg.Storage.Path = jc.VaultFile
	}
	if jc.DatabaseDSN != "" {
		cfg.Storage.DSN = jc.DatabaseDSN
	}
	if jc.Namespace != "" {
		cfg.Storage.Namespace = jc.Namespace
	}
}
