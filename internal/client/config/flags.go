package config

import (
	"flag"
	"os"

	"github.com/passkeep/passkeep/internal/flagx"
	"github.com/passkeep/passkeep/internal/storage"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   server base URL; empty means local mode
//	-k string   local storage backend kind (file|sqlite|memory)
//	-f string   vault file path (file backend)
//	-d string   database DSN (sqlite backend)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-f", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerAddr, "a", cfg.ServerAddr, "server base URL (empty for local vault)")
	kind := fs.String("k", string(cfg.Storage.Kind), "local storage backend kind")
	fs.StringVar(&cfg.Storage.Path, "f", cfg.Storage.Path, "vault file path")
	fs.StringVar(&cfg.Storage.DSN, "d", cfg.Storage.DSN, "database DSN")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.Storage.Kind = storage.Kind(*kind)
}
