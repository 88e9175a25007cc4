package config

import (
	"flag"
	"os"
	"time"

	"github.com/passkeep/passkeep/internal/flagx"
	"github.com/passkeep/passkeep/internal/storage"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-k string   storage backend kind (file|sqlite|postgres|s3|memory)
//	-f string   vault file path (file backend)
//	-d string   database DSN (sqlite/postgres backends)
//	-n string   vault namespace
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-m string   encoded argon2id master password hash
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-f", "-d", "-n", "-s", "-t", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddr, "a", cfg.EndpointAddr, "address and port to run server")
	kind := fs.String("k", string(cfg.Storage.Kind), "storage backend kind")
	fs.StringVar(&cfg.Storage.Path, "f", cfg.Storage.Path, "vault file path")
	fs.StringVar(&cfg.Storage.DSN, "d", cfg.Storage.DSN, "database DSN")
	fs.StringVar(&cfg.Storage.Namespace, "n", cfg.Storage.Namespace, "vault namespace")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	validity := fs.Int("t", int(cfg.AccessTokenValidity.Minutes()), "access token validity (in minutes)")
	fs.StringVar(&cfg.MasterPasswordHash, "m", cfg.MasterPasswordHash, "master password hash")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.Storage.Kind = storage.Kind(*kind)
	cfg.AccessTokenValidity = time.Duration(*validity) * time.Minute
}
