// Package migrations embeds the goose migrations for SQL-backed vaults,
// one directory per dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
