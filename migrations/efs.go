package migrations

import "embed"

// Files holds the numbered up/down SQL migrations applied by cmd/migrate.
//
//go:embed "sql"
var Files embed.FS
