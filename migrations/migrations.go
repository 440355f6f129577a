// Package migrations embeds the PostgreSQL schema migrations applied by
// cmd/migrate and, when database.auto_migrate is set, by the server at startup.
package migrations

import "embed"

// FS holds the numbered up/down SQL files at its root.
//
//go:embed *.sql
var FS embed.FS
