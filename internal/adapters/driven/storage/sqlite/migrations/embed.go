// Package migrations embeds the SQL migration files for the SQLite
// store, applied in filename order at startup.
package migrations

import "embed"

// FS contains all SQL migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
