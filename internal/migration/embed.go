// Package migration applies the embedded schema migrations under an
// advisory lock and records the activated schema state.
package migration

import "embed"

const migrationsDir = "sql"

//go:embed sql/*.sql
var embeddedMigrations embed.FS
