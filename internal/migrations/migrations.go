// Package migrations holds the bun migration registry. Each migration
// lives in its own timestamped file and registers itself in init().
package migrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()
