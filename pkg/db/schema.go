// pkg/db/schema.go
package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// EnsureSchema creates the users table if it does not exist yet.
// Existing tables are left untouched.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	var ddl string
	switch db.DriverName() {
	case DriverPostgres:
		ddl = postgresUsersTable
	case DriverSQLite:
		ddl = sqliteUsersTable
	default:
		return fmt.Errorf("no schema for database driver %q", db.DriverName())
	}

	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}
