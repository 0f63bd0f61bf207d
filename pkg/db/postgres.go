// pkg/db/postgres.go
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

const postgresUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id       SERIAL PRIMARY KEY,
	username VARCHAR(80)  NOT NULL UNIQUE,
	email    VARCHAR(120) NOT NULL UNIQUE
)`

// NewPostgresDB initializes and returns a new PostgreSQL database connection.
// dsn may be a postgres:// URL or a key=value connection string.
func NewPostgresDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(DriverPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	return db, nil
}
