// Package postgres implements the repository ports on PostgreSQL. Documents
// are stored as JSONB with a last_modified watermark column so the sync's
// range scan stays a plain indexed query.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements the domain repository ports.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS consumptions (user_id TEXT NOT NULL, id TEXT NOT NULL, date BIGINT NOT NULL, items JSONB NOT NULL DEFAULT '[]', deleted BOOLEAN NOT NULL DEFAULT FALSE, last_modified BIGINT NOT NULL, PRIMARY KEY(user_id, id));",
		"CREATE INDEX IF NOT EXISTS idx_consumptions_user_modified ON consumptions(user_id, last_modified);",
		"CREATE TABLE IF NOT EXISTS statistics (user_id TEXT NOT NULL, doc TEXT NOT NULL, data JSONB NOT NULL DEFAULT '[]', last_modified BIGINT NOT NULL, PRIMARY KEY(user_id, doc));",
		"CREATE TABLE IF NOT EXISTS profiles (user_id TEXT PRIMARY KEY, weight DOUBLE PRECISION NOT NULL DEFAULT 0, height DOUBLE PRECISION NOT NULL DEFAULT 0, updated_at BIGINT NOT NULL);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
