// Package dbtest provides an in-memory sqlite database with all migrations
// applied, for repository and service tests.
package dbtest

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/streakpost/streakpost/internal/db"
)

// New opens a fresh in-memory database and runs the embedded migrations.
// The database is closed when the test finishes.
func New(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory sqlite: %v", err)
	}
	// A :memory: database exists per connection; keep the pool at one.
	conn.SetMaxOpenConns(1)

	err = db.RunMigrations(conn.DB, "sqlite")
	if err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn
}
