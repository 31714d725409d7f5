// ABOUTME: Shared test database setup for handler tests
// ABOUTME: Uses in-memory SQLite with the full schema
package handlers

import (
	"database/sql"
	"testing"

	"github.com/harperreed/dealscope/db"
	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test db: %v", err)
	}
	database.SetMaxOpenConns(1)

	if err := db.InitSchema(database); err != nil {
		t.Fatalf("Failed to init schema: %v", err)
	}

	return database
}
