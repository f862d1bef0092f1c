package database

import (
	"context"
	"path/filepath"
	"testing"
)

// TestDatabaseIntegration tests the complete database lifecycle
func TestDatabaseIntegration(t *testing.T) {
	// Skip if not in integration test mode
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	// Test with SQLite for integration testing
	dbPath := filepath.Join(t.TempDir(), "test_integration.db")

	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Test that tables were created by migrations
	tables := []string{"people", "households", "events", "event_registrations", "sessions"}

	for _, table := range tables {
		query := "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
		var name string
		err := db.QueryRowContext(ctx, query, table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}
}

// TestDatabaseTransactions tests transaction support
func TestDatabaseTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "test_transactions.db")

	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Rolled-back inserts must not be visible
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	_, err = tx.Exec("INSERT INTO households (name) VALUES (?)", "Rollback Family")
	if err != nil {
		t.Fatalf("Failed to insert in transaction: %v", err)
	}

	if err := tx.Rollback(); err != nil {
		t.Fatalf("Failed to rollback: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM households WHERE name = ?", "Rollback Family").Scan(&count); err != nil {
		t.Fatalf("Failed to query households: %v", err)
	}
	if count != 0 {
		t.Errorf("Rolled-back insert is visible, count = %d", count)
	}

	// Committed inserts must be visible
	tx, err = db.Begin()
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	id, err := tx.ExecReturningID("INSERT INTO households (name) VALUES (?)", "Commit Family")
	if err != nil {
		t.Fatalf("Failed to insert in transaction: %v", err)
	}
	if id == 0 {
		t.Error("ExecReturningID returned zero ID")
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}

	if err := db.QueryRow("SELECT COUNT(*) FROM households WHERE name = ?", "Commit Family").Scan(&count); err != nil {
		t.Fatalf("Failed to query households: %v", err)
	}
	if count != 1 {
		t.Errorf("Committed insert not visible, count = %d", count)
	}
}
