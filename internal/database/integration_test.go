package database

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"
)

// TestDatabaseIntegration tests the complete database lifecycle
func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := Initialize(filepath.Join(t.TempDir(), "integration.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	applied, err := db.RunMigrations("")
	if err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	if len(applied) == 0 {
		t.Fatal("Expected at least one migration to be applied")
	}

	// Second run is a no-op
	again, err := db.RunMigrations("")
	if err != nil {
		t.Fatalf("Failed to re-run migrations: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("Expected no migrations on second run, got %v", again)
	}

	ctx := context.Background()
	var name string
	err = db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", "kv_store").Scan(&name)
	if err != nil {
		t.Errorf("Table kv_store not found: %v", err)
	}
}

// TestDatabaseTransactions tests transaction support
func TestDatabaseTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := Initialize(filepath.Join(t.TempDir(), "transactions.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if _, err := db.RunMigrations(""); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	if _, err := tx.Exec(tx.GetDialect().UpsertKV(), "points", "100"); err != nil {
		tx.Rollback()
		t.Fatalf("Failed to upsert in transaction: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Failed to commit transaction: %v", err)
	}

	var value string
	if err := db.QueryRow("SELECT v FROM kv_store WHERE k = ?", "points").Scan(&value); err != nil {
		t.Fatalf("Failed to query after commit: %v", err)
	}
	if value != "100" {
		t.Errorf("Expected value 100, got %s", value)
	}

	tx2, err := db.Begin()
	if err != nil {
		t.Fatalf("Failed to begin second transaction: %v", err)
	}
	if _, err := tx2.Exec(tx2.GetDialect().UpsertKV(), "points", "999"); err != nil {
		tx2.Rollback()
		t.Fatalf("Failed to upsert in second transaction: %v", err)
	}
	if err := tx2.Rollback(); err != nil {
		t.Fatalf("Failed to rollback transaction: %v", err)
	}

	if err := db.QueryRow("SELECT v FROM kv_store WHERE k = ?", "points").Scan(&value); err != nil {
		t.Fatalf("Failed to query after rollback: %v", err)
	}
	if value != "100" {
		t.Errorf("Expected value 100 after rollback, got %s", value)
	}
}

func TestEmbeddedMigrationsPerDialect(t *testing.T) {
	for _, dialect := range []Dialect{NewSQLiteDialect(), NewPostgresDialect(), NewMySQLDialect()} {
		files, err := fs.Glob(embeddedMigrations, "migrations/"+dialect.MigrationsSubdir()+"/*.sql")
		if err != nil {
			t.Fatalf("glob failed: %v", err)
		}
		if len(files) == 0 {
			t.Errorf("no embedded migrations for %s", dialect.MigrationsSubdir())
		}
	}
}
