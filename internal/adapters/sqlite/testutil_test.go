// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/labres/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", db.DSN(":memory:"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Every connection to :memory: is a separate database.
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// setupFileDB opens a file database in a temp dir through db.Open, so several
// connections share it the way they do in production.
func setupFileDB(t *testing.T) *sql.DB {
	t.Helper()

	fileDB, err := db.Open(t.TempDir() + "/labres.db")
	if err != nil {
		t.Fatalf("failed to open file db: %v", err)
	}

	t.Cleanup(func() {
		fileDB.Close()
	})

	return fileDB
}

// seedLab inserts a test lab and returns its ID.
func seedLab(t *testing.T, db *sql.DB, id, status string) string {
	t.Helper()
	if id == "" {
		id = "LAB-001"
	}
	if status == "" {
		status = "ACTIVE"
	}
	_, err := db.Exec("INSERT INTO labs (id, code, name, status) VALUES (?, ?, ?, ?)",
		id, "CODE-"+id, "Lab "+id, status)
	if err != nil {
		t.Fatalf("failed to seed lab: %v", err)
	}
	return id
}

// seedReservation inserts a test reservation and returns its ID.
func seedReservation(t *testing.T, db *sql.DB, id, labID, date, start, end, status string) string {
	t.Helper()
	var reason any
	if status == "REJECTED" {
		reason = "seeded rejection"
	}
	_, err := db.Exec(`INSERT INTO reservations (id, lab_id, requester_id, date, start_time, end_time, status, rejection_reason)
		VALUES (?, ?, 'USR-001', ?, ?, ?, ?, ?)`,
		id, labID, date, start, end, status, reason)
	if err != nil {
		t.Fatalf("failed to seed reservation: %v", err)
	}
	return id
}

// seedAsset inserts a complete test asset and returns its ID.
func seedAsset(t *testing.T, db *sql.DB, id string) string {
	t.Helper()
	if id == "" {
		id = "ASSET-001"
	}
	_, err := db.Exec(`INSERT INTO assets (id, inventory_code, name, cost, acquisition_date, useful_life_years)
		VALUES (?, ?, 'Oscilloscope', '1200.00', '2024-01-15', 5)`,
		id, "INV-"+id)
	if err != nil {
		t.Fatalf("failed to seed asset: %v", err)
	}
	return id
}
