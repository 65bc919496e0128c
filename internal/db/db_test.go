package db

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "memory",
			path: ":memory:",
			want: "file::memory:?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate",
		},
		{
			name: "file path",
			path: "/tmp/labres.db",
			want: "file:/tmp/labres.db?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate",
		},
		{
			name: "path with params",
			path: "file:/tmp/labres.db?cache=private",
			want: "file:/tmp/labres.db?cache=private&_foreign_keys=on&_busy_timeout=5000&_txlock=immediate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DSN(tt.path); got != tt.want {
				t.Errorf("DSN(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestOpen_FreshInstallMarksAllMigrations(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "nested", "labres.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer database.Close()

	version, err := CurrentVersion(database)
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != migrations[len(migrations)-1].Version {
		t.Errorf("version = %d, want %d", version, migrations[len(migrations)-1].Version)
	}
}

func TestRunMigrations_MatchesSchema(t *testing.T) {
	migrated, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer migrated.Close()
	migrated.SetMaxOpenConns(1)

	if err := RunMigrations(migrated); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	fresh, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer fresh.Close()
	fresh.SetMaxOpenConns(1)

	if _, err := fresh.Exec(GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	want := schemaObjects(t, fresh)
	got := schemaObjects(t, migrated)
	for name := range want {
		if !got[name] {
			t.Errorf("migrations are missing %s", name)
		}
	}
}

func TestSeedFixtures(t *testing.T) {
	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer database.Close()

	if err := SeedFixtures(database); err != nil {
		t.Fatalf("SeedFixtures failed: %v", err)
	}

	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM reservations").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 4 {
		t.Errorf("reservations = %d, want 4", count)
	}
}

func TestSchema_RejectsOverlappingApprovedInsert(t *testing.T) {
	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer database.Close()

	if _, err := database.Exec("INSERT INTO labs (id, code, name) VALUES ('LAB-001', 'L1', 'Lab')"); err != nil {
		t.Fatalf("seed lab: %v", err)
	}
	insert := `INSERT INTO reservations (id, lab_id, requester_id, date, start_time, end_time, status)
		VALUES (?, 'LAB-001', 'USER-001', '2026-03-02', ?, ?, 'APPROVED')`

	if _, err := database.Exec(insert, "RES-001", "09:00", "10:00"); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if _, err := database.Exec(insert, "RES-002", "10:00", "11:00"); err != nil {
		t.Fatalf("back-to-back insert failed: %v", err)
	}
	_, err = database.Exec(insert, "RES-003", "09:30", "10:30")
	if err == nil || !strings.Contains(err.Error(), "overlaps an approved reservation") {
		t.Errorf("overlapping insert error = %v, want trigger abort", err)
	}
}

func schemaObjects(t *testing.T, database *sql.DB) map[string]bool {
	t.Helper()
	rows, err := database.Query("SELECT type || ':' || name FROM sqlite_master WHERE name NOT LIKE 'sqlite_%' AND name <> 'schema_version'")
	if err != nil {
		t.Fatalf("failed to read sqlite_master: %v", err)
	}
	defer rows.Close()

	objects := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		objects[name] = true
	}
	return objects
}
