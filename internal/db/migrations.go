package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database schema migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the ordered list of schema changes since the first release.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "initial_reservation_schema",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_assets_and_depreciation",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_approved_overlap_triggers",
		Up:      migrationV3,
	},
	{
		Version: 4,
		Name:    "add_reservation_logs",
		Up:      migrationV4,
	},
}

func createSchemaVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// RunMigrations executes all pending migrations, each in its own transaction.
func RunMigrations(db *sql.DB) error {
	if err := createSchemaVersionTable(db); err != nil {
		return err
	}

	var currentVersion int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// CurrentVersion returns the highest applied migration version.
func CurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return version, nil
}

// migrationV1 creates labs and reservations.
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS labs (
			id TEXT PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			location TEXT,
			status TEXT NOT NULL CHECK(status IN ('ACTIVE', 'INACTIVE')) DEFAULT 'ACTIVE',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS reservations (
			id TEXT PRIMARY KEY,
			lab_id TEXT NOT NULL,
			requester_id TEXT NOT NULL,
			date TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			status TEXT NOT NULL CHECK(status IN ('PENDING', 'APPROVED', 'REJECTED')) DEFAULT 'PENDING',
			rejection_reason TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (lab_id) REFERENCES labs(id),
			CHECK(end_time > start_time),
			CHECK((status = 'REJECTED' AND rejection_reason IS NOT NULL AND TRIM(rejection_reason) <> '')
				OR (status <> 'REJECTED' AND rejection_reason IS NULL))
		);

		CREATE INDEX IF NOT EXISTS idx_reservations_lab_date ON reservations(lab_id, date, status);
	`)
	return err
}

// migrationV2 adds assets and depreciation snapshots.
func migrationV2(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS assets (
			id TEXT PRIMARY KEY,
			inventory_code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			lab_id TEXT,
			cost TEXT,
			acquisition_date TEXT,
			useful_life_years INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (lab_id) REFERENCES labs(id)
		);

		CREATE TABLE IF NOT EXISTS depreciation_records (
			id TEXT PRIMARY KEY,
			asset_id TEXT NOT NULL,
			calculated_at TEXT NOT NULL,
			value TEXT NOT NULL,
			FOREIGN KEY (asset_id) REFERENCES assets(id)
		);

		CREATE INDEX IF NOT EXISTS idx_depreciation_asset ON depreciation_records(asset_id, calculated_at);
	`)
	return err
}

// migrationV3 enforces non-overlapping approved reservations in storage.
func migrationV3(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TRIGGER IF NOT EXISTS reservations_approved_overlap_insert
		BEFORE INSERT ON reservations
		WHEN NEW.status = 'APPROVED' AND EXISTS (
			SELECT 1 FROM reservations r
			WHERE r.lab_id = NEW.lab_id AND r.date = NEW.date AND r.status = 'APPROVED'
			AND r.start_time < NEW.end_time AND NEW.start_time < r.end_time
		)
		BEGIN
			SELECT RAISE(ABORT, 'reservation overlaps an approved reservation');
		END;

		CREATE TRIGGER IF NOT EXISTS reservations_approved_overlap_update
		BEFORE UPDATE ON reservations
		WHEN NEW.status = 'APPROVED' AND EXISTS (
			SELECT 1 FROM reservations r
			WHERE r.lab_id = NEW.lab_id AND r.date = NEW.date AND r.status = 'APPROVED'
			AND r.id <> NEW.id
			AND r.start_time < NEW.end_time AND NEW.start_time < r.end_time
		)
		BEGIN
			SELECT RAISE(ABORT, 'reservation overlaps an approved reservation');
		END;
	`)
	return err
}

// migrationV4 adds the reservation audit log.
func migrationV4(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS reservation_logs (
			id TEXT PRIMARY KEY,
			actor_id TEXT,
			entity_type TEXT NOT NULL CHECK(entity_type IN ('reservation', 'lab', 'asset')),
			entity_id TEXT NOT NULL,
			action TEXT NOT NULL CHECK(action IN ('create', 'update')),
			field_name TEXT,
			old_value TEXT,
			new_value TEXT,
			created_at DATETIME DEFAULT (strftime('%Y-%m-%d %H:%M:%f', 'now'))
		);

		CREATE INDEX IF NOT EXISTS idx_reservation_logs_entity ON reservation_logs(entity_type, entity_id);
	`)
	return err
}
