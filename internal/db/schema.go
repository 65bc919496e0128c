package db

import "database/sql"

// SchemaSQL is the complete schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All repository
// tests load it via GetSchemaSQL(), so a column referenced by repository code
// but missing here fails tests immediately with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
//  3. Run `make test` to verify alignment
//
// Times are stored as zero-padded HH:mm text, so lexicographic comparison in
// SQL agrees with minute-offset comparison in Go.
const SchemaSQL = `
-- Labs (bookable resources; soft-deleted by status)
CREATE TABLE IF NOT EXISTS labs (
	id TEXT PRIMARY KEY,
	code TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	location TEXT,
	status TEXT NOT NULL CHECK(status IN ('ACTIVE', 'INACTIVE')) DEFAULT 'ACTIVE',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Reservations (lab bookings for one interval on one date)
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

-- Approved reservations for the same lab and date may never overlap,
-- whatever path wrote them.
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

-- Assets (inventory with straight-line depreciation inputs)
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

-- Depreciation snapshots (immutable audit trail, many per asset)
CREATE TABLE IF NOT EXISTS depreciation_records (
	id TEXT PRIMARY KEY,
	asset_id TEXT NOT NULL,
	calculated_at TEXT NOT NULL,
	value TEXT NOT NULL,
	FOREIGN KEY (asset_id) REFERENCES assets(id)
);

CREATE INDEX IF NOT EXISTS idx_depreciation_asset ON depreciation_records(asset_id, calculated_at);

-- Reservation audit log (immutable)
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
`

// InitSchema creates the database schema on a fresh database and runs pending
// migrations on an existing one.
func InitSchema(db *sql.DB) error {
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		var existing int
		err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = 'reservations'").Scan(&existing)
		if err != nil {
			return err
		}

		if existing == 0 {
			// Completely fresh install - create the modern schema directly and
			// mark every migration as applied.
			if _, err := db.Exec(SchemaSQL); err != nil {
				return err
			}
			if err := createSchemaVersionTable(db); err != nil {
				return err
			}
			for _, m := range migrations {
				if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
					return err
				}
			}
			return nil
		}
	}

	// schema_version table exists (or a pre-versioning database) - run pending migrations
	return RunMigrations(db)
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
