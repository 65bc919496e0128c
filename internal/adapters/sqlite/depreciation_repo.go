// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/labres/internal/ports/secondary"
)

// DepreciationRepository implements secondary.DepreciationRepository with SQLite.
type DepreciationRepository struct {
	db *sql.DB
}

// NewDepreciationRepository creates a new SQLite depreciation repository.
func NewDepreciationRepository(db *sql.DB) *DepreciationRepository {
	return &DepreciationRepository{db: db}
}

// Create persists a new depreciation snapshot.
func (r *DepreciationRepository) Create(ctx context.Context, record *secondary.DepreciationRecord) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		"INSERT INTO depreciation_records (id, asset_id, calculated_at, value) VALUES (?, ?, ?, ?)",
		record.ID, record.AssetID, record.CalculatedAt, record.Value,
	)
	if err != nil {
		return fmt.Errorf("failed to create depreciation record: %w", err)
	}

	return nil
}

// ListByAsset retrieves snapshots for an asset, newest first.
func (r *DepreciationRepository) ListByAsset(ctx context.Context, assetID string) ([]*secondary.DepreciationRecord, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		`SELECT id, asset_id, calculated_at, value FROM depreciation_records
		WHERE asset_id = ? ORDER BY calculated_at DESC, rowid DESC`,
		assetID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list depreciation records: %w", err)
	}
	defer rows.Close()

	var records []*secondary.DepreciationRecord
	for rows.Next() {
		record := &secondary.DepreciationRecord{}
		if err := rows.Scan(&record.ID, &record.AssetID, &record.CalculatedAt, &record.Value); err != nil {
			return nil, fmt.Errorf("failed to scan depreciation record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Ensure DepreciationRepository implements the interface.
var _ secondary.DepreciationRepository = (*DepreciationRepository)(nil)
