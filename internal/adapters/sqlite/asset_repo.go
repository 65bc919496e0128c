// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/labres/internal/ports/secondary"
)

const assetColumns = "id, inventory_code, name, lab_id, cost, acquisition_date, useful_life_years, created_at"

// AssetRepository implements secondary.AssetRepository with SQLite.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new SQLite asset repository.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// Create persists a new asset. Missing cost, date or life are stored as NULL.
func (r *AssetRepository) Create(ctx context.Context, asset *secondary.AssetRecord) error {
	var life sql.NullInt64
	if asset.UsefulLifeYears > 0 {
		life = sql.NullInt64{Int64: int64(asset.UsefulLifeYears), Valid: true}
	}

	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO assets (id, inventory_code, name, lab_id, cost, acquisition_date, useful_life_years)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		asset.ID, asset.InventoryCode, asset.Name, nullString(asset.LabID),
		nullString(asset.Cost), nullString(asset.AcquisitionDate), life,
	)
	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}

	return nil
}

// GetByID retrieves an asset by its ID.
func (r *AssetRepository) GetByID(ctx context.Context, id string) (*secondary.AssetRecord, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT "+assetColumns+" FROM assets WHERE id = ?",
		id,
	)

	record, err := scanAsset(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("asset %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}

	return record, nil
}

// List retrieves assets, optionally filtered by lab.
func (r *AssetRepository) List(ctx context.Context, labID string) ([]*secondary.AssetRecord, error) {
	query := "SELECT " + assetColumns + " FROM assets"
	var args []any

	if labID != "" {
		query += " WHERE lab_id = ?"
		args = append(args, labID)
	}

	query += " ORDER BY id ASC"

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []*secondary.AssetRecord
	for rows.Next() {
		record, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, record)
	}

	return assets, rows.Err()
}

// GetNextID returns the next available asset ID.
func (r *AssetRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	prefixLen := len("ASSET-") + 1
	err := conn(ctx, r.db).QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM assets", prefixLen),
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next asset ID: %w", err)
	}

	return fmt.Sprintf("ASSET-%03d", maxID+1), nil
}

func scanAsset(s scanner) (*secondary.AssetRecord, error) {
	var (
		labID           sql.NullString
		cost            sql.NullString
		acquisitionDate sql.NullString
		life            sql.NullInt64
		createdAt       time.Time
	)

	record := &secondary.AssetRecord{}
	err := s.Scan(&record.ID, &record.InventoryCode, &record.Name, &labID,
		&cost, &acquisitionDate, &life, &createdAt)
	if err != nil {
		return nil, err
	}
	record.LabID = labID.String
	record.Cost = cost.String
	record.AcquisitionDate = acquisitionDate.String
	record.UsefulLifeYears = int(life.Int64)
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

// Ensure AssetRepository implements the interface.
var _ secondary.AssetRepository = (*AssetRepository)(nil)
