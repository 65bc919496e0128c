// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	corelab "github.com/example/labres/internal/core/lab"
	"github.com/example/labres/internal/ports/secondary"
)

// LabRepository implements secondary.LabRepository with SQLite.
type LabRepository struct {
	db *sql.DB
}

// NewLabRepository creates a new SQLite lab repository.
func NewLabRepository(db *sql.DB) *LabRepository {
	return &LabRepository{db: db}
}

// Create persists a new lab.
func (r *LabRepository) Create(ctx context.Context, lab *secondary.LabRecord) error {
	status := lab.Status
	if status == "" {
		status = string(corelab.StatusActive)
	}

	_, err := conn(ctx, r.db).ExecContext(ctx,
		"INSERT INTO labs (id, code, name, location, status) VALUES (?, ?, ?, ?, ?)",
		lab.ID, lab.Code, lab.Name, nullString(lab.Location), status,
	)
	if err != nil {
		return fmt.Errorf("failed to create lab: %w", err)
	}

	return nil
}

// GetByID retrieves a lab by its ID.
func (r *LabRepository) GetByID(ctx context.Context, id string) (*secondary.LabRecord, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT id, code, name, location, status, created_at, updated_at FROM labs WHERE id = ?",
		id,
	)

	record, err := scanLab(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lab %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lab: %w", err)
	}

	return record, nil
}

// List retrieves labs, optionally filtered by status.
func (r *LabRepository) List(ctx context.Context, status string) ([]*secondary.LabRecord, error) {
	query := "SELECT id, code, name, location, status, created_at, updated_at FROM labs"
	var args []any

	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}

	query += " ORDER BY id ASC"

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list labs: %w", err)
	}
	defer rows.Close()

	var labs []*secondary.LabRecord
	for rows.Next() {
		record, err := scanLab(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lab: %w", err)
		}
		labs = append(labs, record)
	}

	return labs, rows.Err()
}

// UpdateStatus sets a lab's status.
func (r *LabRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		"UPDATE labs SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update lab status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("lab %s: %w", id, secondary.ErrNotFound)
	}

	return nil
}

// GetNextID returns the next available lab ID.
func (r *LabRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	prefixLen := len("LAB-") + 1
	err := conn(ctx, r.db).QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM labs", prefixLen),
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next lab ID: %w", err)
	}

	return corelab.GenerateLabID(maxID), nil
}

func scanLab(s scanner) (*secondary.LabRecord, error) {
	var (
		location  sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.LabRecord{}
	if err := s.Scan(&record.ID, &record.Code, &record.Name, &location, &record.Status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	record.Location = location.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// Ensure LabRepository implements the interface.
var _ secondary.LabRepository = (*LabRepository)(nil)
