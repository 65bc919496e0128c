// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/labres/internal/ports/secondary"
)

// ReservationLogRepository implements secondary.ReservationLogRepository with SQLite.
type ReservationLogRepository struct {
	db *sql.DB
}

// NewReservationLogRepository creates a new SQLite audit log repository.
func NewReservationLogRepository(db *sql.DB) *ReservationLogRepository {
	return &ReservationLogRepository{db: db}
}

// Create persists a new audit entry.
func (r *ReservationLogRepository) Create(ctx context.Context, entry *secondary.ReservationLogRecord) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO reservation_logs (id, actor_id, entity_type, entity_id, action, field_name, old_value, new_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		nullString(entry.ActorID),
		entry.EntityType,
		entry.EntityID,
		entry.Action,
		nullString(entry.FieldName),
		nullString(entry.OldValue),
		nullString(entry.NewValue),
	)
	if err != nil {
		return fmt.Errorf("failed to create reservation log: %w", err)
	}

	return nil
}

// List retrieves audit entries matching the given filters, newest first.
func (r *ReservationLogRepository) List(ctx context.Context, filters secondary.ReservationLogFilters) ([]*secondary.ReservationLogRecord, error) {
	query := `SELECT id, actor_id, entity_type, entity_id, action, field_name, old_value, new_value, created_at
		FROM reservation_logs WHERE 1=1`
	var args []any

	if filters.EntityType != "" {
		query += " AND entity_type = ?"
		args = append(args, filters.EntityType)
	}

	if filters.EntityID != "" {
		query += " AND entity_id = ?"
		args = append(args, filters.EntityID)
	}

	query += " ORDER BY rowid DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservation logs: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.ReservationLogRecord
	for rows.Next() {
		var (
			actorID   sql.NullString
			fieldName sql.NullString
			oldValue  sql.NullString
			newValue  sql.NullString
			createdAt time.Time
		)

		record := &secondary.ReservationLogRecord{}
		err := rows.Scan(&record.ID,
			&actorID,
			&record.EntityType,
			&record.EntityID,
			&record.Action,
			&fieldName,
			&oldValue,
			&newValue,
			&createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation log: %w", err)
		}
		record.ActorID = actorID.String
		record.FieldName = fieldName.String
		record.OldValue = oldValue.String
		record.NewValue = newValue.String
		record.CreatedAt = createdAt.Format(time.RFC3339)

		entries = append(entries, record)
	}

	return entries, rows.Err()
}

// Ensure ReservationLogRepository implements the interface.
var _ secondary.ReservationLogRepository = (*ReservationLogRepository)(nil)
