// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/example/labres/internal/apperror"
	corereservation "github.com/example/labres/internal/core/reservation"
	"github.com/example/labres/internal/ports/secondary"
)

const overlapTriggerMessage = "overlaps an approved reservation"

const reservationColumns = "id, lab_id, requester_id, date, start_time, end_time, status, rejection_reason, created_at, updated_at"

// ReservationRepository implements secondary.ReservationRepository with SQLite.
type ReservationRepository struct {
	db *sql.DB
}

// NewReservationRepository creates a new SQLite reservation repository.
func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create persists a new reservation.
func (r *ReservationRepository) Create(ctx context.Context, reservation *secondary.ReservationRecord) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO reservations (id, lab_id, requester_id, date, start_time, end_time, status, rejection_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		reservation.ID, reservation.LabID, reservation.RequesterID, reservation.Date,
		reservation.StartTime, reservation.EndTime, reservation.Status, nullString(reservation.RejectionReason),
	)
	if err != nil {
		if conflict := asOverlapConflict(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	return nil
}

// GetByID retrieves a reservation by its ID.
func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*secondary.ReservationRecord, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE id = ?",
		id,
	)

	record, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("reservation %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}

	return record, nil
}

// Update updates an existing reservation's times, status and rejection reason.
func (r *ReservationRepository) Update(ctx context.Context, reservation *secondary.ReservationRecord) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE reservations
		SET start_time = ?, end_time = ?, status = ?, rejection_reason = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		reservation.StartTime, reservation.EndTime, reservation.Status,
		nullString(reservation.RejectionReason), reservation.ID,
	)
	if err != nil {
		if conflict := asOverlapConflict(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("failed to update reservation: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("reservation %s: %w", reservation.ID, secondary.ErrNotFound)
	}

	return nil
}

// Query retrieves reservations for a lab and date whose status is in the filter.
// An empty status list matches nothing.
func (r *ReservationRepository) Query(ctx context.Context, filters secondary.ReservationQuery) ([]*secondary.ReservationRecord, error) {
	if len(filters.Statuses) == 0 {
		return nil, nil
	}

	query := "SELECT " + reservationColumns + " FROM reservations WHERE lab_id = ? AND date = ?"
	args := []any{filters.LabID, filters.Date}

	placeholders := make([]string, len(filters.Statuses))
	for i, s := range filters.Statuses {
		placeholders[i] = "?"
		args = append(args, s)
	}
	query += " AND status IN (" + strings.Join(placeholders, ", ") + ")"

	if filters.ExcludeID != "" {
		query += " AND id <> ?"
		args = append(args, filters.ExcludeID)
	}

	query += " ORDER BY start_time ASC, id ASC"

	return r.queryRecords(ctx, query, args...)
}

// List retrieves reservations matching the given filters.
func (r *ReservationRepository) List(ctx context.Context, filters secondary.ReservationFilters) ([]*secondary.ReservationRecord, error) {
	query := "SELECT " + reservationColumns + " FROM reservations WHERE 1=1"
	var args []any

	if filters.LabID != "" {
		query += " AND lab_id = ?"
		args = append(args, filters.LabID)
	}
	if filters.Date != "" {
		query += " AND date = ?"
		args = append(args, filters.Date)
	}
	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	if filters.RequesterID != "" {
		query += " AND requester_id = ?"
		args = append(args, filters.RequesterID)
	}

	query += " ORDER BY date ASC, start_time ASC, id ASC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	return r.queryRecords(ctx, query, args...)
}

// GetNextID returns the next available reservation ID.
func (r *ReservationRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM reservations",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next reservation ID: %w", err)
	}

	return corereservation.GenerateReservationID(maxID), nil
}

func (r *ReservationRepository) queryRecords(ctx context.Context, query string, args ...any) ([]*secondary.ReservationRecord, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*secondary.ReservationRecord
	for rows.Next() {
		record, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reservations: %w", err)
	}

	return reservations, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReservation(s scanner) (*secondary.ReservationRecord, error) {
	var (
		reason    sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.ReservationRecord{}
	err := s.Scan(&record.ID, &record.LabID, &record.RequesterID, &record.Date,
		&record.StartTime, &record.EndTime, &record.Status, &reason, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	record.RejectionReason = reason.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// asOverlapConflict maps the storage-level overlap trigger to a ConflictError.
func asOverlapConflict(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint &&
		strings.Contains(sqliteErr.Error(), overlapTriggerMessage) {
		return apperror.New(apperror.ErrConflict, "reservation %s", overlapTriggerMessage)
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Ensure ReservationRepository implements the interface.
var _ secondary.ReservationRepository = (*ReservationRepository)(nil)
