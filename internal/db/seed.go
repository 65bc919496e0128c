package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with development fixtures.
// The reservations exercise both policies: an approved morning slot, a pending
// request that only blocks under approved_and_pending, and a rejected booking.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().Format(time.RFC3339)
	day := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	labs := []struct{ id, code, name, location, status string }{
		{"LAB-001", "CHEM-1", "Chemistry Lab", "Building A, room 101", "ACTIVE"},
		{"LAB-002", "PHYS-1", "Physics Lab", "Building B, room 204", "ACTIVE"},
		{"LAB-003", "BIO-OLD", "Old Biology Lab", "Annex", "INACTIVE"},
	}
	for _, l := range labs {
		if _, err := database.Exec(
			"INSERT INTO labs (id, code, name, location, status, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			l.id, l.code, l.name, l.location, l.status, now,
		); err != nil {
			return fmt.Errorf("seed labs: %w", err)
		}
	}

	reservations := []struct {
		id, labID, requester, start, end, status string
		reason                                   sql.NullString
	}{
		{"RES-001", "LAB-001", "USER-001", "09:00", "10:00", "APPROVED", sql.NullString{}},
		{"RES-002", "LAB-001", "USER-002", "11:00", "12:30", "PENDING", sql.NullString{}},
		{"RES-003", "LAB-001", "USER-003", "14:00", "15:00", "REJECTED", sql.NullString{String: "lab closed for cleaning", Valid: true}},
		{"RES-004", "LAB-002", "USER-001", "08:00", "09:30", "PENDING", sql.NullString{}},
	}
	for _, r := range reservations {
		if _, err := database.Exec(
			`INSERT INTO reservations (id, lab_id, requester_id, date, start_time, end_time, status, rejection_reason, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.id, r.labID, r.requester, day, r.start, r.end, r.status, r.reason, now, now,
		); err != nil {
			return fmt.Errorf("seed reservations: %w", err)
		}
	}

	assets := []struct {
		id, code, name, labID string
		cost, acquired        sql.NullString
		life                  sql.NullInt64
	}{
		{"ASSET-001", "INV-0001", "Fume hood", "LAB-001",
			sql.NullString{String: "1200.00", Valid: true}, sql.NullString{String: "2024-03-15", Valid: true}, sql.NullInt64{Int64: 5, Valid: true}},
		{"ASSET-002", "INV-0002", "Oscilloscope", "LAB-002",
			sql.NullString{String: "850.50", Valid: true}, sql.NullString{String: "2021-09-01", Valid: true}, sql.NullInt64{Int64: 4, Valid: true}},
		{"ASSET-003", "INV-0003", "Donated microscope", "LAB-001",
			sql.NullString{}, sql.NullString{}, sql.NullInt64{}},
	}
	for _, a := range assets {
		if _, err := database.Exec(
			`INSERT INTO assets (id, inventory_code, name, lab_id, cost, acquisition_date, useful_life_years, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			a.id, a.code, a.name, a.labID, a.cost, a.acquired, a.life, now,
		); err != nil {
			return fmt.Errorf("seed assets: %w", err)
		}
	}

	return nil
}
