// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
)

// ErrNotFound is wrapped by repositories when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Transactor runs a unit of work atomically.
// Repositories called with the ctx passed to fn take part in the same transaction.
type Transactor interface {
	// WithinTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReservationRepository defines the secondary port for reservation persistence.
type ReservationRepository interface {
	// Create persists a new reservation.
	Create(ctx context.Context, reservation *ReservationRecord) error

	// GetByID retrieves a reservation by its ID.
	GetByID(ctx context.Context, id string) (*ReservationRecord, error)

	// Update updates an existing reservation's times, status and rejection reason.
	Update(ctx context.Context, reservation *ReservationRecord) error

	// Query retrieves reservations for a lab and date matching the given filters.
	Query(ctx context.Context, filters ReservationQuery) ([]*ReservationRecord, error)

	// List retrieves reservations matching the given filters.
	List(ctx context.Context, filters ReservationFilters) ([]*ReservationRecord, error)

	// GetNextID returns the next available reservation ID.
	GetNextID(ctx context.Context) (string, error)
}

// ReservationRecord represents a reservation as stored in persistence.
type ReservationRecord struct {
	ID              string
	LabID           string
	RequesterID     string
	Date            string // YYYY-MM-DD
	StartTime       string // HH:mm
	EndTime         string // HH:mm
	Status          string // PENDING, APPROVED, REJECTED
	RejectionReason string // Empty string means null
	CreatedAt       string
	UpdatedAt       string
}

// ReservationQuery selects the competing reservations for a conflict check.
type ReservationQuery struct {
	LabID     string
	Date      string
	Statuses  []string
	ExcludeID string // Empty string means no exclusion
}

// ReservationFilters contains filter options for listing reservations.
type ReservationFilters struct {
	LabID       string
	Date        string
	Status      string
	RequesterID string
	Limit       int
}

// LabRepository defines the secondary port for lab persistence.
type LabRepository interface {
	// Create persists a new lab.
	Create(ctx context.Context, lab *LabRecord) error

	// GetByID retrieves a lab by its ID.
	GetByID(ctx context.Context, id string) (*LabRecord, error)

	// List retrieves labs, optionally filtered by status.
	List(ctx context.Context, status string) ([]*LabRecord, error)

	// UpdateStatus sets a lab's status.
	UpdateStatus(ctx context.Context, id, status string) error

	// GetNextID returns the next available lab ID.
	GetNextID(ctx context.Context) (string, error)
}

// LabRecord represents a lab as stored in persistence.
type LabRecord struct {
	ID        string
	Code      string
	Name      string
	Location  string // Empty string means null
	Status    string // ACTIVE, INACTIVE
	CreatedAt string
	UpdatedAt string
}

// AssetRepository defines the secondary port for asset persistence.
type AssetRepository interface {
	// Create persists a new asset.
	Create(ctx context.Context, asset *AssetRecord) error

	// GetByID retrieves an asset by its ID.
	GetByID(ctx context.Context, id string) (*AssetRecord, error)

	// List retrieves assets, optionally filtered by lab.
	List(ctx context.Context, labID string) ([]*AssetRecord, error)

	// GetNextID returns the next available asset ID.
	GetNextID(ctx context.Context) (string, error)
}

// AssetRecord represents an asset as stored in persistence.
type AssetRecord struct {
	ID              string
	InventoryCode   string
	Name            string
	LabID           string // Empty string means null
	Cost            string // Decimal text, empty string means null
	AcquisitionDate string // YYYY-MM-DD, empty string means null
	UsefulLifeYears int    // 0 means null
	CreatedAt       string
}

// DepreciationRepository defines the secondary port for depreciation snapshots.
// Snapshots are immutable - no Update or Delete operations.
type DepreciationRepository interface {
	// Create persists a new depreciation snapshot.
	Create(ctx context.Context, record *DepreciationRecord) error

	// ListByAsset retrieves snapshots for an asset, newest first.
	ListByAsset(ctx context.Context, assetID string) ([]*DepreciationRecord, error)
}

// DepreciationRecord represents a depreciation snapshot as stored in persistence.
type DepreciationRecord struct {
	ID           string
	AssetID      string
	CalculatedAt string // RFC3339
	Value        string // Decimal text with two places
}

// ReservationLogRepository defines the secondary port for reservation audit entries.
// Entries are immutable.
type ReservationLogRepository interface {
	// Create persists a new audit entry.
	Create(ctx context.Context, entry *ReservationLogRecord) error

	// List retrieves audit entries matching the given filters, newest first.
	List(ctx context.Context, filters ReservationLogFilters) ([]*ReservationLogRecord, error)
}

// ReservationLogRecord represents an audit entry as stored in persistence.
type ReservationLogRecord struct {
	ID         string
	ActorID    string // Empty string means null
	EntityType string // 'reservation', 'lab', 'asset'
	EntityID   string
	Action     string // 'create', 'update'
	FieldName  string // Empty string means null - for updates only
	OldValue   string // Empty string means null
	NewValue   string // Empty string means null
	CreatedAt  string
}

// ReservationLogFilters contains filter options for querying audit entries.
type ReservationLogFilters struct {
	EntityType string
	EntityID   string
	Limit      int
}
