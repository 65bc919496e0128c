package primary

import "context"

// ReservationService defines the primary port for the reservation lifecycle.
// Create, Approve and Reject are the only operations that mutate reservations.
type ReservationService interface {
	// CreateReservation submits a new PENDING reservation after checking availability.
	CreateReservation(ctx context.Context, req CreateReservationRequest) (*CreateReservationResponse, error)

	// ApproveReservation approves a PENDING reservation that does not collide with
	// another approved booking.
	ApproveReservation(ctx context.Context, reservationID string) (*Reservation, error)

	// RejectReservation rejects a PENDING reservation with a reason.
	RejectReservation(ctx context.Context, req RejectReservationRequest) (*Reservation, error)

	// CheckAvailability reports the first blocking reservation overlapping the request.
	// It returns nil when the slot is free and never writes.
	CheckAvailability(ctx context.Context, req AvailabilityRequest) error

	// GetReservation retrieves a reservation by ID.
	GetReservation(ctx context.Context, reservationID string) (*Reservation, error)

	// ListReservations lists reservations with optional filters.
	ListReservations(ctx context.Context, filters ReservationFilters) ([]*Reservation, error)
}

// CreateReservationRequest contains parameters for submitting a reservation.
type CreateReservationRequest struct {
	LabID       string `validate:"required"`
	RequesterID string `validate:"required"`
	Date        string `validate:"required,datetime=2006-01-02"`
	StartTime   string `validate:"required"`
	EndTime     string `validate:"required"`
}

// CreateReservationResponse contains the result of submitting a reservation.
type CreateReservationResponse struct {
	ReservationID string
	Reservation   *Reservation
}

// RejectReservationRequest contains parameters for rejecting a reservation.
type RejectReservationRequest struct {
	ReservationID string `validate:"required"`
	Reason        string
}

// AvailabilityRequest describes an interval to check against existing bookings.
// Statuses overrides the configured blocking set when non-empty.
type AvailabilityRequest struct {
	LabID     string `validate:"required"`
	Date      string `validate:"required,datetime=2006-01-02"`
	StartTime string `validate:"required"`
	EndTime   string `validate:"required"`
	ExcludeID string
	Statuses  []string
}

// Reservation represents a reservation at the port boundary.
// Status lifecycle: PENDING → APPROVED | REJECTED
type Reservation struct {
	ID              string
	LabID           string
	RequesterID     string
	Date            string
	StartTime       string
	EndTime         string
	Status          string
	RejectionReason string
	CreatedAt       string
	UpdatedAt       string
}

// ReservationFilters contains filter options for listing reservations.
type ReservationFilters struct {
	LabID       string
	Date        string
	Status      string
	RequesterID string
	Limit       int
}
