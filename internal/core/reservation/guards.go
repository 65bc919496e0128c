// Package reservation contains the pure business logic for lab reservations.
// Guards are pure functions that evaluate preconditions without side effects.
package reservation

import (
	"fmt"
	"strings"

	"github.com/example/labres/internal/apperror"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Kind    error // apperror sentinel describing why the guard failed
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	kind := r.Kind
	if kind == nil {
		kind = apperror.ErrValidation
	}
	return apperror.New(kind, "%s", r.Reason)
}

func deny(kind error, format string, args ...any) GuardResult {
	return GuardResult{
		Allowed: false,
		Reason:  fmt.Sprintf(format, args...),
		Kind:    kind,
	}
}

// CreateReservationContext provides context for reservation submission guards.
type CreateReservationContext struct {
	LabID       string
	LabExists   bool
	LabActive   bool
	RequesterID string
	Date        string
}

// TransitionContext provides context for approve/reject guards.
type TransitionContext struct {
	ReservationID string
	Exists        bool
	Status        Status
}

// RejectContext adds the rejection reason to a transition.
type RejectContext struct {
	TransitionContext
	Reason string
}

// CanCreateReservation evaluates whether a reservation may be submitted.
// Rules:
// - Requester and date must be present
// - Lab must exist and be active
func CanCreateReservation(ctx CreateReservationContext) GuardResult {
	if strings.TrimSpace(ctx.RequesterID) == "" {
		return deny(apperror.ErrValidation, "requester is required")
	}
	if strings.TrimSpace(ctx.Date) == "" {
		return deny(apperror.ErrValidation, "date is required")
	}
	if !ctx.LabExists {
		return deny(apperror.ErrValidation, "lab %s not found", ctx.LabID)
	}
	if !ctx.LabActive {
		return deny(apperror.ErrValidation, "lab %s is inactive and cannot be reserved", ctx.LabID)
	}

	return GuardResult{Allowed: true}
}

// CanApproveReservation evaluates whether a reservation may be approved.
// Rules:
// - Reservation must exist
// - Status must be PENDING
func CanApproveReservation(ctx TransitionContext) GuardResult {
	if !ctx.Exists {
		return deny(apperror.ErrState, "reservation %s not found", ctx.ReservationID)
	}
	if ctx.Status != StatusPending {
		return deny(apperror.ErrState, "only pending reservations may be approved (current status: %s)", ctx.Status)
	}

	return GuardResult{Allowed: true}
}

// CanRejectReservation evaluates whether a reservation may be rejected.
// Rules:
// - Reservation must exist
// - Status must be PENDING
// - A non-blank reason must be given
func CanRejectReservation(ctx RejectContext) GuardResult {
	if !ctx.Exists {
		return deny(apperror.ErrState, "reservation %s not found", ctx.ReservationID)
	}
	if ctx.Status != StatusPending {
		return deny(apperror.ErrState, "only pending reservations may be rejected (current status: %s)", ctx.Status)
	}
	if strings.TrimSpace(ctx.Reason) == "" {
		return deny(apperror.ErrValidation, "a rejection reason is required to reject reservation %s", ctx.ReservationID)
	}

	return GuardResult{Allowed: true}
}
