package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/labres/internal/apperror"
	"github.com/example/labres/internal/ports/primary"
)

// ReservationAdapter translates CLI operations to ReservationService calls.
type ReservationAdapter struct {
	service primary.ReservationService
	out     io.Writer
}

// NewReservationAdapter creates a new ReservationAdapter with the given service.
func NewReservationAdapter(service primary.ReservationService, out io.Writer) *ReservationAdapter {
	return &ReservationAdapter{
		service: service,
		out:     out,
	}
}

// Create submits a reservation and prints the assigned ID.
func (a *ReservationAdapter) Create(ctx context.Context, req primary.CreateReservationRequest) (*primary.Reservation, error) {
	resp, err := a.service.CreateReservation(ctx, req)
	if err != nil {
		return nil, err
	}

	r := resp.Reservation
	fmt.Fprintf(a.out, "%s Created reservation %s\n", okMark, resp.ReservationID)
	fmt.Fprintf(a.out, "  Lab:  %s\n", r.LabID)
	fmt.Fprintf(a.out, "  When: %s %s-%s\n", r.Date, r.StartTime, r.EndTime)
	fmt.Fprintf(a.out, "  Status: %s\n", statusLabel(r.Status))

	return r, nil
}

// Approve approves a pending reservation.
func (a *ReservationAdapter) Approve(ctx context.Context, reservationID string) (*primary.Reservation, error) {
	r, err := a.service.ApproveReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "%s Reservation %s %s\n", okMark, r.ID, statusLabel(r.Status))
	return r, nil
}

// Reject rejects a pending reservation with a reason.
func (a *ReservationAdapter) Reject(ctx context.Context, reservationID, reason string) (*primary.Reservation, error) {
	r, err := a.service.RejectReservation(ctx, primary.RejectReservationRequest{
		ReservationID: reservationID,
		Reason:        reason,
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "%s Reservation %s %s\n", okMark, r.ID, statusLabel(r.Status))
	fmt.Fprintf(a.out, "  Reason: %s\n", r.RejectionReason)
	return r, nil
}

// Check reports whether an interval is free. A conflict is printed and returned
// as the error so the command exits non-zero.
func (a *ReservationAdapter) Check(ctx context.Context, req primary.AvailabilityRequest) error {
	err := a.service.CheckAvailability(ctx, req)
	if err == nil {
		fmt.Fprintf(a.out, "%s %s %s-%s is available in %s\n", okMark, req.Date, req.StartTime, req.EndTime, req.LabID)
		return nil
	}

	var conflict *apperror.ConflictError
	if errors.As(err, &conflict) {
		fmt.Fprintf(a.out, "%s %s %s-%s is taken in %s\n", failMark, req.Date, req.StartTime, req.EndTime, req.LabID)
		fmt.Fprintf(a.out, "  Blocked by %s (%s) %s-%s\n",
			conflict.ReservationID, statusLabel(conflict.Status), conflict.Start, conflict.End)
	}
	return err
}

// Show displays details for a single reservation.
func (a *ReservationAdapter) Show(ctx context.Context, reservationID string) (*primary.Reservation, error) {
	r, err := a.service.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}

	fmt.Fprintf(a.out, "\nReservation: %s\n", r.ID)
	fmt.Fprintf(a.out, "Lab:       %s\n", r.LabID)
	fmt.Fprintf(a.out, "Requester: %s\n", r.RequesterID)
	fmt.Fprintf(a.out, "Date:      %s\n", r.Date)
	fmt.Fprintf(a.out, "Time:      %s-%s\n", r.StartTime, r.EndTime)
	fmt.Fprintf(a.out, "Status:    %s\n", statusLabel(r.Status))
	if r.RejectionReason != "" {
		fmt.Fprintf(a.out, "Reason:    %s\n", r.RejectionReason)
	}
	fmt.Fprintf(a.out, "Created:   %s\n", r.CreatedAt)
	fmt.Fprintf(a.out, "Updated:   %s\n", r.UpdatedAt)
	fmt.Fprintln(a.out)

	return r, nil
}

// List lists reservations matching the filters.
func (a *ReservationAdapter) List(ctx context.Context, filters primary.ReservationFilters) ([]*primary.Reservation, error) {
	reservations, err := a.service.ListReservations(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	if len(reservations) == 0 {
		fmt.Fprintln(a.out, "No reservations found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Submit one with:")
		fmt.Fprintln(a.out, "  labres reservation create --lab LAB-001 --requester alice --date 2026-03-10 --start 09:00 --end 10:00")
		return reservations, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tLAB\tDATE\tTIME\tREQUESTER\tSTATUS")
	fmt.Fprintln(w, "--\t---\t----\t----\t---------\t------")

	for _, r := range reservations {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s-%s\t%s\t%s\n",
			r.ID,
			r.LabID,
			r.Date,
			r.StartTime, r.EndTime,
			r.RequesterID,
			r.Status,
		)
	}

	w.Flush()
	return reservations, nil
}
