package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/example/labres/internal/apperror"
	corelab "github.com/example/labres/internal/core/lab"
	corereservation "github.com/example/labres/internal/core/reservation"
	"github.com/example/labres/internal/core/timeslot"
	"github.com/example/labres/internal/ctxutil"
	"github.com/example/labres/internal/ports/primary"
	"github.com/example/labres/internal/ports/secondary"
)

const entityReservation = "reservation"

// ReservationServiceImpl implements the ReservationService interface.
// It is the only component that writes reservations: every write goes through
// save inside a transaction.
type ReservationServiceImpl struct {
	transactor      secondary.Transactor
	reservationRepo secondary.ReservationRepository
	labRepo         secondary.LabRepository
	logWriter       secondary.LogWriter
	policy          corereservation.ConflictPolicy
	logger          log.FieldLogger
}

// NewReservationService creates a new ReservationService with injected dependencies.
func NewReservationService(
	transactor secondary.Transactor,
	reservationRepo secondary.ReservationRepository,
	labRepo secondary.LabRepository,
	logWriter secondary.LogWriter,
	policy corereservation.ConflictPolicy,
	logger log.FieldLogger,
) *ReservationServiceImpl {
	if policy == "" {
		policy = corereservation.DefaultConflictPolicy
	}
	return &ReservationServiceImpl{
		transactor:      transactor,
		reservationRepo: reservationRepo,
		labRepo:         labRepo,
		logWriter:       logWriter,
		policy:          policy,
		logger:          logger,
	}
}

// CreateReservation submits a new PENDING reservation.
func (s *ReservationServiceImpl) CreateReservation(ctx context.Context, req primary.CreateReservationRequest) (*primary.CreateReservationResponse, error) {
	logger := s.opLogger(ctx, "create").WithField("lab_id", req.LabID)

	if err := validateRequest(req); err != nil {
		logRefusal(logger, err)
		return nil, err
	}

	interval, err := timeslot.ParseInterval(req.StartTime, req.EndTime)
	if err != nil {
		logRefusal(logger, err)
		return nil, err
	}

	var created *secondary.ReservationRecord
	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		labRecord, err := s.loadLab(ctx, req.LabID)
		if err != nil {
			return err
		}

		guardCtx := corereservation.CreateReservationContext{
			LabID:       req.LabID,
			LabExists:   labRecord != nil,
			LabActive:   labRecord != nil && labRecord.Status == string(corelab.StatusActive),
			RequesterID: req.RequesterID,
			Date:        req.Date,
		}
		if result := corereservation.CanCreateReservation(guardCtx); !result.Allowed {
			return result.Error()
		}

		nextID, err := s.reservationRepo.GetNextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate reservation ID: %w", err)
		}

		record := &secondary.ReservationRecord{
			ID:          nextID,
			LabID:       req.LabID,
			RequesterID: strings.TrimSpace(req.RequesterID),
			Date:        req.Date,
			StartTime:   interval.StartText(),
			EndTime:     interval.EndText(),
			Status:      string(corereservation.InitialStatus()),
		}
		if err := s.save(ctx, record, corereservation.ModeFullCheck, true); err != nil {
			return err
		}

		if err := s.logWriter.LogCreate(ctx, entityReservation, nextID); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}

		created, err = s.reservationRepo.GetByID(ctx, nextID)
		if err != nil {
			return fmt.Errorf("failed to fetch created reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		logRefusal(logger, err)
		return nil, err
	}

	logger.WithField("reservation_id", created.ID).Info("reservation created")
	return &primary.CreateReservationResponse{
		ReservationID: created.ID,
		Reservation:   recordToReservation(created),
	}, nil
}

// ApproveReservation approves a PENDING reservation. Only approved bookings are
// checked; other pending requests do not prevent approval.
func (s *ReservationServiceImpl) ApproveReservation(ctx context.Context, reservationID string) (*primary.Reservation, error) {
	logger := s.opLogger(ctx, "approve").WithField("reservation_id", reservationID)

	var updated *secondary.ReservationRecord
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		record, err := s.loadReservation(ctx, reservationID)
		if err != nil {
			return err
		}

		if result := corereservation.CanApproveReservation(transitionContext(reservationID, record)); !result.Allowed {
			return result.Error()
		}

		interval, err := timeslot.ParseInterval(record.StartTime, record.EndTime)
		if err != nil {
			return err
		}
		candidate := corereservation.Candidate{
			LabID:     record.LabID,
			Date:      record.Date,
			Interval:  interval,
			ExcludeID: record.ID,
		}
		if err := s.checkAvailability(ctx, candidate, corereservation.ApprovalBlockingStatuses()); err != nil {
			return err
		}

		transition := corereservation.ApplyApproval()
		oldStatus := record.Status
		record.Status = string(transition.NewStatus)
		if err := s.save(ctx, record, transition.Mode, false); err != nil {
			return err
		}

		if err := s.logWriter.LogUpdate(ctx, entityReservation, record.ID, "status", oldStatus, record.Status); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}

		updated, err = s.reservationRepo.GetByID(ctx, record.ID)
		if err != nil {
			return fmt.Errorf("failed to fetch approved reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		logRefusal(logger, err)
		return nil, err
	}

	logger.WithField("lab_id", updated.LabID).Info("reservation approved")
	return recordToReservation(updated), nil
}

// RejectReservation rejects a PENDING reservation with a reason.
// Rejecting never re-evaluates other reservations.
func (s *ReservationServiceImpl) RejectReservation(ctx context.Context, req primary.RejectReservationRequest) (*primary.Reservation, error) {
	logger := s.opLogger(ctx, "reject").WithField("reservation_id", req.ReservationID)

	if err := validateRequest(req); err != nil {
		logRefusal(logger, err)
		return nil, err
	}

	var updated *secondary.ReservationRecord
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		record, err := s.loadReservation(ctx, req.ReservationID)
		if err != nil {
			return err
		}

		guardCtx := corereservation.RejectContext{
			TransitionContext: transitionContext(req.ReservationID, record),
			Reason:            req.Reason,
		}
		if result := corereservation.CanRejectReservation(guardCtx); !result.Allowed {
			return result.Error()
		}

		transition := corereservation.ApplyRejection(req.Reason)
		oldStatus := record.Status
		record.Status = string(transition.NewStatus)
		record.RejectionReason = transition.RejectionReason
		if err := s.save(ctx, record, transition.Mode, false); err != nil {
			return err
		}

		if err := s.logWriter.LogUpdate(ctx, entityReservation, record.ID, "status", oldStatus, record.Status); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		if err := s.logWriter.LogUpdate(ctx, entityReservation, record.ID, "rejection_reason", "", record.RejectionReason); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}

		updated, err = s.reservationRepo.GetByID(ctx, record.ID)
		if err != nil {
			return fmt.Errorf("failed to fetch rejected reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		logRefusal(logger, err)
		return nil, err
	}

	logger.WithField("lab_id", updated.LabID).Info("reservation rejected")
	return recordToReservation(updated), nil
}

// CheckAvailability reports the first blocking reservation overlapping the
// requested interval. It only reads, so repeated calls agree until a write.
func (s *ReservationServiceImpl) CheckAvailability(ctx context.Context, req primary.AvailabilityRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	interval, err := timeslot.ParseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return err
	}

	blocking := corereservation.SubmissionBlockingStatuses(s.policy)
	if len(req.Statuses) > 0 {
		statuses := make([]corereservation.Status, 0, len(req.Statuses))
		for _, name := range req.Statuses {
			status, err := corereservation.ParseStatus(name)
			if err != nil {
				return err
			}
			statuses = append(statuses, status)
		}
		blocking = corereservation.NewStatusSet(statuses...)
	}

	candidate := corereservation.Candidate{
		LabID:     req.LabID,
		Date:      req.Date,
		Interval:  interval,
		ExcludeID: req.ExcludeID,
	}
	return s.checkAvailability(ctx, candidate, blocking)
}

// GetReservation retrieves a reservation by ID.
func (s *ReservationServiceImpl) GetReservation(ctx context.Context, reservationID string) (*primary.Reservation, error) {
	record, err := s.loadReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.New(apperror.ErrState, "reservation %s not found", reservationID)
	}
	return recordToReservation(record), nil
}

// ListReservations lists reservations with optional filters.
func (s *ReservationServiceImpl) ListReservations(ctx context.Context, filters primary.ReservationFilters) ([]*primary.Reservation, error) {
	status := ""
	if filters.Status != "" {
		parsed, err := corereservation.ParseStatus(filters.Status)
		if err != nil {
			return nil, err
		}
		status = string(parsed)
	}

	records, err := s.reservationRepo.List(ctx, secondary.ReservationFilters{
		LabID:       filters.LabID,
		Date:        filters.Date,
		Status:      status,
		RequesterID: filters.RequesterID,
		Limit:       filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	reservations := make([]*primary.Reservation, len(records))
	for i, r := range records {
		reservations[i] = recordToReservation(r)
	}
	return reservations, nil
}

// save is the single write path for reservations. ModeFullCheck re-runs the
// submission check against the configured blocking set, excluding the record
// itself; rejected records never block and are written without a check.
// ModeSkipCheck is for transitions that already ran their own check in the
// same transaction.
func (s *ReservationServiceImpl) save(ctx context.Context, record *secondary.ReservationRecord, mode corereservation.ValidationMode, isNew bool) error {
	if mode == corereservation.ModeFullCheck && record.Status != string(corereservation.StatusRejected) {
		interval, err := timeslot.ParseInterval(record.StartTime, record.EndTime)
		if err != nil {
			return err
		}
		candidate := corereservation.Candidate{
			LabID:     record.LabID,
			Date:      record.Date,
			Interval:  interval,
			ExcludeID: record.ID,
		}
		if err := s.checkAvailability(ctx, candidate, corereservation.SubmissionBlockingStatuses(s.policy)); err != nil {
			return err
		}
	}

	if isNew {
		return s.reservationRepo.Create(ctx, record)
	}
	return s.reservationRepo.Update(ctx, record)
}

func (s *ReservationServiceImpl) checkAvailability(ctx context.Context, candidate corereservation.Candidate, blocking corereservation.StatusSet) error {
	records, err := s.reservationRepo.Query(ctx, secondary.ReservationQuery{
		LabID:     candidate.LabID,
		Date:      candidate.Date,
		Statuses:  blocking.Strings(),
		ExcludeID: candidate.ExcludeID,
	})
	if err != nil {
		return fmt.Errorf("failed to query reservations: %w", err)
	}

	slots := make([]corereservation.Slot, len(records))
	for i, r := range records {
		slots[i] = corereservation.Slot{
			ID:     r.ID,
			Start:  r.StartTime,
			End:    r.EndTime,
			Status: corereservation.Status(r.Status),
		}
	}
	return corereservation.CheckConflict(candidate, slots, blocking)
}

// loadReservation returns nil without error when the reservation does not exist.
func (s *ReservationServiceImpl) loadReservation(ctx context.Context, id string) (*secondary.ReservationRecord, error) {
	record, err := s.reservationRepo.GetByID(ctx, id)
	if errors.Is(err, secondary.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return record, nil
}

// loadLab returns nil without error when the lab does not exist.
func (s *ReservationServiceImpl) loadLab(ctx context.Context, id string) (*secondary.LabRecord, error) {
	record, err := s.labRepo.GetByID(ctx, id)
	if errors.Is(err, secondary.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lab: %w", err)
	}
	return record, nil
}

func (s *ReservationServiceImpl) opLogger(ctx context.Context, op string) log.FieldLogger {
	return s.logger.WithFields(log.Fields{
		"op":     op,
		"op_id":  uuid.NewString(),
		"actor":  ctxutil.ActorFromContext(ctx),
		"policy": string(s.policy),
	})
}

// Helper methods

func transitionContext(id string, record *secondary.ReservationRecord) corereservation.TransitionContext {
	if record == nil {
		return corereservation.TransitionContext{ReservationID: id}
	}
	return corereservation.TransitionContext{
		ReservationID: id,
		Exists:        true,
		Status:        corereservation.Status(record.Status),
	}
}

// logRefusal logs rule violations at info and infrastructure failures at error.
func logRefusal(logger log.FieldLogger, err error) {
	if apperror.KindOf(err) != nil {
		logger.WithError(err).Info("operation refused")
		return
	}
	logger.WithError(err).Error("operation failed")
}

func recordToReservation(r *secondary.ReservationRecord) *primary.Reservation {
	return &primary.Reservation{
		ID:              r.ID,
		LabID:           r.LabID,
		RequesterID:     r.RequesterID,
		Date:            r.Date,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		Status:          r.Status,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// Ensure ReservationServiceImpl implements the interface
var _ primary.ReservationService = (*ReservationServiceImpl)(nil)
