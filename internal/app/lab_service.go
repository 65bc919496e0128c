package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/example/labres/internal/apperror"
	corelab "github.com/example/labres/internal/core/lab"
	"github.com/example/labres/internal/ctxutil"
	"github.com/example/labres/internal/ports/primary"
	"github.com/example/labres/internal/ports/secondary"
)

const entityLab = "lab"

// LabServiceImpl implements the LabService interface.
type LabServiceImpl struct {
	transactor secondary.Transactor
	labRepo    secondary.LabRepository
	logWriter  secondary.LogWriter
	logger     log.FieldLogger
}

// NewLabService creates a new LabService with injected dependencies.
func NewLabService(
	transactor secondary.Transactor,
	labRepo secondary.LabRepository,
	logWriter secondary.LogWriter,
	logger log.FieldLogger,
) *LabServiceImpl {
	return &LabServiceImpl{
		transactor: transactor,
		labRepo:    labRepo,
		logWriter:  logWriter,
		logger:     logger,
	}
}

// CreateLab registers a new, active lab.
func (s *LabServiceImpl) CreateLab(ctx context.Context, req primary.CreateLabRequest) (*primary.Lab, error) {
	req.Code = strings.TrimSpace(req.Code)
	req.Name = strings.TrimSpace(req.Name)
	req.Location = strings.TrimSpace(req.Location)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var created *secondary.LabRecord
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		nextID, err := s.labRepo.GetNextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate lab ID: %w", err)
		}

		record := &secondary.LabRecord{
			ID:       nextID,
			Code:     req.Code,
			Name:     req.Name,
			Location: req.Location,
			Status:   string(corelab.StatusActive),
		}
		if err := s.labRepo.Create(ctx, record); err != nil {
			return err
		}

		if err := s.logWriter.LogCreate(ctx, entityLab, nextID); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}

		created, err = s.labRepo.GetByID(ctx, nextID)
		if err != nil {
			return fmt.Errorf("failed to fetch created lab: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(log.Fields{
		"lab_id": created.ID,
		"actor":  ctxutil.ActorFromContext(ctx),
	}).Info("lab created")
	return recordToLab(created), nil
}

// GetLab retrieves a lab by ID.
func (s *LabServiceImpl) GetLab(ctx context.Context, labID string) (*primary.Lab, error) {
	record, err := s.labRepo.GetByID(ctx, labID)
	if errors.Is(err, secondary.ErrNotFound) {
		return nil, apperror.New(apperror.ErrState, "lab %s not found", labID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lab: %w", err)
	}
	return recordToLab(record), nil
}

// ListLabs lists labs, optionally filtered by status.
func (s *LabServiceImpl) ListLabs(ctx context.Context, status string) ([]*primary.Lab, error) {
	parsed, err := corelab.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	records, err := s.labRepo.List(ctx, string(parsed))
	if err != nil {
		return nil, fmt.Errorf("failed to list labs: %w", err)
	}

	labs := make([]*primary.Lab, len(records))
	for i, r := range records {
		labs[i] = recordToLab(r)
	}
	return labs, nil
}

// DeactivateLab marks a lab inactive. Existing reservations are kept as they are.
func (s *LabServiceImpl) DeactivateLab(ctx context.Context, labID string) error {
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		record, err := s.labRepo.GetByID(ctx, labID)
		if err != nil && !errors.Is(err, secondary.ErrNotFound) {
			return fmt.Errorf("failed to get lab: %w", err)
		}

		guardCtx := corelab.DeactivateContext{LabID: labID}
		if record != nil {
			guardCtx.Exists = true
			guardCtx.Status = corelab.Status(record.Status)
		}
		if result := corelab.CanDeactivateLab(guardCtx); !result.Allowed {
			return result.Error()
		}

		if err := s.labRepo.UpdateStatus(ctx, labID, string(corelab.StatusInactive)); err != nil {
			return err
		}

		if err := s.logWriter.LogUpdate(ctx, entityLab, labID, "status", record.Status, string(corelab.StatusInactive)); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.WithFields(log.Fields{
		"lab_id": labID,
		"actor":  ctxutil.ActorFromContext(ctx),
	}).Info("lab deactivated")
	return nil
}

// Helper methods

func recordToLab(r *secondary.LabRecord) *primary.Lab {
	return &primary.Lab{
		ID:        r.ID,
		Code:      r.Code,
		Name:      r.Name,
		Location:  r.Location,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

// Ensure LabServiceImpl implements the interface
var _ primary.LabService = (*LabServiceImpl)(nil)
