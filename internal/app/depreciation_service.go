package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/example/labres/internal/apperror"
	"github.com/example/labres/internal/core/depreciation"
	"github.com/example/labres/internal/ctxutil"
	"github.com/example/labres/internal/ports/primary"
	"github.com/example/labres/internal/ports/secondary"
)

const (
	entityAsset = "asset"
	dateLayout  = "2006-01-02"
)

// DepreciationServiceImpl implements the DepreciationService interface.
type DepreciationServiceImpl struct {
	transactor       secondary.Transactor
	assetRepo        secondary.AssetRepository
	labRepo          secondary.LabRepository
	depreciationRepo secondary.DepreciationRepository
	logWriter        secondary.LogWriter
	logger           log.FieldLogger
	now              func() time.Time
}

// NewDepreciationService creates a new DepreciationService with injected dependencies.
func NewDepreciationService(
	transactor secondary.Transactor,
	assetRepo secondary.AssetRepository,
	labRepo secondary.LabRepository,
	depreciationRepo secondary.DepreciationRepository,
	logWriter secondary.LogWriter,
	logger log.FieldLogger,
) *DepreciationServiceImpl {
	return &DepreciationServiceImpl{
		transactor:       transactor,
		assetRepo:        assetRepo,
		labRepo:          labRepo,
		depreciationRepo: depreciationRepo,
		logWriter:        logWriter,
		logger:           logger,
		now:              time.Now,
	}
}

// WithClock replaces the clock used as the valuation date.
func (s *DepreciationServiceImpl) WithClock(now func() time.Time) *DepreciationServiceImpl {
	s.now = now
	return s
}

// RegisterAsset records a new asset. Cost, date and useful life may be omitted;
// such assets are stored but cannot be depreciated.
func (s *DepreciationServiceImpl) RegisterAsset(ctx context.Context, req primary.RegisterAssetRequest) (*primary.Asset, error) {
	req.InventoryCode = strings.TrimSpace(req.InventoryCode)
	req.Name = strings.TrimSpace(req.Name)
	req.LabID = strings.TrimSpace(req.LabID)
	req.Cost = strings.TrimSpace(req.Cost)
	req.AcquisitionDate = strings.TrimSpace(req.AcquisitionDate)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	cost := ""
	if req.Cost != "" {
		parsed, err := decimal.NewFromString(req.Cost)
		if err != nil {
			return nil, apperror.New(apperror.ErrValidation, "cost must be a number (got %q)", req.Cost)
		}
		if parsed.IsNegative() {
			return nil, apperror.New(apperror.ErrValidation, "cost must not be negative (got %s)", req.Cost)
		}
		cost = parsed.StringFixed(depreciation.MoneyPlaces)
	}

	var created *secondary.AssetRecord
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if req.LabID != "" {
			if _, err := s.labRepo.GetByID(ctx, req.LabID); err != nil {
				if errors.Is(err, secondary.ErrNotFound) {
					return apperror.New(apperror.ErrValidation, "lab %s not found", req.LabID)
				}
				return fmt.Errorf("failed to get lab: %w", err)
			}
		}

		nextID, err := s.assetRepo.GetNextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate asset ID: %w", err)
		}

		record := &secondary.AssetRecord{
			ID:              nextID,
			InventoryCode:   req.InventoryCode,
			Name:            req.Name,
			LabID:           req.LabID,
			Cost:            cost,
			AcquisitionDate: req.AcquisitionDate,
			UsefulLifeYears: req.UsefulLifeYears,
		}
		if err := s.assetRepo.Create(ctx, record); err != nil {
			return err
		}

		if err := s.logWriter.LogCreate(ctx, entityAsset, nextID); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}

		created, err = s.assetRepo.GetByID(ctx, nextID)
		if err != nil {
			return fmt.Errorf("failed to fetch created asset: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(log.Fields{
		"asset_id": created.ID,
		"actor":    ctxutil.ActorFromContext(ctx),
	}).Info("asset registered")
	return s.recordToAsset(created)
}

// GetAsset retrieves an asset with its current book value.
func (s *DepreciationServiceImpl) GetAsset(ctx context.Context, assetID string) (*primary.Asset, error) {
	record, err := s.loadAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	return s.recordToAsset(record)
}

// ListAssets lists assets, optionally filtered by lab.
func (s *DepreciationServiceImpl) ListAssets(ctx context.Context, labID string) ([]*primary.Asset, error) {
	records, err := s.assetRepo.List(ctx, labID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	assets := make([]*primary.Asset, 0, len(records))
	for _, r := range records {
		asset, err := s.recordToAsset(r)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

// CurrentValue computes the book value as of now without storing a snapshot.
func (s *DepreciationServiceImpl) CurrentValue(ctx context.Context, assetID string) (string, error) {
	asset, err := s.GetAsset(ctx, assetID)
	if err != nil {
		return "", err
	}
	return asset.CurrentValue, nil
}

// Calculate computes the depreciated value as of now and stores an immutable snapshot.
func (s *DepreciationServiceImpl) Calculate(ctx context.Context, assetID string) (*primary.Depreciation, error) {
	logger := s.logger.WithFields(log.Fields{
		"op_id":    uuid.NewString(),
		"asset_id": assetID,
		"actor":    ctxutil.ActorFromContext(ctx),
	})

	record, err := s.loadAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	asset, err := toCoreAsset(record)
	if err != nil {
		return nil, err
	}

	asOf := s.now()
	result, err := depreciation.Compute(asset, asOf)
	if err != nil {
		logger.WithError(err).Info("depreciation refused")
		return nil, err
	}

	snapshot := &secondary.DepreciationRecord{
		ID:           uuid.NewString(),
		AssetID:      record.ID,
		CalculatedAt: asOf.UTC().Format(time.RFC3339),
		Value:        result.Value.StringFixed(depreciation.MoneyPlaces),
	}
	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		return s.depreciationRepo.Create(ctx, snapshot)
	})
	if err != nil {
		logger.WithError(err).Error("failed to store depreciation snapshot")
		return nil, err
	}

	logger.WithFields(log.Fields{
		"elapsed_years": result.ElapsedYears,
		"annual":        result.AnnualDepreciation.StringFixed(depreciation.MoneyPlaces),
		"value":         snapshot.Value,
	}).Info("depreciation calculated")
	return recordToDepreciation(snapshot), nil
}

// History lists the stored snapshots for an asset, newest first.
func (s *DepreciationServiceImpl) History(ctx context.Context, assetID string) ([]*primary.Depreciation, error) {
	if _, err := s.loadAsset(ctx, assetID); err != nil {
		return nil, err
	}

	records, err := s.depreciationRepo.ListByAsset(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list depreciation history: %w", err)
	}

	history := make([]*primary.Depreciation, len(records))
	for i, r := range records {
		history[i] = recordToDepreciation(r)
	}
	return history, nil
}

func (s *DepreciationServiceImpl) loadAsset(ctx context.Context, assetID string) (*secondary.AssetRecord, error) {
	record, err := s.assetRepo.GetByID(ctx, assetID)
	if errors.Is(err, secondary.ErrNotFound) {
		return nil, apperror.New(apperror.ErrState, "asset %s not found", assetID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return record, nil
}

// Helper methods

func (s *DepreciationServiceImpl) recordToAsset(r *secondary.AssetRecord) (*primary.Asset, error) {
	asset, err := toCoreAsset(r)
	if err != nil {
		return nil, err
	}

	current := ""
	if value, ok := depreciation.CurrentValue(asset, s.now()); ok {
		current = value.StringFixed(depreciation.MoneyPlaces)
	}

	return &primary.Asset{
		ID:              r.ID,
		InventoryCode:   r.InventoryCode,
		Name:            r.Name,
		LabID:           r.LabID,
		Cost:            r.Cost,
		AcquisitionDate: r.AcquisitionDate,
		UsefulLifeYears: r.UsefulLifeYears,
		CurrentValue:    current,
	}, nil
}

// toCoreAsset converts stored text fields into the calculator's input.
func toCoreAsset(r *secondary.AssetRecord) (depreciation.Asset, error) {
	asset := depreciation.Asset{ID: r.ID, UsefulLifeYears: r.UsefulLifeYears}

	if r.Cost != "" {
		cost, err := decimal.NewFromString(r.Cost)
		if err != nil {
			return depreciation.Asset{}, fmt.Errorf("failed to parse cost of asset %s: %w", r.ID, err)
		}
		asset.Cost = &cost
	}

	if r.AcquisitionDate != "" {
		acquired, err := time.Parse(dateLayout, r.AcquisitionDate)
		if err != nil {
			return depreciation.Asset{}, fmt.Errorf("failed to parse acquisition date of asset %s: %w", r.ID, err)
		}
		asset.AcquisitionDate = &acquired
	}

	return asset, nil
}

func recordToDepreciation(r *secondary.DepreciationRecord) *primary.Depreciation {
	return &primary.Depreciation{
		ID:           r.ID,
		AssetID:      r.AssetID,
		CalculatedAt: r.CalculatedAt,
		Value:        r.Value,
	}
}

// Ensure DepreciationServiceImpl implements the interface
var _ primary.DepreciationService = (*DepreciationServiceImpl)(nil)
