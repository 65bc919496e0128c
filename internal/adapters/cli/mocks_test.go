package cli

import (
	"context"

	"github.com/example/labres/internal/ports/primary"
)

// mockReservationService implements primary.ReservationService for testing
type mockReservationService struct {
	createFn  func(ctx context.Context, req primary.CreateReservationRequest) (*primary.CreateReservationResponse, error)
	approveFn func(ctx context.Context, id string) (*primary.Reservation, error)
	rejectFn  func(ctx context.Context, req primary.RejectReservationRequest) (*primary.Reservation, error)
	checkFn   func(ctx context.Context, req primary.AvailabilityRequest) error
	getFn     func(ctx context.Context, id string) (*primary.Reservation, error)
	listFn    func(ctx context.Context, filters primary.ReservationFilters) ([]*primary.Reservation, error)

	lastFilters primary.ReservationFilters
	lastReject  primary.RejectReservationRequest
}

func (m *mockReservationService) CreateReservation(ctx context.Context, req primary.CreateReservationRequest) (*primary.CreateReservationResponse, error) {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	r := &primary.Reservation{
		ID: "RES-001", LabID: req.LabID, RequesterID: req.RequesterID,
		Date: req.Date, StartTime: req.StartTime, EndTime: req.EndTime, Status: "PENDING",
	}
	return &primary.CreateReservationResponse{ReservationID: r.ID, Reservation: r}, nil
}

func (m *mockReservationService) ApproveReservation(ctx context.Context, id string) (*primary.Reservation, error) {
	if m.approveFn != nil {
		return m.approveFn(ctx, id)
	}
	return &primary.Reservation{ID: id, Status: "APPROVED"}, nil
}

func (m *mockReservationService) RejectReservation(ctx context.Context, req primary.RejectReservationRequest) (*primary.Reservation, error) {
	m.lastReject = req
	if m.rejectFn != nil {
		return m.rejectFn(ctx, req)
	}
	return &primary.Reservation{ID: req.ReservationID, Status: "REJECTED", RejectionReason: req.Reason}, nil
}

func (m *mockReservationService) CheckAvailability(ctx context.Context, req primary.AvailabilityRequest) error {
	if m.checkFn != nil {
		return m.checkFn(ctx, req)
	}
	return nil
}

func (m *mockReservationService) GetReservation(ctx context.Context, id string) (*primary.Reservation, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &primary.Reservation{
		ID: id, LabID: "LAB-001", RequesterID: "alice", Date: "2026-03-10",
		StartTime: "09:00", EndTime: "10:00", Status: "PENDING",
		CreatedAt: "2026-03-01T08:00:00Z", UpdatedAt: "2026-03-01T08:00:00Z",
	}, nil
}

func (m *mockReservationService) ListReservations(ctx context.Context, filters primary.ReservationFilters) ([]*primary.Reservation, error) {
	m.lastFilters = filters
	if m.listFn != nil {
		return m.listFn(ctx, filters)
	}
	return []*primary.Reservation{}, nil
}

// mockLabService implements primary.LabService for testing
type mockLabService struct {
	createFn     func(ctx context.Context, req primary.CreateLabRequest) (*primary.Lab, error)
	listFn       func(ctx context.Context, status string) ([]*primary.Lab, error)
	deactivateFn func(ctx context.Context, id string) error

	lastStatus string
}

func (m *mockLabService) CreateLab(ctx context.Context, req primary.CreateLabRequest) (*primary.Lab, error) {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return &primary.Lab{ID: "LAB-001", Code: req.Code, Name: req.Name, Location: req.Location, Status: "ACTIVE"}, nil
}

func (m *mockLabService) GetLab(ctx context.Context, id string) (*primary.Lab, error) {
	return &primary.Lab{ID: id, Status: "ACTIVE"}, nil
}

func (m *mockLabService) ListLabs(ctx context.Context, status string) ([]*primary.Lab, error) {
	m.lastStatus = status
	if m.listFn != nil {
		return m.listFn(ctx, status)
	}
	return []*primary.Lab{}, nil
}

func (m *mockLabService) DeactivateLab(ctx context.Context, id string) error {
	if m.deactivateFn != nil {
		return m.deactivateFn(ctx, id)
	}
	return nil
}

// mockDepreciationService implements primary.DepreciationService for testing
type mockDepreciationService struct {
	registerFn  func(ctx context.Context, req primary.RegisterAssetRequest) (*primary.Asset, error)
	listFn      func(ctx context.Context, labID string) ([]*primary.Asset, error)
	valueFn     func(ctx context.Context, id string) (string, error)
	calculateFn func(ctx context.Context, id string) (*primary.Depreciation, error)
	historyFn   func(ctx context.Context, id string) ([]*primary.Depreciation, error)
}

func (m *mockDepreciationService) RegisterAsset(ctx context.Context, req primary.RegisterAssetRequest) (*primary.Asset, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, req)
	}
	return &primary.Asset{ID: "ASSET-001", InventoryCode: req.InventoryCode, Name: req.Name}, nil
}

func (m *mockDepreciationService) GetAsset(ctx context.Context, id string) (*primary.Asset, error) {
	return &primary.Asset{ID: id}, nil
}

func (m *mockDepreciationService) ListAssets(ctx context.Context, labID string) ([]*primary.Asset, error) {
	if m.listFn != nil {
		return m.listFn(ctx, labID)
	}
	return []*primary.Asset{}, nil
}

func (m *mockDepreciationService) CurrentValue(ctx context.Context, id string) (string, error) {
	if m.valueFn != nil {
		return m.valueFn(ctx, id)
	}
	return "1000.00", nil
}

func (m *mockDepreciationService) Calculate(ctx context.Context, id string) (*primary.Depreciation, error) {
	if m.calculateFn != nil {
		return m.calculateFn(ctx, id)
	}
	return &primary.Depreciation{ID: "snap-1", AssetID: id, CalculatedAt: "2026-01-15T10:00:00Z", Value: "600.00"}, nil
}

func (m *mockDepreciationService) History(ctx context.Context, id string) ([]*primary.Depreciation, error) {
	if m.historyFn != nil {
		return m.historyFn(ctx, id)
	}
	return []*primary.Depreciation{}, nil
}

// mockLogService implements primary.LogService for testing
type mockLogService struct {
	entries []*primary.LogEntry
	err     error

	lastFilters primary.LogFilters
}

func (m *mockLogService) ListLogs(ctx context.Context, filters primary.LogFilters) ([]*primary.LogEntry, error) {
	m.lastFilters = filters
	return m.entries, m.err
}
