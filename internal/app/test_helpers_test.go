package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/example/labres/internal/ctxutil"
	"github.com/example/labres/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockTransactor serializes units of work the way an immediate-lock SQLite
// transaction does, and restores registered snapshots on rollback.
type mockTransactor struct {
	mu        sync.Mutex
	snapshots []snapshotter
	commits   int
	rollbacks int
}

type snapshotter interface {
	snapshot() func()
}

func newMockTransactor(repos ...snapshotter) *mockTransactor {
	return &mockTransactor{snapshots: repos}
}

func (m *mockTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	restores := make([]func(), len(m.snapshots))
	for i, s := range m.snapshots {
		restores[i] = s.snapshot()
	}

	if err := fn(ctx); err != nil {
		for _, restore := range restores {
			restore()
		}
		m.rollbacks++
		return err
	}
	m.commits++
	return nil
}

var _ secondary.Transactor = (*mockTransactor)(nil)

// mockReservationRepository implements secondary.ReservationRepository for testing.
type mockReservationRepository struct {
	reservations map[string]*secondary.ReservationRecord
	createErr    error
	updateErr    error
	queryErr     error
	queryCalls   int
}

func newMockReservationRepository() *mockReservationRepository {
	return &mockReservationRepository{
		reservations: make(map[string]*secondary.ReservationRecord),
	}
}

func (m *mockReservationRepository) snapshot() func() {
	saved := make(map[string]secondary.ReservationRecord, len(m.reservations))
	for id, r := range m.reservations {
		saved[id] = *r
	}
	return func() {
		m.reservations = make(map[string]*secondary.ReservationRecord, len(saved))
		for id, r := range saved {
			r := r
			m.reservations[id] = &r
		}
	}
}

func (m *mockReservationRepository) Create(ctx context.Context, reservation *secondary.ReservationRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	copied := *reservation
	m.reservations[reservation.ID] = &copied
	return nil
}

func (m *mockReservationRepository) GetByID(ctx context.Context, id string) (*secondary.ReservationRecord, error) {
	if r, ok := m.reservations[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, fmt.Errorf("reservation %s: %w", id, secondary.ErrNotFound)
}

func (m *mockReservationRepository) Update(ctx context.Context, reservation *secondary.ReservationRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.reservations[reservation.ID]; !ok {
		return fmt.Errorf("reservation %s: %w", reservation.ID, secondary.ErrNotFound)
	}
	copied := *reservation
	m.reservations[reservation.ID] = &copied
	return nil
}

func (m *mockReservationRepository) Query(ctx context.Context, filters secondary.ReservationQuery) ([]*secondary.ReservationRecord, error) {
	m.queryCalls++
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	statuses := make(map[string]bool, len(filters.Statuses))
	for _, s := range filters.Statuses {
		statuses[s] = true
	}
	var result []*secondary.ReservationRecord
	for _, r := range m.sorted() {
		if r.LabID != filters.LabID || r.Date != filters.Date || !statuses[r.Status] {
			continue
		}
		if filters.ExcludeID != "" && r.ID == filters.ExcludeID {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (m *mockReservationRepository) List(ctx context.Context, filters secondary.ReservationFilters) ([]*secondary.ReservationRecord, error) {
	var result []*secondary.ReservationRecord
	for _, r := range m.sorted() {
		if filters.LabID != "" && r.LabID != filters.LabID {
			continue
		}
		if filters.Status != "" && r.Status != filters.Status {
			continue
		}
		if filters.Date != "" && r.Date != filters.Date {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (m *mockReservationRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("RES-%03d", len(m.reservations)+1), nil
}

func (m *mockReservationRepository) sorted() []*secondary.ReservationRecord {
	out := make([]*secondary.ReservationRecord, 0, len(m.reservations))
	for _, r := range m.reservations {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// mockLabRepository implements secondary.LabRepository for testing.
type mockLabRepository struct {
	labs   map[string]*secondary.LabRecord
	getErr error
}

func newMockLabRepository() *mockLabRepository {
	return &mockLabRepository{
		labs: map[string]*secondary.LabRecord{
			"LAB-001": {ID: "LAB-001", Code: "CHEM-1", Name: "Chemistry", Status: "ACTIVE"},
			"LAB-002": {ID: "LAB-002", Code: "PHYS-1", Name: "Physics", Status: "ACTIVE"},
			"LAB-003": {ID: "LAB-003", Code: "OLD-1", Name: "Closed wing", Status: "INACTIVE"},
		},
	}
}

func (m *mockLabRepository) snapshot() func() {
	saved := make(map[string]secondary.LabRecord, len(m.labs))
	for id, l := range m.labs {
		saved[id] = *l
	}
	return func() {
		m.labs = make(map[string]*secondary.LabRecord, len(saved))
		for id, l := range saved {
			l := l
			m.labs[id] = &l
		}
	}
}

func (m *mockLabRepository) Create(ctx context.Context, lab *secondary.LabRecord) error {
	for _, existing := range m.labs {
		if existing.Code == lab.Code {
			return errors.New("UNIQUE constraint failed: labs.code")
		}
	}
	copied := *lab
	if copied.Status == "" {
		copied.Status = "ACTIVE"
	}
	m.labs[lab.ID] = &copied
	return nil
}

func (m *mockLabRepository) GetByID(ctx context.Context, id string) (*secondary.LabRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if l, ok := m.labs[id]; ok {
		copied := *l
		return &copied, nil
	}
	return nil, fmt.Errorf("lab %s: %w", id, secondary.ErrNotFound)
}

func (m *mockLabRepository) List(ctx context.Context, status string) ([]*secondary.LabRecord, error) {
	var result []*secondary.LabRecord
	for _, l := range m.labs {
		if status != "" && l.Status != status {
			continue
		}
		result = append(result, l)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockLabRepository) UpdateStatus(ctx context.Context, id, status string) error {
	l, ok := m.labs[id]
	if !ok {
		return fmt.Errorf("lab %s: %w", id, secondary.ErrNotFound)
	}
	l.Status = status
	return nil
}

func (m *mockLabRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("LAB-%03d", len(m.labs)+1), nil
}

// logEntry is a captured audit call.
type logEntry struct {
	Actor      string
	EntityType string
	EntityID   string
	Action     string
	Field      string
	Old        string
	New        string
}

// mockLogWriter implements secondary.LogWriter for testing.
type mockLogWriter struct {
	entries []logEntry
	err     error
}

func (m *mockLogWriter) snapshot() func() {
	saved := append([]logEntry(nil), m.entries...)
	return func() { m.entries = saved }
}

func (m *mockLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, logEntry{
		Actor: ctxutil.ActorFromContext(ctx), EntityType: entityType, EntityID: entityID, Action: "create",
	})
	return nil
}

func (m *mockLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, logEntry{
		Actor: ctxutil.ActorFromContext(ctx), EntityType: entityType, EntityID: entityID, Action: "update",
		Field: fieldName, Old: oldValue, New: newValue,
	})
	return nil
}

var (
	_ secondary.ReservationRepository = (*mockReservationRepository)(nil)
	_ secondary.LabRepository         = (*mockLabRepository)(nil)
	_ secondary.LogWriter             = (*mockLogWriter)(nil)
)
