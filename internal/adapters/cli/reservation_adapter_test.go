package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/labres/internal/apperror"
	"github.com/example/labres/internal/ports/primary"
)

func TestReservationAdapter_Create(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewReservationAdapter(&mockReservationService{}, &buf)

	r, err := adapter.Create(context.Background(), primary.CreateReservationRequest{
		LabID: "LAB-001", RequesterID: "alice", Date: "2026-03-10", StartTime: "09:00", EndTime: "10:00",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if r.ID != "RES-001" {
		t.Errorf("expected RES-001, got %q", r.ID)
	}
	output := buf.String()
	for _, want := range []string{"Created reservation RES-001", "LAB-001", "2026-03-10 09:00-10:00", "PENDING"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got %q", want, output)
		}
	}
}

func TestReservationAdapter_Create_ErrorPassesThrough(t *testing.T) {
	conflict := &apperror.ConflictError{ReservationID: "RES-002", Start: "09:00", End: "10:00", Status: "APPROVED"}
	mock := &mockReservationService{
		createFn: func(ctx context.Context, req primary.CreateReservationRequest) (*primary.CreateReservationResponse, error) {
			return nil, conflict
		},
	}
	var buf bytes.Buffer
	adapter := NewReservationAdapter(mock, &buf)

	_, err := adapter.Create(context.Background(), primary.CreateReservationRequest{})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output on failure, got %q", buf.String())
	}
}

func TestReservationAdapter_ApproveAndReject(t *testing.T) {
	mock := &mockReservationService{}
	var buf bytes.Buffer
	adapter := NewReservationAdapter(mock, &buf)

	if _, err := adapter.Approve(context.Background(), "RES-001"); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if !strings.Contains(buf.String(), "RES-001") || !strings.Contains(buf.String(), "APPROVED") {
		t.Errorf("unexpected approve output %q", buf.String())
	}

	buf.Reset()
	if _, err := adapter.Reject(context.Background(), "RES-002", "room closed"); err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	if mock.lastReject.ReservationID != "RES-002" || mock.lastReject.Reason != "room closed" {
		t.Errorf("unexpected reject request %+v", mock.lastReject)
	}
	if !strings.Contains(buf.String(), "Reason: room closed") {
		t.Errorf("expected reason in output, got %q", buf.String())
	}
}

func TestReservationAdapter_Approve_StateError(t *testing.T) {
	mock := &mockReservationService{
		approveFn: func(ctx context.Context, id string) (*primary.Reservation, error) {
			return nil, apperror.New(apperror.ErrState, "reservation %s is APPROVED", id)
		},
	}
	adapter := NewReservationAdapter(mock, &bytes.Buffer{})

	if _, err := adapter.Approve(context.Background(), "RES-001"); !errors.Is(err, apperror.ErrState) {
		t.Errorf("expected state error, got %v", err)
	}
}

func TestReservationAdapter_Check(t *testing.T) {
	tests := []struct {
		name       string
		checkErr   error
		wantErr    error
		wantOutput string
	}{
		{name: "available", wantOutput: "is available in LAB-001"},
		{
			name:       "conflict",
			checkErr:   &apperror.ConflictError{ReservationID: "RES-007", Start: "09:30", End: "11:00", Status: "APPROVED"},
			wantErr:    apperror.ErrConflict,
			wantOutput: "Blocked by RES-007",
		},
		{
			name:     "format error",
			checkErr: &apperror.FormatError{Field: "start_time", Value: "9am"},
			wantErr:  apperror.ErrFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockReservationService{
				checkFn: func(ctx context.Context, req primary.AvailabilityRequest) error { return tt.checkErr },
			}
			var buf bytes.Buffer
			adapter := NewReservationAdapter(mock, &buf)

			err := adapter.Check(context.Background(), primary.AvailabilityRequest{
				LabID: "LAB-001", Date: "2026-03-10", StartTime: "10:00", EndTime: "12:00",
			})
			if tt.wantErr == nil && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !strings.Contains(buf.String(), tt.wantOutput) {
				t.Errorf("expected output to contain %q, got %q", tt.wantOutput, buf.String())
			}
		})
	}
}

func TestReservationAdapter_Show(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewReservationAdapter(&mockReservationService{}, &buf)

	if _, err := adapter.Show(context.Background(), "RES-001"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "Reservation: RES-001") || !strings.Contains(output, "09:00-10:00") {
		t.Errorf("unexpected output %q", output)
	}
	if strings.Contains(output, "Reason:") {
		t.Errorf("pending reservation should not print a reason, got %q", output)
	}
}

func TestReservationAdapter_Show_NotFound(t *testing.T) {
	mock := &mockReservationService{
		getFn: func(ctx context.Context, id string) (*primary.Reservation, error) {
			return nil, apperror.New(apperror.ErrState, "reservation %s not found", id)
		},
	}
	adapter := NewReservationAdapter(mock, &bytes.Buffer{})

	_, err := adapter.Show(context.Background(), "RES-999")
	if !errors.Is(err, apperror.ErrState) {
		t.Errorf("expected wrapped state error, got %v", err)
	}
	if !strings.Contains(err.Error(), "failed to get reservation") {
		t.Errorf("expected wrap prefix, got %q", err.Error())
	}
}

func TestReservationAdapter_List(t *testing.T) {
	mock := &mockReservationService{
		listFn: func(ctx context.Context, filters primary.ReservationFilters) ([]*primary.Reservation, error) {
			return []*primary.Reservation{
				{ID: "RES-001", LabID: "LAB-001", Date: "2026-03-10", StartTime: "09:00", EndTime: "10:00", RequesterID: "alice", Status: "APPROVED"},
				{ID: "RES-002", LabID: "LAB-001", Date: "2026-03-10", StartTime: "10:00", EndTime: "11:00", RequesterID: "bob", Status: "PENDING"},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewReservationAdapter(mock, &buf)

	got, err := adapter.List(context.Background(), primary.ReservationFilters{LabID: "LAB-001"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 reservations, got %d", len(got))
	}
	if mock.lastFilters.LabID != "LAB-001" {
		t.Errorf("filters not passed through: %+v", mock.lastFilters)
	}
	output := buf.String()
	if !strings.Contains(output, "RES-002") || !strings.Contains(output, "10:00-11:00") {
		t.Errorf("unexpected output %q", output)
	}
}

func TestReservationAdapter_List_Empty(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewReservationAdapter(&mockReservationService{}, &buf)

	if _, err := adapter.List(context.Background(), primary.ReservationFilters{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "No reservations found") {
		t.Errorf("expected empty hint, got %q", buf.String())
	}
}
