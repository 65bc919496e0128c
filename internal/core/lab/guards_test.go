package lab

import (
	"errors"
	"testing"

	"github.com/example/labres/internal/apperror"
)

func TestCanDeactivateLab(t *testing.T) {
	tests := []struct {
		name        string
		ctx         DeactivateContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "active lab",
			ctx:         DeactivateContext{LabID: "LAB-001", Exists: true, Status: StatusActive},
			wantAllowed: true,
		},
		{
			name:       "missing lab",
			ctx:        DeactivateContext{LabID: "LAB-404"},
			wantReason: "lab LAB-404 not found",
		},
		{
			name:       "already inactive",
			ctx:        DeactivateContext{LabID: "LAB-002", Exists: true, Status: StatusInactive},
			wantReason: "lab LAB-002 is already inactive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanDeactivateLab(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Fatalf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if tt.wantAllowed {
				if result.Error() != nil {
					t.Errorf("expected nil error, got %v", result.Error())
				}
				return
			}
			if result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
			if !errors.Is(result.Error(), apperror.ErrState) {
				t.Errorf("expected ErrState, got %v", result.Error())
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{input: "", want: ""},
		{input: "active", want: StatusActive},
		{input: " INACTIVE ", want: StatusInactive},
		{input: "closed", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				if !errors.Is(err, apperror.ErrValidation) {
					t.Errorf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateLabID(t *testing.T) {
	if got := GenerateLabID(0); got != "LAB-001" {
		t.Errorf("GenerateLabID(0) = %q, want LAB-001", got)
	}
	if got := GenerateLabID(41); got != "LAB-042" {
		t.Errorf("GenerateLabID(41) = %q, want LAB-042", got)
	}
}
