package timeslot

import (
	"errors"
	"testing"

	"github.com/example/labres/internal/apperror"
)

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "canonical", input: "09:30", want: 570},
		{name: "unpadded hour", input: "9:05", want: 545},
		{name: "surrounding spaces", input: "  13:15 ", want: 795},
		{name: "last minute of day", input: "23:59", want: 1439},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "negative hour", input: "-1:00", wantErr: true},
		{name: "missing separator", input: "0930", wantErr: true},
		{name: "too many separators", input: "09:30:00", wantErr: true},
		{name: "non numeric", input: "ab:cd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "empty minutes", input: "09:", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMinutes(tt.input, "start_time")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMinutes(%q) expected error, got %d", tt.input, got)
				}
				var fe *apperror.FormatError
				if !errors.As(err, &fe) {
					t.Fatalf("expected FormatError, got %T", err)
				}
				if fe.Field != "start_time" {
					t.Errorf("Field = %q, want %q", fe.Field, "start_time")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMinutes(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMinutes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "00:00"},
		{545, "09:05"},
		{795, "13:15"},
		{1439, "23:59"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatMinutes(tt.minutes); got != tt.want {
				t.Errorf("FormatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
			}
		})
	}
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		want      Interval
		wantKind  error
		wantField string
	}{
		{name: "valid", start: "9:00", end: "10:30", want: Interval{Start: 540, End: 630}},
		{name: "equal bounds", start: "09:00", end: "09:00", wantKind: apperror.ErrValidation},
		{name: "end before start", start: "10:00", end: "09:00", wantKind: apperror.ErrValidation},
		{name: "bad start", start: "9am", end: "10:00", wantKind: apperror.ErrFormat, wantField: "start_time"},
		{name: "bad end", start: "09:00", end: "25:00", wantKind: apperror.ErrFormat, wantField: "end_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInterval(tt.start, tt.end)
			if tt.wantKind != nil {
				if !errors.Is(err, tt.wantKind) {
					t.Fatalf("ParseInterval() error = %v, want kind %v", err, tt.wantKind)
				}
				if tt.wantField != "" {
					var fe *apperror.FormatError
					if errors.As(err, &fe) && fe.Field != tt.wantField {
						t.Errorf("Field = %q, want %q", fe.Field, tt.wantField)
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseInterval() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseInterval() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	nineToTen := Interval{Start: 540, End: 600}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{name: "identical", other: Interval{Start: 540, End: 600}, want: true},
		{name: "straddles end", other: Interval{Start: 570, End: 630}, want: true},
		{name: "straddles start", other: Interval{Start: 510, End: 570}, want: true},
		{name: "contained", other: Interval{Start: 550, End: 560}, want: true},
		{name: "contains", other: Interval{Start: 480, End: 720}, want: true},
		{name: "touches end", other: Interval{Start: 600, End: 660}, want: false},
		{name: "touches start", other: Interval{Start: 480, End: 540}, want: false},
		{name: "disjoint", other: Interval{Start: 720, End: 780}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(nineToTen, tt.other); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", nineToTen, tt.other, got, tt.want)
			}
			if got := Overlaps(tt.other, nineToTen); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v (symmetry)", tt.other, nineToTen, got, tt.want)
			}
		})
	}
}

func TestIntervalString(t *testing.T) {
	i := Interval{Start: 545, End: 600}
	if got := i.String(); got != "09:05-10:00" {
		t.Errorf("String() = %q, want %q", got, "09:05-10:00")
	}
}
