// Package timeslot parses and compares wall-clock intervals within a single day.
// This is part of the Functional Core - no I/O, only pure functions.
package timeslot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/labres/internal/apperror"
)

// MinutesPerDay is the exclusive upper bound of a minute offset.
const MinutesPerDay = 24 * 60

// Interval is a half-open range [Start, End) of minute offsets from midnight.
type Interval struct {
	Start int
	End   int
}

// ParseMinutes converts "HH:mm" into minutes since midnight.
// field names the input in the returned FormatError.
func ParseMinutes(text, field string) (int, error) {
	value := strings.TrimSpace(text)

	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, &apperror.FormatError{Field: field, Value: text}
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, &apperror.FormatError{Field: field, Value: text}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, &apperror.FormatError{Field: field, Value: text}
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, &apperror.FormatError{Field: field, Value: text}
	}

	return hour*60 + minute, nil
}

// FormatMinutes renders a minute offset as zero-padded "HH:mm".
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseInterval parses both ends of a same-day interval.
// The end must be strictly after the start; overnight spans are rejected.
func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseMinutes(start, "start_time")
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseMinutes(end, "end_time")
	if err != nil {
		return Interval{}, err
	}
	if e <= s {
		return Interval{}, apperror.New(apperror.ErrValidation,
			"end time %s must be after start time %s", FormatMinutes(e), FormatMinutes(s))
	}
	return Interval{Start: s, End: e}, nil
}

// Overlaps reports whether two half-open intervals share any minute.
// Back-to-back intervals (a.End == b.Start) do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// StartText returns the canonical start time.
func (i Interval) StartText() string { return FormatMinutes(i.Start) }

// EndText returns the canonical end time.
func (i Interval) EndText() string { return FormatMinutes(i.End) }

func (i Interval) String() string {
	return i.StartText() + "-" + i.EndText()
}
