package reservation

import (
	"github.com/example/labres/internal/apperror"
	"github.com/example/labres/internal/core/timeslot"
)

// Slot is an existing reservation as seen by the conflict detector.
type Slot struct {
	ID     string
	Start  string
	End    string
	Status Status
}

// Candidate describes the interval being checked.
type Candidate struct {
	LabID     string
	Date      string
	Interval  timeslot.Interval
	ExcludeID string // empty for new reservations
}

// FindConflict returns the first slot that blocks the candidate, or nil.
// Slots outside the blocking set, the excluded id, and slots with unreadable
// times are skipped.
func FindConflict(candidate Candidate, existing []Slot, blocking StatusSet) *Slot {
	for i := range existing {
		slot := existing[i]
		if candidate.ExcludeID != "" && slot.ID == candidate.ExcludeID {
			continue
		}
		if !blocking.Contains(slot.Status) {
			continue
		}

		start, err := timeslot.ParseMinutes(slot.Start, "existing start_time")
		if err != nil {
			continue
		}
		end, err := timeslot.ParseMinutes(slot.End, "existing end_time")
		if err != nil {
			continue
		}

		if timeslot.Overlaps(candidate.Interval, timeslot.Interval{Start: start, End: end}) {
			return &slot
		}
	}
	return nil
}

// CheckConflict wraps FindConflict into the error returned to callers.
func CheckConflict(candidate Candidate, existing []Slot, blocking StatusSet) error {
	slot := FindConflict(candidate, existing, blocking)
	if slot == nil {
		return nil
	}
	return &apperror.ConflictError{
		ReservationID: slot.ID,
		Start:         slot.Start,
		End:           slot.End,
		Status:        string(slot.Status),
	}
}
