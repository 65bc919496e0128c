// Package reservation contains the pure business logic for lab reservations.
// This is part of the Functional Core - no I/O, only pure functions.
package reservation

import (
	"sort"
	"strings"

	"github.com/example/labres/internal/apperror"
)

// Status represents the possible states of a reservation.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// ParseStatus accepts a status in any letter case.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	}
	return "", apperror.New(apperror.ErrValidation, "unknown reservation status %q", s)
}

// IsTerminal reports whether no further transition is allowed from s.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// InitialStatus returns the status of a newly submitted reservation.
func InitialStatus() Status {
	return StatusPending
}

// StatusSet is the set of statuses that block an overlapping reservation.
type StatusSet map[Status]bool

// NewStatusSet builds a set from the given statuses.
func NewStatusSet(statuses ...Status) StatusSet {
	set := make(StatusSet, len(statuses))
	for _, s := range statuses {
		set[s] = true
	}
	return set
}

// Contains reports whether s is in the set.
func (set StatusSet) Contains(s Status) bool {
	return set[s]
}

// Slice returns the statuses in a stable order, for query parameters.
func (set StatusSet) Slice() []Status {
	out := make([]Status, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns Slice as plain strings.
func (set StatusSet) Strings() []string {
	statuses := set.Slice()
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// ConflictPolicy selects which statuses block a new submission.
type ConflictPolicy string

const (
	// PolicyApprovedOnly lets pending requests coexist; only approved bookings block.
	PolicyApprovedOnly ConflictPolicy = "approved_only"
	// PolicyApprovedAndPending gives the slot to the first pending request as well.
	PolicyApprovedAndPending ConflictPolicy = "approved_and_pending"
)

// DefaultConflictPolicy is used when no policy is configured.
const DefaultConflictPolicy = PolicyApprovedOnly

// ParseConflictPolicy validates a configured policy name.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch ConflictPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultConflictPolicy, nil
	case PolicyApprovedOnly:
		return PolicyApprovedOnly, nil
	case PolicyApprovedAndPending:
		return PolicyApprovedAndPending, nil
	}
	return "", apperror.New(apperror.ErrValidation, "unknown conflict policy %q (want %s or %s)", s, PolicyApprovedOnly, PolicyApprovedAndPending)
}

// SubmissionBlockingStatuses returns the statuses a new submission is checked against.
// Rejected reservations never block.
func SubmissionBlockingStatuses(policy ConflictPolicy) StatusSet {
	if policy == PolicyApprovedAndPending {
		return NewStatusSet(StatusApproved, StatusPending)
	}
	return NewStatusSet(StatusApproved)
}

// ApprovalBlockingStatuses returns the statuses an approval is checked against.
// Approving only has to avoid other approved bookings.
func ApprovalBlockingStatuses() StatusSet {
	return NewStatusSet(StatusApproved)
}

// ValidationMode tells the persistence path whether to run the availability check.
type ValidationMode int

const (
	// ModeFullCheck validates the interval and re-runs the availability query.
	ModeFullCheck ValidationMode = iota
	// ModeSkipCheck is used by transitions that already ran their own check.
	ModeSkipCheck
)

func (m ValidationMode) String() string {
	if m == ModeSkipCheck {
		return "skip"
	}
	return "full"
}

// TransitionResult captures the fields a transition changes.
type TransitionResult struct {
	NewStatus       Status
	RejectionReason string
	Mode            ValidationMode
}

// ApplyApproval returns the result of approving a pending reservation.
// The caller has already checked availability against approved bookings.
func ApplyApproval() TransitionResult {
	return TransitionResult{
		NewStatus: StatusApproved,
		Mode:      ModeSkipCheck,
	}
}

// ApplyRejection returns the result of rejecting a pending reservation.
// A rejected reservation frees its slot, so no availability check is needed.
func ApplyRejection(reason string) TransitionResult {
	return TransitionResult{
		NewStatus:       StatusRejected,
		RejectionReason: strings.TrimSpace(reason),
		Mode:            ModeSkipCheck,
	}
}
