// Package lab contains the pure business logic for bookable labs.
// This is part of the Functional Core - no I/O, only pure functions.
package lab

import (
	"fmt"
	"strings"

	"github.com/example/labres/internal/apperror"
)

// Status is the availability state of a lab.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// ParseStatus validates a lab status name. Empty input is returned as "".
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case StatusActive:
		return StatusActive, nil
	case StatusInactive:
		return StatusInactive, nil
	}
	return "", apperror.New(apperror.ErrValidation, "unknown lab status %q (want ACTIVE or INACTIVE)", s)
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error returns the guard result as a state error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return apperror.New(apperror.ErrState, "%s", r.Reason)
}

// DeactivateContext provides context for the deactivation guard.
type DeactivateContext struct {
	LabID  string
	Exists bool
	Status Status
}

// CanDeactivateLab evaluates whether a lab can be taken out of service.
// Rules: the lab must exist and still be active.
func CanDeactivateLab(ctx DeactivateContext) GuardResult {
	if !ctx.Exists {
		return GuardResult{Reason: fmt.Sprintf("lab %s not found", ctx.LabID)}
	}
	if ctx.Status != StatusActive {
		return GuardResult{Reason: fmt.Sprintf("lab %s is already inactive", ctx.LabID)}
	}
	return GuardResult{Allowed: true}
}

// GenerateLabID generates a lab ID from the current max number.
func GenerateLabID(currentMax int) string {
	return fmt.Sprintf("LAB-%03d", currentMax+1)
}
