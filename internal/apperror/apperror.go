// Package apperror defines the error taxonomy returned by the reservation core.
// Every error carries one of the sentinel kinds so callers can branch with errors.Is.
// This package has no internal dependencies to avoid import cycles.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds.
var (
	ErrFormat          = errors.New("format error")
	ErrValidation      = errors.New("validation error")
	ErrState           = errors.New("state error")
	ErrConflict        = errors.New("conflict error")
	ErrIncompleteAsset = errors.New("incomplete asset")
)

// Error is a message tagged with a sentinel kind.
type Error struct {
	Kind error
	Msg  string
}

// New builds an Error of the given kind with a formatted message.
func New(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// FormatError reports a malformed HH:mm value.
type FormatError struct {
	Field string
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid format in %s (%q): use HH:mm, e.g. 09:30", e.Field, e.Value)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// ConflictError reports the blocking reservation that overlaps a candidate interval.
type ConflictError struct {
	ReservationID string
	Start         string
	End           string
	Status        string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("lab already has reservation %s (%s) from %s to %s",
		e.ReservationID, strings.ToLower(e.Status), e.Start, e.End)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// IncompleteAssetError reports an asset that lacks the fields depreciation needs.
type IncompleteAssetError struct {
	AssetID string
	Missing []string
}

func (e *IncompleteAssetError) Error() string {
	if e.AssetID == "" {
		return fmt.Sprintf("asset is missing %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("asset %s is missing %s", e.AssetID, strings.Join(e.Missing, ", "))
}

func (e *IncompleteAssetError) Unwrap() error { return ErrIncompleteAsset }

// KindOf returns the sentinel kind of err, or nil for infrastructure errors.
func KindOf(err error) error {
	for _, kind := range []error{ErrFormat, ErrValidation, ErrState, ErrConflict, ErrIncompleteAsset} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
