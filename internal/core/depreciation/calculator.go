// Package depreciation computes straight-line asset depreciation.
// This is part of the Functional Core - no I/O, only pure functions.
package depreciation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/labres/internal/apperror"
)

// MoneyPlaces is the number of decimal places money values are rounded to.
const MoneyPlaces = 2

// Asset holds the fields depreciation is derived from.
// Nil or zero fields mean the value was never recorded.
type Asset struct {
	ID              string
	Cost            *decimal.Decimal
	AcquisitionDate *time.Time
	UsefulLifeYears int
}

// Result is the outcome of a depreciation computation as of a given date.
type Result struct {
	AssetID            string
	AsOf               time.Time
	ElapsedYears       int
	AnnualDepreciation decimal.Decimal
	Value              decimal.Decimal
}

// Compute returns the straight-line book value of asset as of asOf.
// Elapsed time counts whole calendar years: a year is only counted once the
// acquisition anniversary has been reached. The annual amount is rounded to
// cents half-up, and the value never drops below zero.
func Compute(asset Asset, asOf time.Time) (Result, error) {
	if missing := MissingFields(asset); len(missing) > 0 {
		return Result{}, &apperror.IncompleteAssetError{AssetID: asset.ID, Missing: missing}
	}

	cost := *asset.Cost
	life := asset.UsefulLifeYears

	elapsed := CalendarYearsBetween(*asset.AcquisitionDate, asOf)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > life {
		elapsed = life
	}

	annual := cost.DivRound(decimal.NewFromInt(int64(life)), MoneyPlaces)
	value := cost.Sub(annual.Mul(decimal.NewFromInt(int64(elapsed))))
	if value.IsNegative() {
		value = decimal.Zero
	}

	return Result{
		AssetID:            asset.ID,
		AsOf:               asOf,
		ElapsedYears:       elapsed,
		AnnualDepreciation: annual,
		Value:              value.Round(MoneyPlaces),
	}, nil
}

// CurrentValue returns the book value as of asOf, falling back to the recorded
// cost when the asset cannot be depreciated. ok is false when no value is known.
func CurrentValue(asset Asset, asOf time.Time) (value decimal.Decimal, ok bool) {
	result, err := Compute(asset, asOf)
	if err == nil {
		return result.Value, true
	}
	if asset.Cost != nil {
		return *asset.Cost, true
	}
	return decimal.Zero, false
}

// MissingFields lists the fields that prevent depreciation.
func MissingFields(asset Asset) []string {
	var missing []string
	if asset.Cost == nil {
		missing = append(missing, "acquisition cost")
	}
	if asset.UsefulLifeYears <= 0 {
		missing = append(missing, "useful life")
	}
	if asset.AcquisitionDate == nil {
		missing = append(missing, "acquisition date")
	}
	return missing
}

// CalendarYearsBetween returns the number of whole calendar years from start to
// end, negative when end is before start. Times are compared by date only.
func CalendarYearsBetween(start, end time.Time) int {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()

	if ey < sy || (ey == sy && (em < sm || (em == sm && ed < sd))) {
		return -CalendarYearsBetween(end, start)
	}

	years := ey - sy
	if em < sm || (em == sm && ed < sd) {
		years--
	}
	return years
}
