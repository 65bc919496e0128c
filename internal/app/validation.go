package app

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/example/labres/internal/apperror"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest checks the validate tags on a primary request struct and
// reports the first failure as a validation error.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("failed to validate request: %w", err)
	}

	fe := fieldErrs[0]
	field := snakeCase(fe.Field())
	switch fe.Tag() {
	case "required":
		return apperror.New(apperror.ErrValidation, "%s is required", field)
	case "datetime":
		return apperror.New(apperror.ErrValidation, "%s must be a date in YYYY-MM-DD format (got %q)", field, fe.Value())
	case "numeric":
		return apperror.New(apperror.ErrValidation, "%s must be a number (got %q)", field, fe.Value())
	case "max":
		return apperror.New(apperror.ErrValidation, "%s must be at most %s characters", field, fe.Param())
	case "gte":
		return apperror.New(apperror.ErrValidation, "%s must be at least %s", field, fe.Param())
	}
	return apperror.New(apperror.ErrValidation, "%s is invalid", field)
}

// snakeCase turns a Go field name such as RequesterID into requester_id.
func snakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
