package domain

import (
	"errors"
	"strings"
)

// InternalErrorMessage is shown to the end user in place of any system
// error; the full error chain stays available for operator diagnostics.
const InternalErrorMessage = "Une erreur interne s'est produite, veuillez contacter l'équipe technique."

// ValidationError carries the aggregated list of user-correctable data
// problems found in one pass. Validation never stops at the first failure.
type ValidationError struct {
	Violations []string
}

// NewValidationError creates a ValidationError from the given violations
func NewValidationError(violations ...string) *ValidationError {
	return &ValidationError{Violations: violations}
}

// Error joins the violations into one human-readable message
func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, " ")
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// UserMessage returns the message safe to surface to the end user:
// the aggregated violation list for validation errors, the generic internal
// notice for everything else.
func UserMessage(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	return InternalErrorMessage
}
