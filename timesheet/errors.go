/*
errors.go - Centralized error types for the timesheet core

PURPOSE:
  All domain error values in one place. The failure taxonomy is small:
  authentication failures (no matching user), store failures (surfaced by
  the store implementations, wrapped), and the informational no-data case
  that admin reporting distinguishes from real failures.

USAGE:
  Callers test with errors.Is / errors.As:

    if errors.Is(err, timesheet.ErrUserNotFound) {
        // reject the login, no state change
    }
*/
package timesheet

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUserNotFound is returned when no user matches the presented
	// credentials. Surfaced as a login rejection, never as a server fault.
	ErrUserNotFound = errors.New("user not found")

	// ErrNoEntries is returned when a reporting window holds no work entries.
	// This is informational: the query succeeded, there is just nothing in it.
	ErrNoEntries = errors.New("no entries for period")

	// ErrMissingUser is returned when an entry has no user identifier.
	ErrMissingUser = errors.New("entry has no user id")

	// ErrMissingDate is returned when an entry has no calendar date.
	ErrMissingDate = errors.New("entry has no date")

	// ErrInvalidHours is returned when logged hours fall outside [0, 24].
	ErrInvalidHours = errors.New("hours outside valid range")

	// ErrInvalidCredentials is returned when the presented credentials are
	// missing fields the configured identity scheme requires.
	ErrInvalidCredentials = errors.New("incomplete credentials")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidHoursError reports an out-of-range hours value.
type InvalidHoursError struct {
	Date  TimePoint
	Hours decimal.Decimal
}

func (e *InvalidHoursError) Error() string {
	return fmt.Sprintf("invalid hours %s on %s: must be between 0 and 24", e.Hours, e.Date)
}

func (e *InvalidHoursError) Unwrap() error { return ErrInvalidHours }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input
// rather than a store fault.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidHours) ||
		errors.Is(err, ErrMissingUser) ||
		errors.Is(err, ErrMissingDate) ||
		errors.Is(err, ErrInvalidCredentials)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}
