/*
Package timesheet provides the domain core of the biweekly timesheet system.

PURPOSE:
  Employees log hours, tasks and facility per calendar day inside a biweekly
  billing period. This package owns the period math, the work-entry model and
  its validation, the reconciliation of sparse persisted entries onto a dense
  day range, and the report aggregation consumed by administrators.

KEY CONCEPTS:
  - Period: a biweekly window, "Part 1" (1st-15th) or "Part 2" (16th-eom)
  - WorkEntry: one user's logged hours/tasks/facility for one calendar date,
    unique per (user, date)
  - Reconciliation: filling period gaps so every day has exactly one entry
  - Report: per-user hour totals plus the joined detail rows

DESIGN PRINCIPLES:
  1. Precision: hours use decimal.Decimal, never floats
  2. Derived data: period label/month/year are always computed from the
     entry date, never trusted from storage
  3. Injection: persistence sits behind UserStore/EntryStore interfaces

SEE ALSO:
  - period.go: Period computation
  - reconcile.go: Sparse-to-dense entry merging
  - report.go: Admin aggregation
  - store.go: Persistence contracts
*/
package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// USER - Identity record, created out-of-band and read-only here
// =============================================================================

type User struct {
	ID          string
	Email       string
	LastName    string
	PhoneNumber string
	IsAdmin     bool
	CreatedAt   time.Time
}

// =============================================================================
// WORK ENTRY - One user's logged work for one calendar date
// =============================================================================

// WorkEntry records the work one user logged for one calendar date.
// (UserID, Date) is the natural key: at most one entry exists per pair, and
// saving again for the same pair overwrites hours/tasks/facility in place.
type WorkEntry struct {
	ID       string
	UserID   string
	Date     TimePoint
	Hours    decimal.Decimal
	Tasks    string
	Facility string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// maxDailyHours bounds a single day's logged hours.
var maxDailyHours = decimal.NewFromInt(24)

// Validate checks the entry's fields. Hours must lie in [0, 24]; fractional
// values are allowed.
func (e WorkEntry) Validate() error {
	if e.UserID == "" {
		return ErrMissingUser
	}
	if e.Date.IsZero() {
		return ErrMissingDate
	}
	if e.Hours.IsNegative() || e.Hours.GreaterThan(maxDailyHours) {
		return &InvalidHoursError{Date: e.Date, Hours: e.Hours}
	}
	return nil
}

// Period returns the billing period containing this entry's date. The period
// label, month and year attached to a persisted row are derived from the date
// through this function rather than read back from storage.
func (e WorkEntry) Period() Period {
	return PeriodFor(e.Date)
}

// IsBlank reports whether the entry carries no logged work. Blank entries are
// what reconciliation synthesizes for days with no persisted record.
func (e WorkEntry) IsBlank() bool {
	return e.Hours.IsZero() && e.Tasks == "" && e.Facility == ""
}
