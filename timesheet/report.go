/*
report.go - Admin report aggregation

PURPOSE:
  Groups a reporting window's entries by user and sums hours, joining each
  row to the user's identity fields for display. The ungrouped detail rows
  are kept alongside the summary for raw export.

SEMANTICS:
  - Grouping key is the user id; email and last name ride along for display.
  - Sum is plain decimal addition: no weighting, no overtime, no rounding.
  - Entries whose user id has no directory record are dropped, matching an
    inner join against the users table.
*/
package timesheet

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ReportRow is one user's total for the reporting window.
type ReportRow struct {
	UserID     string
	Email      string
	LastName   string
	TotalHours decimal.Decimal
}

// DetailRow is one work entry joined with its user's identity fields.
type DetailRow struct {
	WorkEntry
	Email    string
	LastName string
}

// Report is the aggregated admin view of one reporting window.
type Report struct {
	Period Period
	Rows   []ReportRow
	Detail []DetailRow
}

// Aggregate builds the admin report from a window's entries and the user
// directory. Summary rows sort by last name then user id; detail rows sort
// by date then last name so the export reads chronologically.
func Aggregate(entries []WorkEntry, users []User, period Period) Report {
	directory := make(map[string]User, len(users))
	for _, u := range users {
		directory[u.ID] = u
	}

	totals := make(map[string]decimal.Decimal)
	var detail []DetailRow
	for _, e := range entries {
		u, ok := directory[e.UserID]
		if !ok {
			continue
		}
		totals[e.UserID] = totals[e.UserID].Add(e.Hours)
		detail = append(detail, DetailRow{WorkEntry: e, Email: u.Email, LastName: u.LastName})
	}

	rows := make([]ReportRow, 0, len(totals))
	for userID, total := range totals {
		u := directory[userID]
		rows = append(rows, ReportRow{
			UserID:     userID,
			Email:      u.Email,
			LastName:   u.LastName,
			TotalHours: total,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].LastName != rows[j].LastName {
			return rows[i].LastName < rows[j].LastName
		}
		return rows[i].UserID < rows[j].UserID
	})
	sort.Slice(detail, func(i, j int) bool {
		if !detail[i].Date.Equal(detail[j].Date) {
			return detail[i].Date.Before(detail[j].Date)
		}
		if detail[i].LastName != detail[j].LastName {
			return detail[i].LastName < detail[j].LastName
		}
		return detail[i].UserID < detail[j].UserID
	})

	return Report{Period: period, Rows: rows, Detail: detail}
}

// Empty reports whether the window held no entries at all.
func (r Report) Empty() bool { return len(r.Detail) == 0 }
