/*
reconcile.go - Sparse-to-dense entry merging over a billing period

PURPOSE:
  The store hands back whatever entries a user actually saved, which for a
  fresh period is nothing and mid-period is a scattered subset. The entry
  form needs one row per calendar day. Reconcile merges the persisted
  records onto the period's full day range, synthesizing blank entries for
  the gaps.

CONTRACT:
  - Output holds exactly one entry per day in [period.Start, period.End].
  - Output is ascending by date regardless of input order.
  - Days with a persisted record keep its hours/tasks/facility; days
    without get hours=0, tasks="", facility="".
  - Idempotent: reconciling reconciled output reproduces it.
*/
package timesheet

import "github.com/shopspring/decimal"

// Reconcile merges a sparse set of persisted entries onto the full day range
// of a period, producing a dense ordered sequence ready for display and
// re-submission. Entries dated outside the period are ignored. If the input
// somehow carries two entries for the same date, the later one wins, matching
// the store's last-write-wins upsert.
func Reconcile(entries []WorkEntry, period Period, userID string) []WorkEntry {
	byDate := make(map[string]WorkEntry, len(entries))
	for _, e := range entries {
		if period.Contains(e.Date) {
			byDate[e.Date.String()] = e
		}
	}

	days := period.Days()
	dense := make([]WorkEntry, 0, len(days))
	for _, day := range days {
		if e, ok := byDate[day.String()]; ok {
			dense = append(dense, e)
			continue
		}
		dense = append(dense, WorkEntry{
			UserID: userID,
			Date:   day,
			Hours:  decimal.Zero,
		})
	}
	return dense
}
