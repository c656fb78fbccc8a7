/*
period.go - Biweekly billing period computation

PURPOSE:
  Maps a calendar date onto the billing period that contains it. Every month
  holds exactly two periods: "Part 1" covers the 1st through the 15th,
  "Part 2" covers the 16th through the last calendar day of the month.

EDGE CASES:
  - "Part 2" end dates track the true month length: Feb 28 or 29 depending
    on leap year, Dec 31 rolling over the year boundary.
  - The previous completed period of "Part 1" of January is "Part 2" of
    December of the PRIOR year.

PURITY:
  Every function here is a pure, total function over valid calendar dates.
  No error conditions, no side effects.

SEE ALSO:
  - reconcile.go: Densifies entries over Period.Days()
  - time.go: TimePoint and EndOfMonth
*/
package timesheet

// PeriodLabel identifies which half of the month a period covers.
type PeriodLabel string

const (
	PartOne PeriodLabel = "Part 1" // 1st through 15th
	PartTwo PeriodLabel = "Part 2" // 16th through last day of month
)

// Period is one biweekly billing window, inclusive on both ends.
type Period struct {
	Label PeriodLabel
	Start TimePoint
	End   TimePoint
}

// midpointDay is the last day of "Part 1" in every month.
const midpointDay = 15

// PeriodFor returns the period containing the given date.
func PeriodFor(date TimePoint) Period {
	year, month := date.Year(), date.Month()
	if date.Day() <= midpointDay {
		return Period{
			Label: PartOne,
			Start: NewTimePoint(year, month, 1),
			End:   NewTimePoint(year, month, midpointDay),
		}
	}
	return Period{
		Label: PartTwo,
		Start: NewTimePoint(year, month, midpointDay+1),
		End:   EndOfMonth(year, month),
	}
}

// CurrentPeriod returns the period containing today.
func CurrentPeriod(today TimePoint) Period {
	return PeriodFor(today)
}

// PreviousCompletedPeriod returns the most recent period that has fully
// elapsed as of today: step one day before the current period's start, then
// derive that day's own period. Crosses month and year boundaries.
func PreviousCompletedPeriod(today TimePoint) Period {
	return PeriodFor(PeriodFor(today).Start.AddDays(-1))
}

// Contains returns true if the date falls within the period [Start, End].
func (p Period) Contains(date TimePoint) bool {
	return date.AfterOrEqual(p.Start) && date.BeforeOrEqual(p.End)
}

// Days returns every calendar day in the period, ascending.
func (p Period) Days() []TimePoint {
	var days []TimePoint
	current := p.Start
	for current.BeforeOrEqual(p.End) {
		days = append(days, current)
		current = current.AddDays(1)
	}
	return days
}

func (p Period) String() string {
	return string(p.Label) + " [" + p.Start.String() + ", " + p.End.String() + "]"
}
