package timesheet_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickharris808/tribalhours/timesheet"
)

func testUsers() []timesheet.User {
	return []timesheet.User{
		{ID: "user-a", Email: "ada@example.com", LastName: "Adeyemi"},
		{ID: "user-b", Email: "bo@example.com", LastName: "Burke"},
	}
}

func TestAggregate_SumsHoursPerUser(t *testing.T) {
	// GIVEN: Entries [{A: 4}, {A: 3}, {B: 5}]
	// THEN: Totals {A: 7, B: 5}

	period := timesheet.CurrentPeriod(date(2024, time.January, 5))
	entries := []timesheet.WorkEntry{
		entry("user-a", date(2024, time.January, 2), 4, "", ""),
		entry("user-a", date(2024, time.January, 3), 3, "", ""),
		entry("user-b", date(2024, time.January, 2), 5, "", ""),
	}

	report := timesheet.Aggregate(entries, testUsers(), period)

	require.Len(t, report.Rows, 2)
	assert.Equal(t, "user-a", report.Rows[0].UserID)
	assert.True(t, report.Rows[0].TotalHours.Equal(decimal.NewFromInt(7)))
	assert.Equal(t, "user-b", report.Rows[1].UserID)
	assert.True(t, report.Rows[1].TotalHours.Equal(decimal.NewFromInt(5)))
}

func TestAggregate_FractionalHoursSumExactly(t *testing.T) {
	// Decimal arithmetic: 0.1 + 0.2 must be exactly 0.3.
	period := timesheet.CurrentPeriod(date(2024, time.January, 5))
	entries := []timesheet.WorkEntry{
		entry("user-a", date(2024, time.January, 2), 0.1, "", ""),
		entry("user-a", date(2024, time.January, 3), 0.2, "", ""),
	}

	report := timesheet.Aggregate(entries, testUsers(), period)

	require.Len(t, report.Rows, 1)
	assert.True(t, report.Rows[0].TotalHours.Equal(decimal.NewFromFloat(0.3)),
		"got %s", report.Rows[0].TotalHours)
}

func TestAggregate_JoinsIdentityFields(t *testing.T) {
	period := timesheet.CurrentPeriod(date(2024, time.January, 5))
	entries := []timesheet.WorkEntry{
		entry("user-b", date(2024, time.January, 2), 5, "clinic", "Ward B"),
	}

	report := timesheet.Aggregate(entries, testUsers(), period)

	require.Len(t, report.Rows, 1)
	assert.Equal(t, "bo@example.com", report.Rows[0].Email)
	assert.Equal(t, "Burke", report.Rows[0].LastName)

	require.Len(t, report.Detail, 1)
	assert.Equal(t, "Burke", report.Detail[0].LastName)
	assert.Equal(t, "clinic", report.Detail[0].Tasks)
}

func TestAggregate_DropsEntriesWithoutDirectoryRecord(t *testing.T) {
	// Inner-join semantics: an entry whose user is missing from the
	// directory contributes to neither summary nor detail.
	period := timesheet.CurrentPeriod(date(2024, time.January, 5))
	entries := []timesheet.WorkEntry{
		entry("ghost", date(2024, time.January, 2), 8, "", ""),
		entry("user-a", date(2024, time.January, 2), 4, "", ""),
	}

	report := timesheet.Aggregate(entries, testUsers(), period)

	require.Len(t, report.Rows, 1)
	assert.Equal(t, "user-a", report.Rows[0].UserID)
	require.Len(t, report.Detail, 1)
}

func TestAggregate_EmptyWindow(t *testing.T) {
	period := timesheet.PreviousCompletedPeriod(date(2024, time.January, 5))
	report := timesheet.Aggregate(nil, testUsers(), period)

	assert.True(t, report.Empty())
	assert.Empty(t, report.Rows)
}

func TestAggregate_DetailSortedByDate(t *testing.T) {
	period := timesheet.CurrentPeriod(date(2024, time.January, 5))
	entries := []timesheet.WorkEntry{
		entry("user-a", date(2024, time.January, 9), 2, "", ""),
		entry("user-b", date(2024, time.January, 2), 5, "", ""),
		entry("user-a", date(2024, time.January, 2), 4, "", ""),
	}

	report := timesheet.Aggregate(entries, testUsers(), period)

	require.Len(t, report.Detail, 3)
	assert.Equal(t, "Adeyemi", report.Detail[0].LastName)
	assert.Equal(t, "Burke", report.Detail[1].LastName)
	assert.Equal(t, date(2024, time.January, 9), report.Detail[2].Date)
}
