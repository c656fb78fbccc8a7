package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickharris808/tribalhours/store/sqlite"
	"github.com/nickharris808/tribalhours/timesheet"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seedUser(t *testing.T, s *sqlite.Store, u timesheet.User) {
	require.NoError(t, s.SaveUser(context.Background(), u))
}

func workEntry(userID string, d timesheet.TimePoint, hours float64, tasks, facility string) timesheet.WorkEntry {
	return timesheet.WorkEntry{
		UserID:   userID,
		Date:     d,
		Hours:    decimal.NewFromFloat(hours),
		Tasks:    tasks,
		Facility: facility,
	}
}

// =============================================================================
// USER LOOKUP
// =============================================================================

func TestFindUser_EmailPhoneScheme(t *testing.T) {
	s := newTestStore(t)
	seedUser(t, s, timesheet.User{
		ID: "user-1", Email: "ada@example.com", LastName: "Adeyemi",
		PhoneNumber: "555-0101", IsAdmin: false,
	})
	ctx := context.Background()

	u, err := s.FindUser(ctx, timesheet.SchemeEmailPhone,
		timesheet.Credentials{Email: "Ada@Example.com", PhoneNumber: "555-0101"})
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)
	assert.False(t, u.IsAdmin)

	// Wrong phone: rejection, not a server fault.
	_, err = s.FindUser(ctx, timesheet.SchemeEmailPhone,
		timesheet.Credentials{Email: "ada@example.com", PhoneNumber: "555-9999"})
	assert.ErrorIs(t, err, timesheet.ErrUserNotFound)
}

func TestFindUser_LastNamePhoneScheme(t *testing.T) {
	s := newTestStore(t)
	seedUser(t, s, timesheet.User{
		ID: "user-2", Email: "bo@example.com", LastName: "Burke",
		PhoneNumber: "555-0202", IsAdmin: true,
	})
	ctx := context.Background()

	u, err := s.FindUser(ctx, timesheet.SchemeLastNamePhone,
		timesheet.Credentials{LastName: "burke", PhoneNumber: "555-0202"})
	require.NoError(t, err)
	assert.Equal(t, "user-2", u.ID)
	assert.True(t, u.IsAdmin)
}

func TestFindUser_IncompleteCredentials(t *testing.T) {
	s := newTestStore(t)

	_, err := s.FindUser(context.Background(), timesheet.SchemeEmailPhone,
		timesheet.Credentials{Email: "ada@example.com"})
	assert.ErrorIs(t, err, timesheet.ErrInvalidCredentials)
}

func TestListUsers_OrderedByLastName(t *testing.T) {
	s := newTestStore(t)
	seedUser(t, s, timesheet.User{ID: "u1", LastName: "Zhou", PhoneNumber: "1"})
	seedUser(t, s, timesheet.User{ID: "u2", LastName: "Adeyemi", PhoneNumber: "2"})

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Adeyemi", users[0].LastName)
	assert.Equal(t, "Zhou", users[1].LastName)
}

// =============================================================================
// ENTRY UPSERT
// =============================================================================

func TestUpsert_SecondWriteWins(t *testing.T) {
	// GIVEN: An entry for (user, date)
	// WHEN: Writing the same key twice
	// THEN: One stored record with the second write's field values

	s := newTestStore(t)
	ctx := context.Background()
	day := timesheet.NewTimePoint(2024, time.January, 5)

	require.NoError(t, s.Upsert(ctx, workEntry("user-1", day, 8, "rounds", "Ward A")))
	require.NoError(t, s.Upsert(ctx, workEntry("user-1", day, 6.5, "clinic", "Ward B")))

	entries, err := s.FetchEntries(ctx, "user-1", day, day)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Hours.Equal(decimal.NewFromFloat(6.5)))
	assert.Equal(t, "clinic", entries[0].Tasks)
	assert.Equal(t, "Ward B", entries[0].Facility)
}

func TestUpsert_IdempotentInEffect(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	day := timesheet.NewTimePoint(2024, time.January, 5)
	e := workEntry("user-1", day, 8, "rounds", "Ward A")

	require.NoError(t, s.Upsert(ctx, e))
	require.NoError(t, s.Upsert(ctx, e))

	entries, err := s.FetchEntries(ctx, "user-1", day, day)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestUpsert_RejectsInvalidHours(t *testing.T) {
	s := newTestStore(t)
	err := s.Upsert(context.Background(),
		workEntry("user-1", timesheet.NewTimePoint(2024, time.January, 5), 25, "", ""))
	assert.ErrorIs(t, err, timesheet.ErrInvalidHours)
}

func TestUpsertBatch_Atomic(t *testing.T) {
	// A batch with one bad entry writes nothing.
	s := newTestStore(t)
	ctx := context.Background()

	batch := []timesheet.WorkEntry{
		workEntry("user-1", timesheet.NewTimePoint(2024, time.January, 2), 8, "", ""),
		workEntry("user-1", timesheet.NewTimePoint(2024, time.January, 3), -2, "", ""),
	}
	assert.ErrorIs(t, s.UpsertBatch(ctx, batch), timesheet.ErrInvalidHours)

	entries, err := s.FetchEntries(ctx, "user-1",
		timesheet.NewTimePoint(2024, time.January, 1),
		timesheet.NewTimePoint(2024, time.January, 31))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpsertBatch_FullPeriodRoundTrip(t *testing.T) {
	// A full form submission (15 rows) lands and reads back densely.
	s := newTestStore(t)
	ctx := context.Background()
	period := timesheet.CurrentPeriod(timesheet.NewTimePoint(2024, time.January, 5))

	var batch []timesheet.WorkEntry
	for i, day := range period.Days() {
		batch = append(batch, workEntry("user-1", day, float64(i%9), "day", "Ward A"))
	}
	require.NoError(t, s.UpsertBatch(ctx, batch))

	entries, err := s.FetchEntries(ctx, "user-1", period.Start, period.End)
	require.NoError(t, err)
	require.Len(t, entries, 15)
	for i := 1; i < len(entries); i++ {
		assert.True(t, entries[i-1].Date.Before(entries[i].Date))
	}
}

func TestFetchEntries_FractionalHoursSurvive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	day := timesheet.NewTimePoint(2024, time.January, 5)

	require.NoError(t, s.Upsert(ctx, workEntry("user-1", day, 7.25, "", "")))

	entries, err := s.FetchEntries(ctx, "user-1", day, day)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Hours.Equal(decimal.NewFromFloat(7.25)),
		"got %s", entries[0].Hours)
}

func TestFetchAllEntries_Unscoped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	from := timesheet.NewTimePoint(2023, time.December, 16)
	to := timesheet.NewTimePoint(2023, time.December, 31)

	require.NoError(t, s.Upsert(ctx, workEntry("user-1", timesheet.NewTimePoint(2023, time.December, 18), 8, "", "")))
	require.NoError(t, s.Upsert(ctx, workEntry("user-2", timesheet.NewTimePoint(2023, time.December, 20), 6, "", "")))
	require.NoError(t, s.Upsert(ctx, workEntry("user-1", timesheet.NewTimePoint(2024, time.January, 2), 4, "", "")))

	entries, err := s.FetchAllEntries(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "user-1", entries[0].UserID)
	assert.Equal(t, "user-2", entries[1].UserID)
}
