package timesheet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickharris808/tribalhours/timesheet"
)

func TestParseIdentityScheme(t *testing.T) {
	scheme, err := timesheet.ParseIdentityScheme("lastname_phone")
	require.NoError(t, err)
	assert.Equal(t, timesheet.SchemeLastNamePhone, scheme)

	// Empty config falls back to the default scheme.
	scheme, err = timesheet.ParseIdentityScheme("")
	require.NoError(t, err)
	assert.Equal(t, timesheet.SchemeEmailPhone, scheme)

	_, err = timesheet.ParseIdentityScheme("fingerprint")
	assert.Error(t, err)
}

func TestIdentityScheme_Validate(t *testing.T) {
	emailCreds := timesheet.Credentials{Email: "ada@example.com", PhoneNumber: "555-0101"}
	nameCreds := timesheet.Credentials{LastName: "Adeyemi", PhoneNumber: "555-0101"}

	assert.NoError(t, timesheet.SchemeEmailPhone.Validate(emailCreds))
	assert.ErrorIs(t, timesheet.SchemeEmailPhone.Validate(nameCreds), timesheet.ErrInvalidCredentials)

	assert.NoError(t, timesheet.SchemeLastNamePhone.Validate(nameCreds))
	assert.ErrorIs(t, timesheet.SchemeLastNamePhone.Validate(emailCreds), timesheet.ErrInvalidCredentials)
}

func TestIdentityScheme_Matches(t *testing.T) {
	user := timesheet.User{
		ID:          "user-a",
		Email:       "Ada@Example.com",
		LastName:    "Adeyemi",
		PhoneNumber: "555-0101",
	}

	// Textual field is case-insensitive, phone is exact.
	assert.True(t, timesheet.SchemeEmailPhone.Matches(
		timesheet.Credentials{Email: "ada@example.com", PhoneNumber: "555-0101"}, user))
	assert.False(t, timesheet.SchemeEmailPhone.Matches(
		timesheet.Credentials{Email: "ada@example.com", PhoneNumber: "555-9999"}, user))

	assert.True(t, timesheet.SchemeLastNamePhone.Matches(
		timesheet.Credentials{LastName: "adeyemi", PhoneNumber: "555-0101"}, user))
	assert.False(t, timesheet.SchemeLastNamePhone.Matches(
		timesheet.Credentials{LastName: "Burke", PhoneNumber: "555-0101"}, user))
}

func TestWorkEntry_Validate(t *testing.T) {
	good := entry("user-a", date(2024, 1, 5), 7.5, "rounds", "Ward A")
	assert.NoError(t, good.Validate())

	tooMany := entry("user-a", date(2024, 1, 5), 24.5, "", "")
	assert.ErrorIs(t, tooMany.Validate(), timesheet.ErrInvalidHours)

	negative := entry("user-a", date(2024, 1, 5), -1, "", "")
	assert.ErrorIs(t, negative.Validate(), timesheet.ErrInvalidHours)

	noUser := entry("", date(2024, 1, 5), 8, "", "")
	assert.ErrorIs(t, noUser.Validate(), timesheet.ErrMissingUser)

	noDate := timesheet.WorkEntry{UserID: "user-a"}
	assert.ErrorIs(t, noDate.Validate(), timesheet.ErrMissingDate)
}
