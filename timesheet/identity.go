/*
identity.go - Configurable identity-field policy for authentication

PURPOSE:
  Which user fields identify someone at login is a deployment choice, not a
  code fork: some installations match email + phone number, others match
  last name + phone number. The scheme is selected once at startup and
  threaded through authentication; everything downstream sees only a User.
*/
package timesheet

import "strings"

// IdentityScheme names the set of user fields matched at login.
type IdentityScheme string

const (
	SchemeEmailPhone    IdentityScheme = "email_phone"
	SchemeLastNamePhone IdentityScheme = "lastname_phone"
)

// ParseIdentityScheme validates a scheme name from configuration.
func ParseIdentityScheme(s string) (IdentityScheme, error) {
	switch IdentityScheme(s) {
	case SchemeEmailPhone, SchemeLastNamePhone:
		return IdentityScheme(s), nil
	case "":
		return SchemeEmailPhone, nil
	}
	return "", ErrInvalidCredentials
}

// Credentials carries the raw identity fields presented at login. Only the
// fields the active scheme uses are consulted; the rest are ignored.
type Credentials struct {
	Email       string
	LastName    string
	PhoneNumber string
}

// Validate checks that the fields the scheme requires are present.
func (s IdentityScheme) Validate(c Credentials) error {
	switch s {
	case SchemeEmailPhone:
		if strings.TrimSpace(c.Email) == "" || strings.TrimSpace(c.PhoneNumber) == "" {
			return ErrInvalidCredentials
		}
	case SchemeLastNamePhone:
		if strings.TrimSpace(c.LastName) == "" || strings.TrimSpace(c.PhoneNumber) == "" {
			return ErrInvalidCredentials
		}
	default:
		return ErrInvalidCredentials
	}
	return nil
}

// Matches reports whether the credentials identify the user under the scheme.
// Matching is exact on the phone number and case-insensitive on the textual
// field, mirroring how the records are keyed in the store.
func (s IdentityScheme) Matches(c Credentials, u User) bool {
	if c.PhoneNumber != u.PhoneNumber {
		return false
	}
	switch s {
	case SchemeEmailPhone:
		return strings.EqualFold(c.Email, u.Email)
	case SchemeLastNamePhone:
		return strings.EqualFold(c.LastName, u.LastName)
	}
	return false
}
