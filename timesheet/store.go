/*
store.go - Persistence contracts for users and work entries

PURPOSE:
  Defines the interface between the domain logic and the database. Store
  implementations are constructed explicitly at startup and injected; no
  package-level client exists anywhere.

KEY INTERFACES:
  UserStore:  Read-only user lookup (users are created out-of-band)
  EntryStore: Work-entry fetch and natural-key upsert

UPSERT CONTRACT:
  Upsert is keyed by (user_id, date). If a row exists for the pair, its
  hours/tasks/facility are overwritten in place; otherwise a row is
  inserted. No versioning, no audit trail: last write wins. UpsertBatch
  applies one form submission atomically, which also closes the
  check-then-write race between the existence probe and the write.

IMPLEMENTATIONS:
  - store/sqlite: Production SQLite
  - timesheet/store: In-memory for testing
*/
package timesheet

import "context"

// UserStore looks up identity records. Users are provisioned outside this
// system; nothing here creates or mutates them.
type UserStore interface {
	// FindUser returns the user matching the credentials under the scheme,
	// or ErrUserNotFound.
	FindUser(ctx context.Context, scheme IdentityScheme, creds Credentials) (*User, error)

	// ListUsers returns all users, for joining report rows to identities.
	ListUsers(ctx context.Context) ([]User, error)
}

// EntryStore persists work entries keyed by (user, date).
type EntryStore interface {
	// FetchEntries returns one user's entries with dates in [from, to].
	// The result may be sparse or empty.
	FetchEntries(ctx context.Context, userID string, from, to TimePoint) ([]WorkEntry, error)

	// FetchAllEntries returns every user's entries in [from, to], for
	// admin reporting.
	FetchAllEntries(ctx context.Context, from, to TimePoint) ([]WorkEntry, error)

	// Upsert writes one entry: insert on first save for its (user, date),
	// overwrite hours/tasks/facility on every later save.
	Upsert(ctx context.Context, entry WorkEntry) error

	// UpsertBatch upserts a full form submission atomically. Either every
	// entry lands or none do.
	UpsertBatch(ctx context.Context, entries []WorkEntry) error
}
