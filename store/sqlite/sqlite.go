/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements timesheet.UserStore and timesheet.EntryStore over two tables.
  The store is constructed explicitly at startup with its database path and
  injected into the API layer; no package-level connection exists.

KEY TABLES:
  users:     Identity records (provisioned out-of-band, read-only here)
  work_done: One row per (user_id, date), overwritten in place on re-save

UPSERT:
  work_done carries a UNIQUE(user_id, date) constraint and writes go through
  INSERT ... ON CONFLICT DO UPDATE, so insert-or-overwrite is a single
  statement. UpsertBatch wraps a submission in one transaction: a form save
  either lands completely or not at all, and two overlapping saves for the
  same key serialize at the database instead of interleaving.

DERIVED COLUMNS:
  work_done carries period/month/year columns for reporting convenience,
  but their values are always recomputed from the date on write and never
  read back. Readers derive period data from the date column alone.

WAL MODE:
  SQLite is opened with WAL for better concurrency: readers don't block,
  single writer at a time.

USAGE:
  store, err := sqlite.New("./data/timesheet.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - timesheet/store.go: Interface definitions
  - timesheet/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/nickharris808/tribalhours/timesheet"
)

// Store implements the timesheet storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Identity records, provisioned outside this system
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		phone_number TEXT NOT NULL DEFAULT '',
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_users_email_phone
		ON users(email, phone_number);
	CREATE INDEX IF NOT EXISTS idx_users_lastname_phone
		ON users(last_name, phone_number);

	-- One row per user per calendar day, overwritten in place on re-save
	CREATE TABLE IF NOT EXISTS work_done (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		hours_worked TEXT NOT NULL DEFAULT '0',
		tasks_done TEXT NOT NULL DEFAULT '',
		facility TEXT NOT NULL DEFAULT '',
		period TEXT NOT NULL,
		month INTEGER NOT NULL,
		year INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE(user_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_work_done_date
		ON work_done(date);
	CREATE INDEX IF NOT EXISTS idx_work_done_user_date
		ON work_done(user_id, date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// USER STORE (timesheet.UserStore interface)
// =============================================================================

// FindUser returns the user matching the credentials under the scheme, or
// timesheet.ErrUserNotFound. Matching is exact on phone number and
// case-insensitive on the textual field.
func (s *Store) FindUser(ctx context.Context, scheme timesheet.IdentityScheme, creds timesheet.Credentials) (*timesheet.User, error) {
	if err := scheme.Validate(creds); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var query string
	var field string
	switch scheme {
	case timesheet.SchemeLastNamePhone:
		query = `SELECT id, email, last_name, phone_number, is_admin, created_at
			FROM users WHERE last_name = ? COLLATE NOCASE AND phone_number = ?`
		field = creds.LastName
	default:
		query = `SELECT id, email, last_name, phone_number, is_admin, created_at
			FROM users WHERE email = ? COLLATE NOCASE AND phone_number = ?`
		field = creds.Email
	}

	var u timesheet.User
	var createdAt string
	err := s.db.QueryRowContext(ctx, query, field, creds.PhoneNumber).
		Scan(&u.ID, &u.Email, &u.LastName, &u.PhoneNumber, &u.IsAdmin, &createdAt)
	if err == sql.ErrNoRows {
		return nil, timesheet.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}

// ListUsers returns all users ordered by last name.
func (s *Store) ListUsers(ctx context.Context) ([]timesheet.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, email, last_name, phone_number, is_admin, created_at FROM users ORDER BY last_name, id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []timesheet.User
	for rows.Next() {
		var u timesheet.User
		var createdAt string
		if err := rows.Scan(&u.ID, &u.Email, &u.LastName, &u.PhoneNumber, &u.IsAdmin, &createdAt); err != nil {
			return nil, err
		}
		u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		users = append(users, u)
	}
	return users, rows.Err()
}

// SaveUser seeds a user record. Production users arrive out-of-band; this
// exists for provisioning scripts and test fixtures.
func (s *Store) SaveUser(ctx context.Context, u timesheet.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	query := `
		INSERT INTO users (id, email, last_name, phone_number, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			last_name = excluded.last_name,
			phone_number = excluded.phone_number,
			is_admin = excluded.is_admin
	`

	_, err := s.db.ExecContext(ctx, query,
		u.ID, u.Email, u.LastName, u.PhoneNumber, u.IsAdmin,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// =============================================================================
// ENTRY STORE (timesheet.EntryStore interface)
// =============================================================================

// FetchEntries returns one user's entries with dates in [from, to],
// ascending by date.
func (s *Store) FetchEntries(ctx context.Context, userID string, from, to timesheet.TimePoint) ([]timesheet.WorkEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryEntries(ctx, `
		SELECT id, user_id, date, hours_worked, tasks_done, facility, created_at, updated_at
		FROM work_done
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC`,
		userID, from.String(), to.String(),
	)
}

// FetchAllEntries returns every user's entries in [from, to], ascending by
// date then user.
func (s *Store) FetchAllEntries(ctx context.Context, from, to timesheet.TimePoint) ([]timesheet.WorkEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryEntries(ctx, `
		SELECT id, user_id, date, hours_worked, tasks_done, facility, created_at, updated_at
		FROM work_done
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, user_id ASC`,
		from.String(), to.String(),
	)
}

// Upsert writes one entry keyed by (user_id, date).
func (s *Store) Upsert(ctx context.Context, entry timesheet.WorkEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := entry.Validate(); err != nil {
		return err
	}
	return upsertOne(ctx, s.db, entry)
}

// UpsertBatch writes a full submission inside one transaction. The whole
// batch is validated before anything touches the database.
func (s *Store) UpsertBatch(ctx context.Context, entries []timesheet.WorkEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		if err := upsertOne(ctx, tx, e); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertOne(ctx context.Context, db execer, entry timesheet.WorkEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	// The period columns are derived from the date here and nowhere else;
	// whatever the caller carried alongside the date is ignored.
	period := entry.Period()
	now := time.Now().UTC().Format(time.RFC3339)

	query := `
		INSERT INTO work_done
			(id, user_id, date, hours_worked, tasks_done, facility, period, month, year, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			hours_worked = excluded.hours_worked,
			tasks_done = excluded.tasks_done,
			facility = excluded.facility,
			period = excluded.period,
			month = excluded.month,
			year = excluded.year,
			updated_at = excluded.updated_at
	`

	_, err := db.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.Date.String(),
		entry.Hours.String(), entry.Tasks, entry.Facility,
		string(period.Label), int(entry.Date.Month()), entry.Date.Year(),
		now, now,
	)
	return err
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]timesheet.WorkEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []timesheet.WorkEntry
	for rows.Next() {
		var e timesheet.WorkEntry
		var date, hours, createdAt, updatedAt string
		if err := rows.Scan(&e.ID, &e.UserID, &date, &hours, &e.Tasks, &e.Facility, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		e.Date, err = timesheet.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("corrupt date %q: %w", date, err)
		}
		e.Hours, err = decimal.NewFromString(hours)
		if err != nil {
			return nil, fmt.Errorf("corrupt hours %q: %w", hours, err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Reset clears all data. For tests and dev environments only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"work_done", "users"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
