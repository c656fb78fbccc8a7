// Package store provides in-memory store implementations for testing.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nickharris808/tribalhours/timesheet"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	users   map[string]timesheet.User
	entries map[entryKey]timesheet.WorkEntry
}

type entryKey struct {
	UserID string
	Date   string
}

func NewMemory() *Memory {
	return &Memory{
		users:   make(map[string]timesheet.User),
		entries: make(map[entryKey]timesheet.WorkEntry),
	}
}

// AddUser seeds a user record. Users are provisioned out-of-band in
// production; tests use this to set up fixtures.
func (m *Memory) AddUser(u timesheet.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

// FindUser returns the user matching the credentials under the scheme.
func (m *Memory) FindUser(_ context.Context, scheme timesheet.IdentityScheme, creds timesheet.Credentials) (*timesheet.User, error) {
	if err := scheme.Validate(creds); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if scheme.Matches(creds, u) {
			found := u
			return &found, nil
		}
	}
	return nil, timesheet.ErrUserNotFound
}

// ListUsers returns all users sorted by last name.
func (m *Memory) ListUsers(_ context.Context) ([]timesheet.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]timesheet.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].LastName < users[j].LastName })
	return users, nil
}

// FetchEntries returns one user's entries in [from, to], ascending by date.
func (m *Memory) FetchEntries(_ context.Context, userID string, from, to timesheet.TimePoint) ([]timesheet.WorkEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []timesheet.WorkEntry
	for _, e := range m.entries {
		if e.UserID == userID && e.Date.AfterOrEqual(from) && e.Date.BeforeOrEqual(to) {
			out = append(out, e)
		}
	}
	sortByDate(out)
	return out, nil
}

// FetchAllEntries returns every user's entries in [from, to].
func (m *Memory) FetchAllEntries(_ context.Context, from, to timesheet.TimePoint) ([]timesheet.WorkEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []timesheet.WorkEntry
	for _, e := range m.entries {
		if e.Date.AfterOrEqual(from) && e.Date.BeforeOrEqual(to) {
			out = append(out, e)
		}
	}
	sortByDate(out)
	return out, nil
}

// Upsert writes one entry keyed by (user, date): last write wins.
func (m *Memory) Upsert(_ context.Context, entry timesheet.WorkEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.upsertLocked(entry)
}

// UpsertBatch applies a full submission atomically: validation failures
// reject the whole batch before anything is written.
func (m *Memory) UpsertBatch(_ context.Context, entries []timesheet.WorkEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	for _, e := range entries {
		if err := m.upsertLocked(e); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) upsertLocked(entry timesheet.WorkEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	k := entryKey{UserID: entry.UserID, Date: entry.Date.String()}
	now := time.Now().UTC()
	if existing, ok := m.entries[k]; ok {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
	} else {
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
	m.entries[k] = entry
	return nil
}

func sortByDate(entries []timesheet.WorkEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].UserID < entries[j].UserID
	})
}
