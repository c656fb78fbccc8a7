/*
session.go - In-memory bearer-token sessions

PURPOSE:
  Tracks who is logged in between requests. A successful login mints an
  opaque token; subsequent requests present it as "Authorization: Bearer".
  Sessions live in process memory and expire after a fixed TTL, which is
  all this system needs: losing them on restart just means logging in
  again.
*/
package api

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nickharris808/tribalhours/timesheet"
)

const sessionTTL = 12 * time.Hour

// Session is one authenticated login.
type Session struct {
	Token     string
	User      timesheet.User
	ExpiresAt time.Time
}

// Sessions is a concurrency-safe in-memory session registry.
type Sessions struct {
	mu  sync.RWMutex
	m   map[string]Session
	ttl time.Duration
	now func() time.Time
}

func NewSessions() *Sessions {
	return &Sessions{
		m:   make(map[string]Session),
		ttl: sessionTTL,
		now: time.Now,
	}
}

// Create mints a session for the user and returns its token.
func (s *Sessions) Create(user timesheet.User) Session {
	sess := Session{
		Token:     uuid.NewString(),
		User:      user,
		ExpiresAt: s.now().Add(s.ttl),
	}

	s.mu.Lock()
	s.m[sess.Token] = sess
	s.mu.Unlock()
	return sess
}

// Get returns the live session for a token. Expired sessions are dropped.
func (s *Sessions) Get(token string) (Session, bool) {
	s.mu.RLock()
	sess, ok := s.m[token]
	s.mu.RUnlock()

	if !ok {
		return Session{}, false
	}
	if s.now().After(sess.ExpiresAt) {
		s.Revoke(token)
		return Session{}, false
	}
	return sess, true
}

// Revoke drops a session. Revoking an unknown token is a no-op.
func (s *Sessions) Revoke(token string) {
	s.mu.Lock()
	delete(s.m, token)
	s.mu.Unlock()
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
