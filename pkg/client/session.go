package client

import (
	"sync"
	"time"
)

// User is the profile of the logged-in account.
type User struct {
	ID       uint   `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Session holds the credentials of one logged-in user. It is safe for
// concurrent use. The zero value is an empty session.
type Session struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
	user         User
}

// Begin replaces the session state after a successful login.
func (s *Session) Begin(accessToken, refreshToken string, expiresAt time.Time, user User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
	s.refreshToken = refreshToken
	s.expiresAt = expiresAt
	s.user = user
}

// Clear drops every credential. Safe to call on an empty session.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.refreshToken = ""
	s.expiresAt = time.Time{}
	s.user = User{}
}

// Valid reports whether the session holds an access token that has not
// expired at now. A zero expiry never expires.
func (s *Session) Valid(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.validLocked(now)
}

func (s *Session) validLocked(now time.Time) bool {
	if s.accessToken == "" {
		return false
	}
	return s.expiresAt.IsZero() || now.Before(s.expiresAt)
}

// Token returns the access token when the session is valid at now.
func (s *Session) Token(now time.Time) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.validLocked(now) {
		return "", false
	}
	return s.accessToken, true
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// User returns the logged-in user; ok is false on an empty session.
func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.accessToken != ""
}
