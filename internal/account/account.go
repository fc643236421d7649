// Package account holds the learner's authenticated session context.
// It is created at login, persisted through the store, passed
// explicitly to whatever needs it, and cleared at logout — there is no
// ambient global session anywhere in the app.
package account

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fluentwave/fluentwave/internal/api"
)

// ProfileStaleAfter is how long a cached profile is trusted before the
// dashboard refreshes it from the backend.
const ProfileStaleAfter = 10 * time.Minute

// ErrNoSession indicates no stored session exists; the learner must
// log in.
var ErrNoSession = errors.New("no active session")

// ErrSessionExpired indicates the stored token's expiry has passed.
var ErrSessionExpired = errors.New("session expired")

// tokenClaims is the subset of the backend's token we read. The client
// never verifies the signature — the signing key is the server's — it
// only needs the user ID and the expiry to know when to re-login.
type tokenClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// Session is the learner's authenticated context.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time

	// Profile is the cached learner profile; FetchedAt drives the
	// staleness horizon.
	Profile   *api.Profile
	FetchedAt time.Time
}

// New builds a session from a freshly issued token and profile.
func New(token string, profile *api.Profile, now time.Time) (*Session, error) {
	userID, expiresAt, err := parseToken(token)
	if err != nil {
		return nil, err
	}
	// The login response is authoritative for the user ID; the claim
	// is a fallback for older tokens that predate the data envelope.
	if profile != nil && profile.ID != "" {
		userID = profile.ID
	}
	return &Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		Profile:   profile,
		FetchedAt: now,
	}, nil
}

// parseToken reads the claims without verifying the signature.
func parseToken(token string) (string, time.Time, error) {
	claims := &tokenClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return "", time.Time{}, fmt.Errorf("parse token: %w", err)
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return claims.UserID, expiresAt, nil
}

// Valid reports whether the session can still authorize requests.
// Tokens without an expiry claim are trusted until the backend says
// otherwise.
func (s *Session) Valid(now time.Time) bool {
	if s == nil || s.Token == "" {
		return false
	}
	if s.ExpiresAt.IsZero() {
		return true
	}
	return now.Before(s.ExpiresAt)
}

// ProfileStale reports whether the cached profile should be refreshed.
func (s *Session) ProfileStale(now time.Time) bool {
	if s.Profile == nil {
		return true
	}
	return now.Sub(s.FetchedAt) > ProfileStaleAfter
}

// UpdateProfile replaces the cached profile and resets the staleness
// clock.
func (s *Session) UpdateProfile(profile *api.Profile, now time.Time) {
	s.Profile = profile
	s.FetchedAt = now
	if profile != nil && profile.ID != "" {
		s.UserID = profile.ID
	}
}
