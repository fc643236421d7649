package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fluentwave/fluentwave/internal/api"
)

// ErrNoAccount is returned when no account session is cached.
var ErrNoAccount = errors.New("store: no cached account")

// CachedAccount is the persisted login session: the auth token plus
// the last fetched profile.
type CachedAccount struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	Profile   *api.Profile
	FetchedAt time.Time
}

// SaveAccount persists the account session, replacing any previous one.
// The table holds a single row.
func (s *Store) SaveAccount(ctx context.Context, acct *CachedAccount) error {
	var profileJSON []byte
	if acct.Profile != nil {
		var err error
		profileJSON, err = json.Marshal(acct.Profile)
		if err != nil {
			return fmt.Errorf("marshal profile: %w", err)
		}
	}

	var expires, fetched int64
	if !acct.ExpiresAt.IsZero() {
		expires = acct.ExpiresAt.Unix()
	}
	if !acct.FetchedAt.IsZero() {
		fetched = acct.FetchedAt.Unix()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO account (id, token, user_id, expires_at, profile_json, fetched_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			token = excluded.token,
			user_id = excluded.user_id,
			expires_at = excluded.expires_at,
			profile_json = excluded.profile_json,
			fetched_at = excluded.fetched_at`,
		acct.Token, acct.UserID, expires, string(profileJSON), fetched)
	if err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

// LoadAccount returns the cached account session, or ErrNoAccount.
func (s *Store) LoadAccount(ctx context.Context) (*CachedAccount, error) {
	var (
		acct        CachedAccount
		expires     int64
		fetched     int64
		profileJSON string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT token, user_id, expires_at, profile_json, fetched_at FROM account WHERE id = 1`).
		Scan(&acct.Token, &acct.UserID, &expires, &profileJSON, &fetched)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoAccount
	}
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}

	if expires > 0 {
		acct.ExpiresAt = time.Unix(expires, 0)
	}
	if fetched > 0 {
		acct.FetchedAt = time.Unix(fetched, 0)
	}
	if profileJSON != "" {
		var p api.Profile
		if err := json.Unmarshal([]byte(profileJSON), &p); err != nil {
			return nil, fmt.Errorf("decode cached profile: %w", err)
		}
		acct.Profile = &p
	}
	return &acct, nil
}

// ClearAccount removes the cached session. Clearing an empty cache is
// not an error.
func (s *Store) ClearAccount(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM account WHERE id = 1`); err != nil {
		return fmt.Errorf("clear account: %w", err)
	}
	return nil
}
