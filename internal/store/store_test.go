package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fluentwave/fluentwave/internal/api"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is skipped here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := s.db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAccountRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.LoadAccount(ctx); !errors.Is(err, ErrNoAccount) {
		t.Fatalf("load empty cache: got %v, want ErrNoAccount", err)
	}

	now := time.Now().Truncate(time.Second)
	acct := &CachedAccount{
		Token:     "tok-1",
		UserID:    "u1",
		ExpiresAt: now.Add(time.Hour),
		Profile:   &api.Profile{ID: "u1", Name: "Abel", TotalXP: 340},
		FetchedAt: now,
	}
	if err := s.SaveAccount(ctx, acct); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.LoadAccount(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Token != "tok-1" || got.UserID != "u1" {
		t.Errorf("loaded account = %+v", got)
	}
	if !got.ExpiresAt.Equal(acct.ExpiresAt) {
		t.Errorf("expires_at = %v, want %v", got.ExpiresAt, acct.ExpiresAt)
	}
	if got.Profile == nil || got.Profile.TotalXP != 340 {
		t.Errorf("profile = %+v", got.Profile)
	}
}

func TestAccountSaveReplaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveAccount(ctx, &CachedAccount{Token: "old", UserID: "u1"}); err != nil {
		t.Fatalf("save old: %v", err)
	}
	if err := s.SaveAccount(ctx, &CachedAccount{Token: "new", UserID: "u2"}); err != nil {
		t.Fatalf("save new: %v", err)
	}

	got, err := s.LoadAccount(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Token != "new" || got.UserID != "u2" {
		t.Errorf("account not replaced: %+v", got)
	}
}

func TestClearAccount(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.ClearAccount(ctx); err != nil {
		t.Fatalf("clear empty: %v", err)
	}

	if err := s.SaveAccount(ctx, &CachedAccount{Token: "tok", UserID: "u1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.ClearAccount(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := s.LoadAccount(ctx); !errors.Is(err, ErrNoAccount) {
		t.Fatalf("load after clear: got %v, want ErrNoAccount", err)
	}
}

func TestSubmissionJournal(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sub := &Submission{
		SessionID: "sess-1",
		LessonID:  "lesson-1",
		Score:     8,
		Total:     10,
	}
	if err := s.RecordCompletion(ctx, sub); err != nil {
		t.Fatalf("record: %v", err)
	}

	done, err := s.AlreadySubmitted(ctx, "sess-1")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if done {
		t.Fatal("session marked submitted before acknowledgement")
	}

	if err := s.MarkSubmitted(ctx, "sess-1", 80, 3); err != nil {
		t.Fatalf("mark: %v", err)
	}
	done, err = s.AlreadySubmitted(ctx, "sess-1")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !done {
		t.Fatal("session not marked submitted after acknowledgement")
	}
}

func TestRecordCompletionIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sub := &Submission{SessionID: "sess-1", LessonID: "lesson-1", Score: 5, Total: 10}
	if err := s.RecordCompletion(ctx, sub); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.MarkSubmitted(ctx, "sess-1", 50, 2); err != nil {
		t.Fatalf("mark: %v", err)
	}

	// A replayed record must not reset the submitted flag.
	if err := s.RecordCompletion(ctx, sub); err != nil {
		t.Fatalf("record again: %v", err)
	}
	done, err := s.AlreadySubmitted(ctx, "sess-1")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !done {
		t.Fatal("replayed record cleared the submitted flag")
	}
}

func TestMarkSubmittedUnknownSession(t *testing.T) {
	s := openTestStore(t)
	if err := s.MarkSubmitted(context.Background(), "missing", 10, 1); err == nil {
		t.Fatal("expected error for unjournaled session")
	}
}

func TestAlreadySubmittedUnknownSession(t *testing.T) {
	s := openTestStore(t)
	done, err := s.AlreadySubmitted(context.Background(), "missing")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if done {
		t.Fatal("unknown session reported as submitted")
	}
}

func TestListCompletions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	for i, id := range []string{"a", "b", "c"} {
		err := s.RecordCompletion(ctx, &Submission{
			SessionID: id,
			LessonID:  "lesson-1",
			Score:     i,
			Total:     10,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}
	if err := s.MarkSubmitted(ctx, "c", 30, 1); err != nil {
		t.Fatalf("mark: %v", err)
	}

	subs, err := s.ListCompletions(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("got %d submissions, want 3", len(subs))
	}
	// Newest first.
	if subs[0].SessionID != "c" || subs[2].SessionID != "a" {
		t.Errorf("order = %s, %s, %s", subs[0].SessionID, subs[1].SessionID, subs[2].SessionID)
	}
	if !subs[0].Submitted || subs[0].XPGained != 30 {
		t.Errorf("submitted row = %+v", subs[0])
	}
	if subs[1].Submitted {
		t.Error("pending row reported as submitted")
	}

	limited, err := s.ListCompletions(ctx, 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("got %d submissions with limit 2", len(limited))
	}
}

func TestPendingCompletions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	for i, id := range []string{"a", "b", "c"} {
		err := s.RecordCompletion(ctx, &Submission{
			SessionID: id,
			LessonID:  "lesson-1",
			QuizID:    "quiz-" + id,
			Score:     i,
			Total:     10,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}
	if err := s.MarkSubmitted(ctx, "b", 20, 1); err != nil {
		t.Fatalf("mark: %v", err)
	}

	pending, err := s.PendingCompletions(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("got %d pending rows, want 2", len(pending))
	}
	// Oldest first, acknowledged row excluded.
	if pending[0].SessionID != "a" || pending[1].SessionID != "c" {
		t.Errorf("order = %s, %s", pending[0].SessionID, pending[1].SessionID)
	}
	if pending[0].QuizID != "quiz-a" {
		t.Errorf("QuizID = %q, want quiz-a", pending[0].QuizID)
	}
}

func TestDefaultDBPathEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FLUENTWAVE_DB", dir+"/sub/cache.db")

	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if p != dir+"/sub/cache.db" {
		t.Errorf("path = %q", p)
	}
}
