package resync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fluentwave/fluentwave/internal/api"
	"github.com/fluentwave/fluentwave/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func journal(t *testing.T, st *store.Store, sessionID, quizID string) {
	t.Helper()
	err := st.RecordCompletion(context.Background(), &store.Submission{
		SessionID: sessionID,
		LessonID:  "lesson-1",
		QuizID:    quizID,
		Score:     4,
		Total:     5,
	})
	if err != nil {
		t.Fatalf("journal %s: %v", sessionID, err)
	}
}

func TestPending_SubmitsUnacknowledgedRows(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"xpGained": 40, "level": 2})
	}))
	defer srv.Close()

	ctx := context.Background()
	st := openTestStore(t)
	journal(t, st, "sess-a", "quiz-a")
	journal(t, st, "sess-b", "quiz-b")
	if err := st.MarkSubmitted(ctx, "sess-b", 40, 2); err != nil {
		t.Fatal(err)
	}

	synced, err := Pending(ctx, st, api.New(srv.URL), "user-1")
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if synced != 1 {
		t.Errorf("synced = %d, want 1", synced)
	}
	if len(paths) != 1 || !strings.Contains(paths[0], "quiz-a") {
		t.Errorf("server saw %v, want one submit for quiz-a", paths)
	}

	done, err := st.AlreadySubmitted(ctx, "sess-a")
	if err != nil {
		t.Fatal(err)
	}
	if !done {
		t.Error("sess-a should be marked submitted after the sweep")
	}
}

func TestPending_ServerFailureKeepsRow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"nope"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	ctx := context.Background()
	st := openTestStore(t)
	journal(t, st, "sess-a", "quiz-a")

	synced, err := Pending(ctx, st, api.New(srv.URL), "user-1")
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if synced != 0 {
		t.Errorf("synced = %d, want 0", synced)
	}

	done, err := st.AlreadySubmitted(ctx, "sess-a")
	if err != nil {
		t.Fatal(err)
	}
	if done {
		t.Error("a rejected row must stay pending for the next pass")
	}
}

func TestPending_QuizIDFallsBackToLesson(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"xpGained": 10, "level": 1})
	}))
	defer srv.Close()

	ctx := context.Background()
	st := openTestStore(t)
	journal(t, st, "sess-a", "")

	if _, err := Pending(ctx, st, api.New(srv.URL), "user-1"); err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if !strings.Contains(path, "lesson-1") {
		t.Errorf("path = %q, want the lesson id as quiz id", path)
	}
}

func TestPending_EmptyJournalIsNoop(t *testing.T) {
	st := openTestStore(t)
	synced, err := Pending(context.Background(), st, api.New("http://localhost"), "user-1")
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if synced != 0 {
		t.Errorf("synced = %d, want 0", synced)
	}
}
