// Package resync replays completion results that were journaled
// locally but never acknowledged by the server, typically because the
// network was down when the quiz finished.
package resync

import (
	"context"

	"github.com/fluentwave/fluentwave/internal/api"
	"github.com/fluentwave/fluentwave/internal/quiz"
	"github.com/fluentwave/fluentwave/internal/store"
)

// Pending submits every unacknowledged journal row and returns how
// many were accepted. Rows the server rejects stay journaled for the
// next pass; per-row errors do not stop the sweep. The journal's
// submitted flag makes a row that is acknowledged mid-sweep safe to
// skip.
func Pending(ctx context.Context, st *store.Store, client *api.Client, userID string) (int, error) {
	subs, err := st.PendingCompletions(ctx)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, sub := range subs {
		if err := ctx.Err(); err != nil {
			return synced, err
		}

		done, err := st.AlreadySubmitted(ctx, sub.SessionID)
		if err != nil || done {
			continue
		}

		quizID := sub.QuizID
		if quizID == "" {
			quizID = sub.LessonID
		}
		rec := &quiz.CompletionRecord{
			SessionID: sub.SessionID,
			LessonID:  sub.LessonID,
			Score:     sub.Score,
			Total:     sub.Total,
		}
		res, err := client.SubmitCompletion(ctx, userID, quizID, rec)
		if err != nil {
			continue
		}
		if err := st.MarkSubmitted(ctx, sub.SessionID, res.XPGained, res.Level); err != nil {
			return synced, err
		}
		synced++
	}
	return synced, nil
}
