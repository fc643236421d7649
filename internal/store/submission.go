package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Submission is one row of the completion journal. A row is written
// when a quiz session ends and flipped to submitted once the server
// acknowledges the result, so a retried or restarted submission never
// reports the same session twice.
type Submission struct {
	SessionID string
	LessonID  string
	QuizID    string
	Score     int
	Total     int
	CreatedAt time.Time
	Submitted bool
	XPGained  int
	Level     int
}

// RecordCompletion journals a finished session before it is submitted.
// Recording the same session twice is a no-op.
func (s *Store) RecordCompletion(ctx context.Context, sub *Submission) error {
	created := sub.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO submissions (session_id, lesson_id, quiz_id, score, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (session_id) DO NOTHING`,
		sub.SessionID, sub.LessonID, sub.QuizID, sub.Score, sub.Total, created.Unix())
	if err != nil {
		return fmt.Errorf("record completion: %w", err)
	}
	return nil
}

// MarkSubmitted stores the server's acknowledgement for a journaled
// session.
func (s *Store) MarkSubmitted(ctx context.Context, sessionID string, xpGained, level int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE submissions SET submitted = 1, xp_gained = ?, level = ?
		WHERE session_id = ?`,
		xpGained, level, sessionID)
	if err != nil {
		return fmt.Errorf("mark submitted: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark submitted: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("mark submitted: session %s not journaled", sessionID)
	}
	return nil
}

// AlreadySubmitted reports whether a session's result has been
// acknowledged by the server.
func (s *Store) AlreadySubmitted(ctx context.Context, sessionID string) (bool, error) {
	var submitted int
	err := s.db.QueryRowContext(ctx,
		`SELECT submitted FROM submissions WHERE session_id = ?`, sessionID).
		Scan(&submitted)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query submission: %w", err)
	}
	return submitted == 1, nil
}

// ListCompletions returns the journal, newest first. limit = 0 means
// unlimited.
func (s *Store) ListCompletions(ctx context.Context, limit int) ([]Submission, error) {
	q := `SELECT session_id, lesson_id, quiz_id, score, total, created_at, submitted,
		COALESCE(xp_gained, 0), COALESCE(level, 0)
		FROM submissions ORDER BY created_at DESC, session_id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var (
			sub       Submission
			created   int64
			submitted int
		)
		if err := rows.Scan(&sub.SessionID, &sub.LessonID, &sub.QuizID, &sub.Score, &sub.Total,
			&created, &submitted, &sub.XPGained, &sub.Level); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		sub.CreatedAt = time.Unix(created, 0)
		sub.Submitted = submitted == 1
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	return out, nil
}

// PendingCompletions returns journal rows the server has not
// acknowledged yet, oldest first.
func (s *Store) PendingCompletions(ctx context.Context) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, lesson_id, quiz_id, score, total, created_at
		FROM submissions WHERE submitted = 0
		ORDER BY created_at ASC, session_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("pending completions: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var (
			sub     Submission
			created int64
		)
		if err := rows.Scan(&sub.SessionID, &sub.LessonID, &sub.QuizID,
			&sub.Score, &sub.Total, &created); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		sub.CreatedAt = time.Unix(created, 0)
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pending completions: %w", err)
	}
	return out, nil
}
