package quiz

import "math"

// Status is the session's lifecycle state. Completed is monotonic:
// once reached it never reverts, and re-advancing a completed session
// is a no-op rather than a re-submission.
type Status int

const (
	StatusInProgress Status = iota
	StatusErrored
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in-progress"
	case StatusErrored:
		return "errored"
	case StatusCompleted:
		return "completed"
	}
	return "unknown"
}

// CompletionRecord is emitted exactly once per session, when the final
// question is advanced past. The external submission collaborator
// exchanges it for XP and a new level.
type CompletionRecord struct {
	SessionID string
	LessonID  string
	Score     int
	Total     int
}

// Session steps through a sequenced question list one question at a
// time. It is owned exclusively by the active quiz screen and is
// discarded when that screen unmounts.
type Session struct {
	id       string
	lessonID string

	questions []Question
	index     int

	score     int
	attempted int
	answered  bool

	status Status
	err    error

	emitted bool
}

// NewSession creates an in-progress session over questions, which must
// already be in presentation order (see Sequence).
func NewSession(id, lessonID string, questions []Question) (*Session, error) {
	if len(questions) == 0 {
		return nil, &ValidationError{Reason: "quiz has no questions"}
	}
	return &Session{
		id:        id,
		lessonID:  lessonID,
		questions: questions,
	}, nil
}

func (s *Session) ID() string       { return s.id }
func (s *Session) LessonID() string { return s.lessonID }
func (s *Session) Status() Status   { return s.status }
func (s *Session) Score() int       { return s.score }
func (s *Session) Attempted() int   { return s.attempted }
func (s *Session) Total() int       { return len(s.questions) }

// Index returns the 0-based current question index.
func (s *Session) Index() int { return s.index }

// Current returns the active question.
func (s *Session) Current() *Question {
	return &s.questions[s.index]
}

// Answered reports whether the current question has been resolved —
// the gate that must open before Advance succeeds.
func (s *Session) Answered() bool { return s.answered }

// Err returns the error that moved the session to StatusErrored.
func (s *Session) Err() error { return s.err }

// Submit records an evaluation verdict for the current question. Only
// the first resolving verdict counts toward score/attempted; repeats
// (an introduction acknowledged twice) just keep the gate open.
func (s *Session) Submit(v Verdict) error {
	if s.status != StatusInProgress {
		return &StateViolationError{Op: "submit", Reason: "session is " + s.status.String()}
	}
	if !v.Resolved {
		return nil
	}
	if s.answered {
		return nil
	}
	s.answered = true
	s.attempted++
	if v.Correct {
		s.score++
	}
	return nil
}

// Advance moves to the next question once the current one is answered.
// On the last question it transitions to StatusCompleted and returns
// the session's one CompletionRecord; any later Advance call is a
// no-op returning nil, so duplicate UI events or network retries can
// never double-submit.
func (s *Session) Advance() (*CompletionRecord, error) {
	switch s.status {
	case StatusCompleted:
		return nil, nil
	case StatusErrored:
		return nil, &StateViolationError{Op: "advance", Reason: "session is errored"}
	}

	if !s.answered {
		return nil, &StateViolationError{Op: "advance", Reason: "current question not answered"}
	}

	if s.index < len(s.questions)-1 {
		s.index++
		s.answered = false
		return nil, nil
	}

	s.status = StatusCompleted
	if s.emitted {
		return nil, nil
	}
	s.emitted = true
	return &CompletionRecord{
		SessionID: s.id,
		LessonID:  s.lessonID,
		Score:     s.score,
		Total:     len(s.questions),
	}, nil
}

// Fail halts an in-progress session in the recoverable errored
// substate. A completed session stays completed.
func (s *Session) Fail(err error) {
	if s.status != StatusInProgress {
		return
	}
	s.status = StatusErrored
	s.err = err
}

// Resume returns an errored session to in-progress so the learner can
// retry the question that surfaced the error.
func (s *Session) Resume() error {
	if s.status != StatusErrored {
		return &StateViolationError{Op: "resume", Reason: "session is " + s.status.String()}
	}
	s.status = StatusInProgress
	s.err = nil
	return nil
}

// Percentage is the locally computed completion percentage. It never
// depends on the submission round-trip, so a failed XP credit still
// leaves the learner's result visible.
func (s *Session) Percentage() int {
	if len(s.questions) == 0 {
		return 0
	}
	return int(math.Round(float64(s.score) / float64(len(s.questions)) * 100))
}
