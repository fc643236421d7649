package quiz

import (
	"errors"
	"fmt"
)

// ErrAlreadyAnswered reports a selection made after a choice question
// has already been resolved. It is a condition, not a failure: callers
// surface it and otherwise carry on.
var ErrAlreadyAnswered = errors.New("question already answered")

// ValidationError reports malformed question data: missing options,
// missing correct answer on an evaluative type, too few pairs.
type ValidationError struct {
	QuestionID string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid question %s: %s", e.QuestionID, e.Reason)
}

// UnknownTypeError reports a question type outside the five known
// discriminants. The question is rendered as an inert placeholder and
// the session cannot advance past it automatically.
type UnknownTypeError struct {
	QuestionID string
	Type       string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unrecognized question type %q (question %s)", e.Type, e.QuestionID)
}

// StateViolationError reports a broken UI contract: advancing past an
// unanswered question, submitting into a completed session, selecting
// an already-matched token. These fail loudly rather than being
// silently tolerated.
type StateViolationError struct {
	Op     string
	Reason string
}

func (e *StateViolationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}
