package quizscreen

import (
	"github.com/fluentwave/fluentwave/internal/api"
	"github.com/fluentwave/fluentwave/internal/quiz"
)

// quizReadyMsg is sent when the quiz has been fetched and sequenced.
type quizReadyMsg struct {
	Session   *quiz.Session
	Evaluator quiz.Evaluator
	Err       error
}

// syncResultMsg is sent when the completion submission finishes.
type syncResultMsg struct {
	Result *api.CompletionResult
	Err    error
}
