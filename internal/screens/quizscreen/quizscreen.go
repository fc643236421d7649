// Package quizscreen drives a quiz session: fetching the quiz,
// sequencing questions, judging answers, and syncing the result.
package quizscreen

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/fluentwave/fluentwave/internal/api"
	"github.com/fluentwave/fluentwave/internal/quiz"
	"github.com/fluentwave/fluentwave/internal/router"
	"github.com/fluentwave/fluentwave/internal/screen"
	"github.com/fluentwave/fluentwave/internal/screens/summary"
	"github.com/fluentwave/fluentwave/internal/store"
	"github.com/fluentwave/fluentwave/internal/ui/components"
	"github.com/fluentwave/fluentwave/internal/ui/layout"
)

type phase int

const (
	phaseLoading phase = iota
	phaseActive
	phaseFeedback
	phaseSyncing
	phaseError
)

type profileRefreshedMsg struct {
	profile *api.Profile
}

// QuizScreen runs one quiz from fetch to summary.
type QuizScreen struct {
	deps        *screen.Deps
	quizID      string
	lessonTitle string

	phase   phase
	session *quiz.Session
	eval    quiz.Evaluator

	// Per-question UI state.
	options components.OptionList
	board   components.MatchBoard

	lastVerdict quiz.Verdict
	errMsg      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen for the given quiz.
func New(deps *screen.Deps, quizID, lessonTitle string) *QuizScreen {
	return &QuizScreen{
		deps:        deps,
		quizID:      quizID,
		lessonTitle: lessonTitle,
	}
}

func (q *QuizScreen) Title() string {
	if q.lessonTitle != "" {
		return q.lessonTitle
	}
	return "Quiz"
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	if q.eval != nil {
		if _, ok := q.eval.(*quiz.MatchingEvaluator); ok && q.phase == phaseActive {
			return []layout.KeyHint{
				{Key: "↑↓", Description: "Move"},
				{Key: "Tab", Description: "Switch column"},
				{Key: "Enter", Description: "Pick"},
			}
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Answer / Continue"},
		{Key: "Esc", Description: "Quit quiz"},
	}
}

func (q *QuizScreen) Init() tea.Cmd {
	return q.load()
}

func (q *QuizScreen) timeout() time.Duration {
	if q.deps.Config != nil {
		return q.deps.Config.RequestTimeout
	}
	return 15 * time.Second
}

// load fetches the quiz and builds the session.
func (q *QuizScreen) load() tea.Cmd {
	deps := q.deps
	quizID := q.quizID
	rng := deps.RNG
	timeout := q.timeout()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		qz, err := deps.API.FetchQuiz(ctx, quizID)
		if err != nil {
			return quizReadyMsg{Err: err}
		}

		seq := quiz.Sequence(qz.Questions, rng)
		sess, err := quiz.NewSession(uuid.NewString(), qz.LessonID, seq)
		if err != nil {
			return quizReadyMsg{Err: err}
		}
		ev, err := quiz.NewEvaluator(sess.Current(), rng)
		if err != nil {
			sess.Fail(err)
			return quizReadyMsg{Session: sess, Err: err}
		}
		return quizReadyMsg{Session: sess, Evaluator: ev}
	}
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		if msg.Err != nil {
			q.phase = phaseError
			q.session = msg.Session
			q.errMsg = "Could not start the quiz, press r to retry"
			return q, nil
		}
		q.session = msg.Session
		q.eval = msg.Evaluator
		q.bindQuestionUI()
		q.phase = phaseActive
		return q, nil

	case syncResultMsg:
		return q.handleSyncResult(msg)

	case tea.KeyPressMsg:
		return q.handleKey(msg)
	}

	return q, nil
}

// bindQuestionUI prepares the per-type view state for the current
// evaluator. Learning questions resolve here: displaying the word is
// the whole exercise, so the card is already answered when it appears
// and enter just moves on.
func (q *QuizScreen) bindQuestionUI() {
	switch ev := q.eval.(type) {
	case *quiz.LearningEvaluator:
		v := ev.Reveal()
		if err := q.session.Submit(v); err == nil {
			q.lastVerdict = v
		}
	case *quiz.ChoiceEvaluator:
		q.options = components.NewOptionList(ev.Question().Text, ev.Options())
	case *quiz.MatchingEvaluator:
		q.board = components.NewMatchBoard(ev.Board())
	}
}

func (q *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch q.phase {
	case phaseError:
		if key == "r" {
			return q, q.recover()
		}
		return q, nil

	case phaseFeedback:
		if key == "enter" || key == "space" {
			return q, q.advance()
		}
		return q, nil

	case phaseActive:
		return q.handleAnswerKey(msg)
	}

	return q, nil
}

func (q *QuizScreen) handleAnswerKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch ev := q.eval.(type) {
	case *quiz.IntroductionEvaluator:
		if key == "enter" || key == "space" {
			v := ev.Acknowledge()
			if err := q.session.Submit(v); err != nil {
				return q, nil
			}
			return q, q.advance()
		}

	case *quiz.LearningEvaluator:
		// Already resolved at display time.
		if key == "enter" || key == "space" {
			return q, q.advance()
		}

	case *quiz.ChoiceEvaluator:
		var cmd tea.Cmd
		q.options, cmd = q.options.Update(msg)
		if q.options.Submitted && !q.session.Answered() {
			choice := q.options.Options[q.options.ChosenIndex]
			v, err := ev.Select(choice)
			if err != nil {
				return q, cmd
			}
			if err := q.session.Submit(v); err != nil {
				return q, cmd
			}
			q.lastVerdict = v
			q.options.Resolve(indexOf(q.options.Options, ev.Question().CorrectAnswer))
			q.phase = phaseFeedback
		}
		return q, cmd

	case *quiz.MatchingEvaluator:
		switch key {
		case "up", "k":
			q.board.MoveUp()
		case "down", "j":
			q.board.MoveDown()
		case "tab", "left", "right", "h", "l":
			q.board.SwitchSide()
		case "enter", "space":
			token := q.board.CursorToken()
			if token == "" {
				return q, nil
			}
			outcome, err := ev.Board().Select(q.board.CursorSide, token)
			if err != nil {
				// Matched or stale tokens just don't react.
				return q, nil
			}
			if outcome.Completed {
				v := quiz.Verdict{Resolved: true, Correct: true}
				if err := q.session.Submit(v); err != nil {
					return q, nil
				}
				q.lastVerdict = v
				q.phase = phaseFeedback
			}
		}
	}

	return q, nil
}

// recover retries after an error. An errored session is resumed in
// place so answered progress survives; if its current question still
// can't be evaluated, or there is no session at all, the quiz is
// fetched again from scratch.
func (q *QuizScreen) recover() tea.Cmd {
	if q.session != nil && q.session.Status() == quiz.StatusErrored {
		if err := q.session.Resume(); err == nil {
			if ev, err := quiz.NewEvaluator(q.session.Current(), q.deps.RNG); err == nil {
				q.eval = ev
				q.bindQuestionUI()
				q.phase = phaseActive
				q.errMsg = ""
				return nil
			}
		}
		q.session = nil
	}

	q.phase = phaseLoading
	q.errMsg = ""
	return q.load()
}

// advance moves to the next question or, at the end, starts the sync.
func (q *QuizScreen) advance() tea.Cmd {
	rec, err := q.session.Advance()
	if err != nil {
		return nil
	}
	if rec != nil {
		q.phase = phaseSyncing
		return q.sync(rec)
	}

	ev, err := quiz.NewEvaluator(q.session.Current(), q.deps.RNG)
	if err != nil {
		q.session.Fail(err)
		q.phase = phaseError
		q.errMsg = "This quiz contains a question this app can't play yet, press r to reload it"
		return nil
	}
	q.eval = ev
	q.bindQuestionUI()
	q.phase = phaseActive
	return nil
}

// sync journals the completion locally, then reports it to the server.
// The journal row only flips to submitted once the server acknowledges,
// so a crash or network failure never loses or double-counts a result.
func (q *QuizScreen) sync(rec *quiz.CompletionRecord) tea.Cmd {
	deps := q.deps
	quizID := q.quizID
	timeout := q.timeout()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if deps.Store != nil {
			_ = deps.Store.RecordCompletion(ctx, &store.Submission{
				SessionID: rec.SessionID,
				LessonID:  rec.LessonID,
				QuizID:    quizID,
				Score:     rec.Score,
				Total:     rec.Total,
			})
		}

		userID := ""
		if deps.Session != nil {
			userID = deps.Session.UserID
		}
		res, err := deps.API.SubmitCompletion(ctx, userID, quizID, rec)
		if err == nil && deps.Store != nil {
			_ = deps.Store.MarkSubmitted(ctx, rec.SessionID, res.XPGained, res.Level)
		}
		return syncResultMsg{Result: res, Err: err}
	}
}

func (q *QuizScreen) handleSyncResult(msg syncResultMsg) (screen.Screen, tea.Cmd) {
	results := summary.Results{
		LessonTitle: q.lessonTitle,
		Score:       q.session.Score(),
		Total:       q.session.Total(),
		Percentage:  q.session.Percentage(),
	}

	var cmds []tea.Cmd
	if msg.Err != nil {
		results.SyncFailed = true
	} else {
		results.XPGained = msg.Result.XPGained
		results.Level = msg.Result.Level
		cmds = append(cmds, q.refreshProfile())
	}

	cmds = append(cmds, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(results)}
	})
	return q, tea.Sequence(cmds...)
}

// refreshProfile pulls the profile so XP and lesson completion shown
// elsewhere reflect the new result.
func (q *QuizScreen) refreshProfile() tea.Cmd {
	deps := q.deps
	timeout := q.timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		p, err := deps.API.FetchProfile(ctx)
		if err == nil && p != nil && deps.Session != nil {
			deps.Session.UpdateProfile(p, time.Now())
		}
		return profileRefreshedMsg{profile: p}
	}
}

func indexOf(options []string, want string) int {
	for i, o := range options {
		if o == want {
			return i
		}
	}
	return -1
}
