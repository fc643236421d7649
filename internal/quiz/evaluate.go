package quiz

import "math/rand/v2"

// Verdict is the outcome of evaluating a learner action against a
// question. Resolved signals that the question is done and the session
// may advance; Correct feeds the score.
type Verdict struct {
	Resolved bool
	Correct  bool
}

// Evaluator is the per-question-instance evaluation state. Concrete
// types expose the interaction surface for their question kind; the
// quiz screen switches on the concrete type.
type Evaluator interface {
	Question() *Question

	// Resolved reports whether the question has been resolved.
	Resolved() bool
}

// NewEvaluator builds the evaluator variant matching q's type.
// The rng seeds option/board shuffles for the choice and matching
// variants. Returns *UnknownTypeError or *ValidationError without
// touching rng when q cannot be evaluated.
func NewEvaluator(q *Question, rng *rand.Rand) (Evaluator, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	switch q.Type {
	case TypeWordIntroduction:
		return &IntroductionEvaluator{q: q}, nil
	case TypeWordLearning:
		return &LearningEvaluator{q: q}, nil
	case TypeMultipleChoice:
		return &ChoiceEvaluator{q: q, options: shuffledStrings(q.Options, rng)}, nil
	case TypeSentenceUse:
		// Sentence-use options keep their authored order.
		return &ChoiceEvaluator{q: q, options: q.Options}, nil
	case TypeMatching:
		board, err := NewBoard(q.Pairs, rng)
		if err != nil {
			return nil, err
		}
		return &MatchingEvaluator{q: q, board: board}, nil
	}

	return nil, &UnknownTypeError{QuestionID: q.ID, Type: string(q.Type)}
}

// IntroductionEvaluator handles wordIntroduction questions: pure
// exposition with no right/wrong concept.
type IntroductionEvaluator struct {
	q        *Question
	resolved bool
}

func (e *IntroductionEvaluator) Question() *Question { return e.q }
func (e *IntroductionEvaluator) Resolved() bool      { return e.resolved }

// Acknowledge marks the introduction as seen. Always correct, and may
// be triggered any number of times; repeats only re-signal resolution.
func (e *IntroductionEvaluator) Acknowledge() Verdict {
	e.resolved = true
	return Verdict{Resolved: true, Correct: true}
}

// LearningEvaluator handles wordLearning questions: a timed exposure
// that auto-resolves as correct the moment it is displayed.
type LearningEvaluator struct {
	q        *Question
	resolved bool
}

func (e *LearningEvaluator) Question() *Question { return e.q }
func (e *LearningEvaluator) Resolved() bool      { return e.resolved }

// Reveal resolves the question with no learner input.
func (e *LearningEvaluator) Reveal() Verdict {
	e.resolved = true
	return Verdict{Resolved: true, Correct: true}
}

// ChoiceEvaluator handles multipleChoice and sentenceUse questions.
// The first selection resolves the question; later selections report
// ErrAlreadyAnswered.
type ChoiceEvaluator struct {
	q        *Question
	options  []string
	answered bool
	verdict  Verdict
}

func (e *ChoiceEvaluator) Question() *Question { return e.q }
func (e *ChoiceEvaluator) Resolved() bool      { return e.answered }

// Options returns the presentation order: shuffled for multipleChoice,
// authored order for sentenceUse.
func (e *ChoiceEvaluator) Options() []string { return e.options }

// Select evaluates the chosen option. Correctness compares against the
// question's correct answer, not against presentation position.
func (e *ChoiceEvaluator) Select(option string) (Verdict, error) {
	if e.answered {
		return e.verdict, ErrAlreadyAnswered
	}
	e.answered = true
	e.verdict = Verdict{
		Resolved: true,
		Correct:  option == e.q.CorrectAnswer,
	}
	return e.verdict, nil
}

// MatchingEvaluator wraps the pair-matching board. It resolves only
// when every pair is matched, and the resolution is always correct:
// matching has no fail outcome, wrong attempts simply do not advance
// the board.
type MatchingEvaluator struct {
	q     *Question
	board *Board
}

func (e *MatchingEvaluator) Question() *Question { return e.q }
func (e *MatchingEvaluator) Resolved() bool      { return e.board.Completed() }

// Board exposes the underlying state machine for the quiz screen.
func (e *MatchingEvaluator) Board() *Board { return e.board }
