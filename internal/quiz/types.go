// Package quiz implements the quiz progression engine: question
// sequencing, per-type answer evaluation, the pair-matching board, and
// the session state machine that strings them together.
package quiz

// Type discriminates the five known question kinds. The values are the
// wire discriminants sent by the backend.
type Type string

const (
	TypeWordIntroduction Type = "wordIntroduction"
	TypeWordLearning     Type = "wordLearning"
	TypeMultipleChoice   Type = "multipleChoice"
	TypeSentenceUse      Type = "sentenceUse"
	TypeMatching         Type = "matching"
)

// KnownType reports whether t is one of the five recognized
// discriminants. Unknown types survive decoding and are rejected at
// evaluation time instead, so a single bad question cannot take down a
// whole quiz fetch.
func KnownType(t Type) bool {
	switch t {
	case TypeWordIntroduction, TypeWordLearning, TypeMultipleChoice,
		TypeSentenceUse, TypeMatching:
		return true
	}
	return false
}

// WordPair is one vocabulary entry. Pronunciation and ExampleSentence
// are display-only; pairing correctness is decided by the
// Amharic+English association alone.
type WordPair struct {
	Amharic         string
	English         string
	Pronunciation   string
	ExampleSentence string
}

// Question is immutable once loaded. Options carries the answer
// choices for multipleChoice/sentenceUse; Pairs carries the vocabulary
// entries for wordIntroduction/wordLearning/matching. Sentence is the
// display-only example sentence of sentenceUse questions.
type Question struct {
	ID            string
	Type          Type
	Text          string
	Sentence      string
	Options       []string
	Pairs         []WordPair
	CorrectAnswer string
}

// Validate checks that the question carries the data its type needs.
// Returns *UnknownTypeError for an unrecognized type and
// *ValidationError for malformed data.
func (q *Question) Validate() error {
	if !KnownType(q.Type) {
		return &UnknownTypeError{QuestionID: q.ID, Type: string(q.Type)}
	}

	switch q.Type {
	case TypeMultipleChoice, TypeSentenceUse:
		if len(q.Options) == 0 {
			return &ValidationError{QuestionID: q.ID, Reason: "no options"}
		}
		if q.CorrectAnswer == "" {
			return &ValidationError{QuestionID: q.ID, Reason: "missing correct answer"}
		}
	case TypeWordIntroduction, TypeWordLearning:
		if len(q.Pairs) == 0 {
			return &ValidationError{QuestionID: q.ID, Reason: "no word pairs"}
		}
	case TypeMatching:
		if len(q.Pairs) < 2 {
			return &ValidationError{QuestionID: q.ID, Reason: "matching needs at least two pairs"}
		}
		// The board tracks matches by token, so a word shared between
		// pairs would become unselectable after its first match and
		// leave the other pair unmatchable. Reject it here instead.
		amharic := make(map[string]bool, len(q.Pairs))
		english := make(map[string]bool, len(q.Pairs))
		for _, p := range q.Pairs {
			if amharic[p.Amharic] || english[p.English] {
				return &ValidationError{QuestionID: q.ID, Reason: "matching pairs share a word"}
			}
			amharic[p.Amharic] = true
			english[p.English] = true
		}
	}
	return nil
}

// Quiz is the fetched quiz definition. Never mutated after decode;
// Sequence produces a new ordered view of Questions.
type Quiz struct {
	LessonID    string
	LessonTitle string
	Questions   []Question
}
