package api

import (
	"encoding/json"
	"fmt"

	"github.com/fluentwave/fluentwave/internal/progress"
	"github.com/fluentwave/fluentwave/internal/quiz"
)

// Profile is the learner's server-side state, as returned inside the
// backend's {data: …} envelope.
type Profile struct {
	ID       string           `json:"_id"`
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	TotalXP  int              `json:"totalXp"`
	Avatar   string           `json:"avatar"`
	Progress []progressRecord `json:"progress"`
}

type progressRecord struct {
	LessonID  string `json:"lessonId"`
	Completed bool   `json:"completed"`
}

// Records converts the wire progress entries into engine records.
func (p *Profile) Records() []progress.Record {
	records := make([]progress.Record, 0, len(p.Progress))
	for _, r := range p.Progress {
		records = append(records, progress.Record{
			LessonID:  r.LessonID,
			Completed: r.Completed,
		})
	}
	return records
}

// LeaderboardEntry is one row of the XP leaderboard.
type LeaderboardEntry struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	TotalXP int    `json:"totalXp"`
}

// CompletionResult is the backend's answer to a completion submission.
type CompletionResult struct {
	XPGained int `json:"xpGained"`
	Level    int `json:"level"`
	TotalXP  int `json:"totalXp"`
}

type loginResponse struct {
	Token string  `json:"token"`
	Data  Profile `json:"data"`
}

type profileEnvelope struct {
	Data Profile `json:"data"`
}

type leaderboardEnvelope struct {
	Data []LeaderboardEntry `json:"data"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type sectionDTO struct {
	Title   string      `json:"title"`
	Lessons []lessonDTO `json:"lessons"`
}

type lessonDTO struct {
	ID         string `json:"_id"`
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
	Order      int    `json:"order"`
	QuizID     string `json:"quizId"`
}

func (s sectionDTO) toSection() progress.Section {
	lessons := make([]progress.Lesson, 0, len(s.Lessons))
	for _, l := range s.Lessons {
		lessons = append(lessons, progress.Lesson{
			ID:         l.ID,
			Title:      l.Title,
			Difficulty: l.Difficulty,
			Order:      l.Order,
			QuizID:     l.QuizID,
		})
	}
	return progress.Section{Title: s.Title, Lessons: lessons}
}

type quizDTO struct {
	LessonID    json.RawMessage `json:"lessonId"`
	LessonTitle string          `json:"lessonTitle"`
	Questions   []questionDTO   `json:"questions"`
}

type questionDTO struct {
	ID            string            `json:"_id"`
	QuestionType  string            `json:"questionType"`
	QuestionText  string            `json:"questionText"`
	Sentence      string            `json:"sentence"`
	Options       []json.RawMessage `json:"options"`
	CorrectAnswer json.RawMessage   `json:"correctAnswer"`
}

type pairDTO struct {
	Amharic         string `json:"Amharic"`
	English         string `json:"English"`
	Pronunciation   string `json:"Pronunciation"`
	ExampleSentence string `json:"ExampleSentence"`
}

func (d quizDTO) toQuiz() (*quiz.Quiz, error) {
	q := &quiz.Quiz{
		LessonID:    decodeLessonRef(d.LessonID),
		LessonTitle: d.LessonTitle,
	}
	for i, qd := range d.Questions {
		question, err := qd.toQuestion()
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		q.Questions = append(q.Questions, question)
	}
	return q, nil
}

// decodeLessonRef handles the backend's two lesson reference shapes:
// a bare ID string or a populated document {"_id": …}.
func decodeLessonRef(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return id
	}
	var doc struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(raw, &doc); err == nil {
		return doc.ID
	}
	return ""
}

func (d questionDTO) toQuestion() (quiz.Question, error) {
	q := quiz.Question{
		ID:       d.ID,
		Type:     quiz.Type(d.QuestionType),
		Text:     d.QuestionText,
		Sentence: d.Sentence,
	}

	switch q.Type {
	case quiz.TypeWordIntroduction, quiz.TypeWordLearning, quiz.TypeMatching:
		for _, raw := range d.Options {
			var pair pairDTO
			if err := json.Unmarshal(raw, &pair); err != nil {
				return q, fmt.Errorf("decode word pair: %w", err)
			}
			q.Pairs = append(q.Pairs, quiz.WordPair{
				Amharic:         pair.Amharic,
				English:         pair.English,
				Pronunciation:   pair.Pronunciation,
				ExampleSentence: pair.ExampleSentence,
			})
		}
	default:
		// multipleChoice, sentenceUse, and anything unrecognized carry
		// scalar options (strings or numbers on the wire).
		for _, raw := range d.Options {
			q.Options = append(q.Options, scalarString(raw))
		}
		q.CorrectAnswer = scalarString(d.CorrectAnswer)
	}

	return q, nil
}

// scalarString renders a wire scalar as the string the learner sees;
// numbers lose no precision and never gain a trailing ".0".
func scalarString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return string(raw)
}

// submitRequest is the completion submission body.
type submitRequest struct {
	UserID         string `json:"userId"`
	LessonID       string `json:"lessonId"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
}
