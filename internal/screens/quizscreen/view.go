package quizscreen

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/fluentwave/fluentwave/internal/quiz"
	"github.com/fluentwave/fluentwave/internal/ui/components"
	"github.com/fluentwave/fluentwave/internal/ui/theme"
)

func (q *QuizScreen) View(width, height int) string {
	var content string

	switch q.phase {
	case phaseLoading:
		content = theme.Hint.Render("Loading quiz...")
	case phaseSyncing:
		content = theme.Hint.Render("Saving your progress...")
	case phaseError:
		content = theme.Incorrect.Render(q.errMsg)
	default:
		content = q.viewQuestion(width)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (q *QuizScreen) viewQuestion(width int) string {
	var b strings.Builder

	counter := fmt.Sprintf("Question %d of %d", q.session.Index()+1, q.session.Total())
	b.WriteString(theme.Subtitle.Render(counter) + "\n\n")

	switch ev := q.eval.(type) {
	case *quiz.IntroductionEvaluator:
		b.WriteString(q.viewWordCard(ev.Question(), "Mark as complete"))
	case *quiz.LearningEvaluator:
		b.WriteString(q.viewWordCard(ev.Question(), "Continue"))
	case *quiz.ChoiceEvaluator:
		b.WriteString(q.viewChoice(ev.Question()))
	case *quiz.MatchingEvaluator:
		b.WriteString(q.viewMatching(ev))
	}

	return theme.Card.Render(b.String())
}

// viewWordCard renders an introduction or learning card with the word,
// its pronunciation, and its translation. confirm labels the button
// that moves on.
func (q *QuizScreen) viewWordCard(question *quiz.Question, confirm string) string {
	var b strings.Builder

	if question.Text != "" {
		b.WriteString(theme.Body.Render(question.Text) + "\n\n")
	}

	if len(question.Pairs) > 0 {
		pair := question.Pairs[0]
		b.WriteString(theme.Amharic.Render(pair.Amharic) + "\n")
		if pair.Pronunciation != "" {
			b.WriteString(theme.Hint.Render("["+pair.Pronunciation+"]") + "\n")
		}
		b.WriteString("\n")
		b.WriteString(theme.Correct.Render(pair.English) + "\n")
		if pair.ExampleSentence != "" {
			b.WriteString("\n" + theme.Hint.Render(pair.ExampleSentence) + "\n")
		}
	}

	b.WriteString("\n" + components.NewButton(confirm, true, nil).View())
	return b.String()
}

func (q *QuizScreen) viewChoice(question *quiz.Question) string {
	var b strings.Builder

	// Sentence context is display only.
	if question.Sentence != "" {
		b.WriteString(theme.Amharic.Render(question.Sentence) + "\n\n")
	}

	b.WriteString(q.options.View())

	if q.phase == phaseFeedback {
		b.WriteString("\n")
		if q.lastVerdict.Correct {
			b.WriteString(theme.Correct.Render("Correct!") + "\n")
		} else {
			b.WriteString(theme.Incorrect.Render("Not quite.") + "\n")
		}
		b.WriteString(theme.Hint.Render("press enter to continue"))
	}
	return b.String()
}

func (q *QuizScreen) viewMatching(ev *quiz.MatchingEvaluator) string {
	var b strings.Builder

	prompt := ev.Question().Text
	if prompt == "" {
		prompt = "Match each word with its translation"
	}
	b.WriteString(theme.Body.Render(prompt) + "\n\n")

	b.WriteString(q.board.View() + "\n")

	board := ev.Board()
	b.WriteString(theme.Subtitle.Render(
		fmt.Sprintf("%d of %d matched", board.MatchedCount(), board.PairCount())))

	if q.phase == phaseFeedback {
		b.WriteString("\n\n" + theme.Correct.Render("All matched!") + "\n")
		b.WriteString(theme.Hint.Render("press enter to continue"))
	}
	return b.String()
}
