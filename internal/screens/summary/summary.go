// Package summary shows the end-of-quiz results card.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/fluentwave/fluentwave/internal/router"
	"github.com/fluentwave/fluentwave/internal/screen"
	"github.com/fluentwave/fluentwave/internal/ui/layout"
	"github.com/fluentwave/fluentwave/internal/ui/theme"
)

// Results carries everything the summary displays.
type Results struct {
	LessonTitle string
	Score       int
	Total       int
	Percentage  int

	// Server acknowledgement; zero values when sync failed.
	XPGained int
	Level    int

	// SyncFailed means the result is journaled locally but the server
	// has not acknowledged it yet.
	SyncFailed bool
}

// SummaryScreen displays the quiz results.
type SummaryScreen struct {
	results Results
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(results Results) *SummaryScreen {
	return &SummaryScreen{results: results}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.results
	var b strings.Builder

	heading := "ጎበዝ! Well done!"
	if r.Percentage < 50 {
		heading = "Keep practicing!"
	}
	b.WriteString(theme.Title.Render(heading) + "\n\n")

	if r.LessonTitle != "" {
		b.WriteString(theme.Subtitle.Render(r.LessonTitle) + "\n\n")
	}

	b.WriteString(theme.Body.Render(fmt.Sprintf("Score      %d / %d", r.Score, r.Total)) + "\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Accuracy   %d%%", r.Percentage)) + "\n")

	if r.SyncFailed {
		b.WriteString("\n" + theme.Hint.Render("Couldn't reach the server; your result is saved locally\nand will sync next time.") + "\n")
	} else {
		b.WriteString(theme.Correct.Render(fmt.Sprintf("XP gained  +%d", r.XPGained)) + "\n")
		if r.Level > 0 {
			b.WriteString(theme.Body.Render(fmt.Sprintf("Level      %d", r.Level)) + "\n")
		}
	}

	b.WriteString("\n" + theme.Hint.Render("press enter to continue"))

	card := theme.Card.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
