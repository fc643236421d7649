// Package lessons implements the lesson browser: sections paged with
// left/right, lessons listed with their locked, unlocked, or completed
// state.
package lessons

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/fluentwave/fluentwave/internal/progress"
	"github.com/fluentwave/fluentwave/internal/router"
	"github.com/fluentwave/fluentwave/internal/screen"
	"github.com/fluentwave/fluentwave/internal/screens/quizscreen"
	"github.com/fluentwave/fluentwave/internal/ui/layout"
	"github.com/fluentwave/fluentwave/internal/ui/theme"
)

type sectionsMsg struct {
	sections []progress.Section
	err      error
}

// LessonsScreen lists the curriculum one section at a time.
type LessonsScreen struct {
	deps *screen.Deps

	sections []progress.Section
	section  int
	cursor   int
	loading  bool
	errMsg   string
}

var _ screen.Screen = (*LessonsScreen)(nil)

// New creates the lesson browser.
func New(deps *screen.Deps) *LessonsScreen {
	return &LessonsScreen{deps: deps, loading: true}
}

func (l *LessonsScreen) Title() string {
	return "Lessons"
}

func (l *LessonsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Section"},
		{Key: "↑↓", Description: "Lesson"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (l *LessonsScreen) Init() tea.Cmd {
	client := l.deps.API
	timeout := 15 * time.Second
	if l.deps.Config != nil {
		timeout = l.deps.Config.RequestTimeout
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		sections, err := client.FetchLessons(ctx)
		return sectionsMsg{sections: sections, err: err}
	}
}

// completed returns the learner's completion set from the cached profile.
func (l *LessonsScreen) completed() progress.CompletedSet {
	if l.deps.Session == nil || l.deps.Session.Profile == nil {
		return progress.CompletedSet{}
	}
	return progress.NewCompletedSet(l.deps.Session.Profile.Records())
}

// current returns the visible section's lessons in unlock order.
func (l *LessonsScreen) current() []progress.Lesson {
	if l.section >= len(l.sections) {
		return nil
	}
	return progress.SortLessons(l.sections[l.section].Lessons)
}

func (l *LessonsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sectionsMsg:
		l.loading = false
		if msg.err != nil {
			l.errMsg = "Could not load lessons, press r to retry"
			return l, nil
		}
		l.errMsg = ""
		l.sections = msg.sections
		return l, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "r":
			if l.errMsg != "" {
				l.loading = true
				l.errMsg = ""
				return l, l.Init()
			}
		case "left", "h":
			if l.section > 0 {
				l.section--
				l.cursor = 0
			}
		case "right", "l":
			if l.section < len(l.sections)-1 {
				l.section++
				l.cursor = 0
			}
		case "up", "k":
			if l.cursor > 0 {
				l.cursor--
			}
		case "down", "j":
			if l.cursor < len(l.current())-1 {
				l.cursor++
			}
		case "enter":
			return l, l.open()
		}
	}

	return l, nil
}

// open starts the quiz for the selected lesson if it is unlocked.
func (l *LessonsScreen) open() tea.Cmd {
	lessonsHere := l.current()
	if l.cursor >= len(lessonsHere) {
		return nil
	}
	lesson := lessonsHere[l.cursor]
	if !progress.Unlocked(lesson, lessonsHere, l.completed()) {
		return nil
	}

	quizID := lesson.QuizID
	if quizID == "" {
		quizID = lesson.ID
	}
	deps := l.deps
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: quizscreen.New(deps, quizID, lesson.Title)}
	}
}

func (l *LessonsScreen) View(width, height int) string {
	if l.loading {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Loading lessons..."))
	}
	if l.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render(l.errMsg))
	}
	if len(l.sections) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No lessons yet, check back soon"))
	}

	completed := l.completed()
	section := l.sections[l.section]
	lessonsHere := l.current()

	var b strings.Builder

	pager := fmt.Sprintf("◀  %s  (%d/%d)  ▶", section.Title, l.section+1, len(l.sections))
	b.WriteString(theme.Title.Render(pager) + "\n\n")

	for i, lesson := range lessonsHere {
		var marker, label string
		switch {
		case completed[lesson.ID]:
			marker = theme.Correct.Render("✓")
			label = theme.Body.Render(lesson.Title)
		case progress.Unlocked(lesson, lessonsHere, completed):
			marker = theme.Selected.Render("▶")
			label = theme.Body.Render(lesson.Title)
		default:
			marker = theme.Locked.Render("🔒")
			label = theme.Locked.Render(lesson.Title)
		}

		cursor := "  "
		if i == l.cursor {
			cursor = theme.Selected.Render("▸ ")
		}

		line := fmt.Sprintf("%s%s %s", cursor, marker, label)
		if lesson.Difficulty != "" {
			line += "  " + theme.Hint.Render(lesson.Difficulty)
		}
		b.WriteString(line + "\n")
	}

	card := theme.Card.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
