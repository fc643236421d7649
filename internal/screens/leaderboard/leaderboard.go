// Package leaderboard lists the top learners by XP.
package leaderboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/fluentwave/fluentwave/internal/api"
	"github.com/fluentwave/fluentwave/internal/screen"
	"github.com/fluentwave/fluentwave/internal/ui/theme"
)

type entriesMsg struct {
	entries []api.LeaderboardEntry
	err     error
}

// LeaderboardScreen shows the global XP ranking.
type LeaderboardScreen struct {
	deps    *screen.Deps
	entries []api.LeaderboardEntry
	loading bool
	errMsg  string
}

var _ screen.Screen = (*LeaderboardScreen)(nil)

// New creates the leaderboard screen.
func New(deps *screen.Deps) *LeaderboardScreen {
	return &LeaderboardScreen{deps: deps, loading: true}
}

func (l *LeaderboardScreen) Title() string {
	return "Leaderboard"
}

func (l *LeaderboardScreen) Init() tea.Cmd {
	client := l.deps.API
	timeout := 15 * time.Second
	if l.deps.Config != nil {
		timeout = l.deps.Config.RequestTimeout
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		entries, err := client.FetchLeaderboard(ctx)
		return entriesMsg{entries: entries, err: err}
	}
}

func (l *LeaderboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesMsg:
		l.loading = false
		if msg.err != nil {
			l.errMsg = "Could not load the leaderboard, press r to retry"
			return l, nil
		}
		l.errMsg = ""
		l.entries = msg.entries
	case tea.KeyPressMsg:
		if msg.String() == "r" && l.errMsg != "" {
			l.loading = true
			l.errMsg = ""
			return l, l.Init()
		}
	}
	return l, nil
}

func (l *LeaderboardScreen) View(width, height int) string {
	if l.loading {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Loading leaderboard..."))
	}
	if l.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render(l.errMsg))
	}

	selfID := ""
	if l.deps.Session != nil {
		selfID = l.deps.Session.UserID
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Top learners") + "\n\n")

	medals := []string{"🥇", "🥈", "🥉"}
	for i, e := range l.entries {
		rank := fmt.Sprintf("%2d.", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		line := fmt.Sprintf("%s  %-20s %6d XP", rank, e.Name, e.TotalXP)
		if e.ID != "" && e.ID == selfID {
			b.WriteString(theme.Selected.Render(line+"  ← you") + "\n")
		} else {
			b.WriteString(theme.Body.Render(line) + "\n")
		}
	}
	if len(l.entries) == 0 {
		b.WriteString(theme.Hint.Render("Nobody here yet, be the first!") + "\n")
	}

	card := theme.Card.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
