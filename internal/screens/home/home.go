// Package home implements the dashboard shown after login: the
// learner's level, XP progress, and the main navigation menu.
package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/fluentwave/fluentwave/internal/api"
	"github.com/fluentwave/fluentwave/internal/leveling"
	"github.com/fluentwave/fluentwave/internal/router"
	"github.com/fluentwave/fluentwave/internal/screen"
	"github.com/fluentwave/fluentwave/internal/screens/leaderboard"
	"github.com/fluentwave/fluentwave/internal/screens/lessons"
	"github.com/fluentwave/fluentwave/internal/screens/profile"
	"github.com/fluentwave/fluentwave/internal/ui/components"
	"github.com/fluentwave/fluentwave/internal/ui/theme"
)

type profileRefreshMsg struct {
	profile *api.Profile
	err     error
}

// HomeScreen is the post-login dashboard.
type HomeScreen struct {
	deps *screen.Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the dashboard.
func New(deps *screen.Deps) *HomeScreen {
	items := []components.MenuItem{
		{Label: "LESSONS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: lessons.New(deps)}
			}
		}},
		{Label: "PROFILE", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: profile.New(deps)}
			}
		}},
		{Label: "LEADERBOARD", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: leaderboard.New(deps)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// Init refreshes the profile when the cached copy has gone stale.
func (h *HomeScreen) Init() tea.Cmd {
	sess := h.deps.Session
	if sess == nil || !sess.ProfileStale(time.Now()) {
		return nil
	}

	client := h.deps.API
	timeout := 15 * time.Second
	if h.deps.Config != nil {
		timeout = h.deps.Config.RequestTimeout
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		p, err := client.FetchProfile(ctx)
		return profileRefreshMsg{profile: p, err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profileRefreshMsg:
		// A failed refresh keeps the cached profile; the dashboard
		// renders what it has.
		if msg.err == nil && msg.profile != nil && h.deps.Session != nil {
			h.deps.Session.UpdateProfile(msg.profile, time.Now())
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	name := "learner"
	totalXP := 0
	completed := 0
	if h.deps.Session != nil && h.deps.Session.Profile != nil {
		p := h.deps.Session.Profile
		if p.Name != "" {
			name = p.Name
		}
		totalXP = p.TotalXP
		for _, rec := range p.Records() {
			if rec.Completed {
				completed++
			}
		}
	}

	greeting := theme.Title.Render(fmt.Sprintf("ሰላም, %s!", name))
	sections = append(sections, greeting)

	info, err := leveling.Compute(totalXP)
	if err == nil {
		stats := fmt.Sprintf("Level %d   %d XP total   %d lessons done",
			info.Level, totalXP, completed)
		sections = append(sections, theme.Subtitle.Render(stats))

		barWidth := width - 20
		if barWidth > 48 {
			barWidth = 48
		}
		bar := components.NewProgressBar(
			fmt.Sprintf("Level %d", info.Level+1),
			leveling.Progress(info), true, barWidth)
		sections = append(sections, bar.View())
		sections = append(sections, theme.Hint.Render(
			fmt.Sprintf("%d XP to go", info.XPNeeded-info.XP)))
	}

	sections = append(sections, "")
	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n")
	card := theme.Card.Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
