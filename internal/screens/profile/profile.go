// Package profile shows the learner's account details and progress.
package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/fluentwave/fluentwave/internal/api"
	"github.com/fluentwave/fluentwave/internal/leveling"
	"github.com/fluentwave/fluentwave/internal/screen"
	"github.com/fluentwave/fluentwave/internal/ui/components"
	"github.com/fluentwave/fluentwave/internal/ui/theme"
)

type profileMsg struct {
	profile *api.Profile
	err     error
}

// ProfileScreen renders the account card.
type ProfileScreen struct {
	deps    *screen.Deps
	loading bool
	errMsg  string
}

var _ screen.Screen = (*ProfileScreen)(nil)

// New creates the profile screen.
func New(deps *screen.Deps) *ProfileScreen {
	return &ProfileScreen{deps: deps}
}

func (p *ProfileScreen) Title() string {
	return "Profile"
}

func (p *ProfileScreen) Init() tea.Cmd {
	sess := p.deps.Session
	if sess == nil || !sess.ProfileStale(time.Now()) {
		return nil
	}

	p.loading = true
	client := p.deps.API
	timeout := 15 * time.Second
	if p.deps.Config != nil {
		timeout = p.deps.Config.RequestTimeout
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		prof, err := client.FetchProfile(ctx)
		return profileMsg{profile: prof, err: err}
	}
}

func (p *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(profileMsg); ok {
		p.loading = false
		if msg.err != nil {
			p.errMsg = "Showing cached profile, refresh failed"
			return p, nil
		}
		if p.deps.Session != nil {
			p.deps.Session.UpdateProfile(msg.profile, time.Now())
		}
	}
	return p, nil
}

func (p *ProfileScreen) View(width, height int) string {
	sess := p.deps.Session
	if sess == nil || sess.Profile == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Not signed in"))
	}

	prof := sess.Profile
	var b strings.Builder

	b.WriteString(theme.Title.Render(prof.Name) + "\n")
	b.WriteString(theme.Subtitle.Render(prof.Email) + "\n\n")

	info, err := leveling.Compute(prof.TotalXP)
	if err == nil {
		b.WriteString(theme.Body.Render(fmt.Sprintf("Level      %d", info.Level)) + "\n")
		b.WriteString(theme.Body.Render(fmt.Sprintf("Total XP   %d", prof.TotalXP)) + "\n\n")

		bar := components.NewProgressBar("Next level", leveling.Progress(info), true, 40)
		b.WriteString(bar.View() + "\n\n")
	}

	completed := 0
	for _, rec := range prof.Records() {
		if rec.Completed {
			completed++
		}
	}
	b.WriteString(theme.Body.Render(fmt.Sprintf("Lessons completed   %d", completed)) + "\n")

	switch {
	case p.loading:
		b.WriteString("\n" + theme.Hint.Render("Refreshing..."))
	case p.errMsg != "":
		b.WriteString("\n" + theme.Hint.Render(p.errMsg))
	}

	card := theme.Card.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
