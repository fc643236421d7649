// Package login implements the sign-in / register screen.
package login

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/fluentwave/fluentwave/internal/account"
	"github.com/fluentwave/fluentwave/internal/api"
	"github.com/fluentwave/fluentwave/internal/router"
	"github.com/fluentwave/fluentwave/internal/screen"
	"github.com/fluentwave/fluentwave/internal/store"
	"github.com/fluentwave/fluentwave/internal/ui/components"
	"github.com/fluentwave/fluentwave/internal/ui/layout"
	"github.com/fluentwave/fluentwave/internal/ui/theme"
)

// Mode selects between signing in and creating an account.
type Mode int

const (
	ModeSignIn Mode = iota
	ModeRegister
)

const requestTimeout = 30 * time.Second

type authResultMsg struct {
	token   string
	profile *api.Profile
	err     error
}

// LoginScreen collects credentials and authenticates against the server.
type LoginScreen struct {
	deps *screen.Deps
	next func() screen.Screen

	mode    Mode
	name    components.TextInput
	email   components.TextInput
	pass    components.TextInput
	focus   int
	waiting bool
	errMsg  string
}

var _ screen.Screen = (*LoginScreen)(nil)

// New creates the login screen in sign-in mode. next produces the
// screen shown after successful authentication.
func New(deps *screen.Deps, next func() screen.Screen) *LoginScreen {
	s := &LoginScreen{
		deps:  deps,
		next:  next,
		name:  components.NewTextInput("Your name", 64),
		email: components.NewTextInput("you@example.com", 128),
		pass:  components.NewPasswordInput("Password", 128),
	}
	return s
}

func (s *LoginScreen) Title() string {
	if s.mode == ModeRegister {
		return "Create Account"
	}
	return "Sign In"
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.email.Focus()
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+T", Description: "Sign in / Register"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// fields returns the focusable inputs for the current mode, in order.
func (s *LoginScreen) fields() []*components.TextInput {
	if s.mode == ModeRegister {
		return []*components.TextInput{&s.name, &s.email, &s.pass}
	}
	return []*components.TextInput{&s.email, &s.pass}
}

func (s *LoginScreen) setFocus(i int) tea.Cmd {
	fields := s.fields()
	if i < 0 {
		i = len(fields) - 1
	}
	if i >= len(fields) {
		i = 0
	}
	s.focus = i
	var cmd tea.Cmd
	for j, f := range fields {
		if j == i {
			cmd = f.Focus()
		} else {
			f.Blur()
		}
	}
	return cmd
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		s.waiting = false
		if msg.err != nil {
			s.errMsg = friendlyAuthError(msg.err)
			return s, nil
		}
		return s, s.completeAuth(msg.token, msg.profile)

	case tea.KeyPressMsg:
		if s.waiting {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.setFocus(s.focus + 1)
		case "shift+tab", "up":
			return s, s.setFocus(s.focus - 1)
		case "ctrl+t":
			if s.mode == ModeSignIn {
				s.mode = ModeRegister
			} else {
				s.mode = ModeSignIn
			}
			s.errMsg = ""
			return s, s.setFocus(0)
		case "enter":
			if s.focus < len(s.fields())-1 {
				return s, s.setFocus(s.focus + 1)
			}
			return s, s.submit()
		}
	}

	fields := s.fields()
	var cmd tea.Cmd
	*fields[s.focus], cmd = fields[s.focus].Update(msg)
	return s, cmd
}

func (s *LoginScreen) submit() tea.Cmd {
	email := strings.TrimSpace(s.email.Value())
	pass := s.pass.Value()
	name := strings.TrimSpace(s.name.Value())

	if email == "" || pass == "" || (s.mode == ModeRegister && name == "") {
		s.errMsg = "All fields are required"
		return nil
	}
	if !strings.Contains(email, "@") {
		s.errMsg = "That doesn't look like an email address"
		return nil
	}

	s.waiting = true
	s.errMsg = ""
	mode := s.mode
	client := s.deps.API

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var (
			token   string
			profile *api.Profile
			err     error
		)
		if mode == ModeRegister {
			token, profile, err = client.Register(ctx, name, email, pass)
		} else {
			token, profile, err = client.Login(ctx, email, pass)
		}
		return authResultMsg{token: token, profile: profile, err: err}
	}
}

// completeAuth installs the session, persists it, and moves to home.
func (s *LoginScreen) completeAuth(token string, profile *api.Profile) tea.Cmd {
	now := time.Now()
	sess, err := account.New(token, profile, now)
	if err != nil {
		s.errMsg = "Server returned an unusable token"
		return nil
	}

	*s.deps.Session = *sess
	s.deps.API.SetToken(token)

	deps := s.deps
	next := s.next
	return func() tea.Msg {
		if deps.Store != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = deps.Store.SaveAccount(ctx, &store.CachedAccount{
				Token:     sess.Token,
				UserID:    sess.UserID,
				ExpiresAt: sess.ExpiresAt,
				Profile:   sess.Profile,
				FetchedAt: sess.FetchedAt,
			})
		}
		return router.ReplaceScreenMsg{Screen: next()}
	}
}

func friendlyAuthError(err error) string {
	var statusErr *api.StatusError
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return "Wrong email or password"
	case errors.As(err, &statusErr):
		if statusErr.Message != "" {
			return statusErr.Message
		}
		return "The server rejected the request"
	default:
		return "Could not reach the server, check your connection"
	}
}

func (s *LoginScreen) View(width, height int) string {
	var b strings.Builder

	heading := "Welcome back"
	action := "Sign in to continue learning"
	if s.mode == ModeRegister {
		heading = "Join Fluentwave"
		action = "Create an account to get started"
	}

	b.WriteString(theme.Title.Render(heading) + "\n")
	b.WriteString(theme.Subtitle.Render(action) + "\n\n")

	if s.mode == ModeRegister {
		b.WriteString(fieldLabel("Name", s.focusedField() == &s.name) + "\n")
		b.WriteString(s.name.View() + "\n\n")
	}
	b.WriteString(fieldLabel("Email", s.focusedField() == &s.email) + "\n")
	b.WriteString(s.email.View() + "\n\n")
	b.WriteString(fieldLabel("Password", s.focusedField() == &s.pass) + "\n")
	b.WriteString(s.pass.View() + "\n\n")

	switch {
	case s.waiting:
		b.WriteString(theme.Hint.Render("Signing in...") + "\n")
	case s.errMsg != "":
		b.WriteString(theme.Incorrect.Render(s.errMsg) + "\n")
	}

	card := theme.Card.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *LoginScreen) focusedField() *components.TextInput {
	return s.fields()[s.focus]
}

func fieldLabel(label string, focused bool) string {
	if focused {
		return theme.Selected.Render(label)
	}
	return theme.Body.Render(label)
}
