package login

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/fluentwave/fluentwave/internal/account"
	"github.com/fluentwave/fluentwave/internal/api"
	"github.com/fluentwave/fluentwave/internal/router"
	"github.com/fluentwave/fluentwave/internal/screen"
	"github.com/fluentwave/fluentwave/internal/store"
)

type stubScreen struct{}

func (stubScreen) Init() tea.Cmd                              { return nil }
func (s stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd)  { return s, nil }
func (stubScreen) View(int, int) string                       { return "" }
func (stubScreen) Title() string                              { return "Home" }

func signedToken(t *testing.T, userID string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func testDeps(t *testing.T) *screen.Deps {
	t.Helper()
	st, err := store.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return &screen.Deps{
		API:     api.New("http://localhost"),
		Store:   st,
		Session: &account.Session{},
	}
}

func testScreen(t *testing.T) *LoginScreen {
	return New(testDeps(t), func() screen.Screen { return stubScreen{} })
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(t *testing.T, s *LoginScreen, text string) *LoginScreen {
	t.Helper()
	for _, r := range text {
		scr, _ := s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
		s = scr.(*LoginScreen)
	}
	return s
}

func TestModeToggle(t *testing.T) {
	s := testScreen(t)
	if s.Title() != "Sign In" {
		t.Fatalf("Title = %q, want Sign In", s.Title())
	}

	scr, _ := s.Update(tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})
	s = scr.(*LoginScreen)
	if s.Title() != "Create Account" {
		t.Errorf("Title = %q, want Create Account", s.Title())
	}
	if len(s.fields()) != 3 {
		t.Errorf("register mode has %d fields, want 3", len(s.fields()))
	}

	scr, _ = s.Update(tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})
	s = scr.(*LoginScreen)
	if s.Title() != "Sign In" {
		t.Errorf("Title = %q, want Sign In after toggling back", s.Title())
	}
}

func TestFocusCycles(t *testing.T) {
	s := testScreen(t)
	s.Init()

	scr, _ := s.Update(specialKey(tea.KeyTab))
	s = scr.(*LoginScreen)
	if s.focus != 1 {
		t.Errorf("focus = %d, want 1", s.focus)
	}

	// Tab past the last field wraps to the first.
	scr, _ = s.Update(specialKey(tea.KeyTab))
	s = scr.(*LoginScreen)
	if s.focus != 0 {
		t.Errorf("focus = %d, want 0 after wrap", s.focus)
	}

	// Shift+tab from the first field wraps to the last.
	scr, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	s = scr.(*LoginScreen)
	if s.focus != 1 {
		t.Errorf("focus = %d, want 1 after reverse wrap", s.focus)
	}
}

func TestSubmitRequiresAllFields(t *testing.T) {
	s := testScreen(t)
	s.Init()

	// Enter on the last field with everything empty.
	scr, _ := s.Update(specialKey(tea.KeyTab))
	s = scr.(*LoginScreen)
	scr, cmd := s.Update(specialKey(tea.KeyEnter))
	s = scr.(*LoginScreen)

	if cmd != nil {
		t.Error("empty form must not start a request")
	}
	if s.errMsg != "All fields are required" {
		t.Errorf("errMsg = %q", s.errMsg)
	}
}

func TestSubmitRejectsBadEmail(t *testing.T) {
	s := testScreen(t)
	s.Init()

	s = typeText(t, s, "not-an-email")
	scr, _ := s.Update(specialKey(tea.KeyTab))
	s = scr.(*LoginScreen)
	s = typeText(t, s, "hunter2")
	scr, cmd := s.Update(specialKey(tea.KeyEnter))
	s = scr.(*LoginScreen)

	if cmd != nil {
		t.Error("bad email must not start a request")
	}
	if !strings.Contains(s.errMsg, "email") {
		t.Errorf("errMsg = %q", s.errMsg)
	}
}

func TestEnterMovesThroughFields(t *testing.T) {
	s := testScreen(t)
	s.Init()

	// Enter on a non-final field advances instead of submitting.
	scr, _ := s.Update(specialKey(tea.KeyEnter))
	s = scr.(*LoginScreen)
	if s.focus != 1 {
		t.Errorf("focus = %d, want 1", s.focus)
	}
	if s.waiting {
		t.Error("enter on the email field must not submit")
	}
}

func TestAuthFailureShowsFriendlyError(t *testing.T) {
	s := testScreen(t)

	scr, _ := s.Update(authResultMsg{err: api.ErrUnauthorized})
	s = scr.(*LoginScreen)
	if s.errMsg != "Wrong email or password" {
		t.Errorf("errMsg = %q", s.errMsg)
	}
	if s.waiting {
		t.Error("waiting should clear on failure")
	}

	scr, _ = s.Update(authResultMsg{err: &api.StatusError{Message: "Account disabled"}})
	s = scr.(*LoginScreen)
	if s.errMsg != "Account disabled" {
		t.Errorf("errMsg = %q", s.errMsg)
	}

	scr, _ = s.Update(authResultMsg{err: errors.New("dial tcp: refused")})
	s = scr.(*LoginScreen)
	if !strings.Contains(s.errMsg, "connection") {
		t.Errorf("errMsg = %q", s.errMsg)
	}
}

func TestAuthSuccessInstallsSession(t *testing.T) {
	deps := testDeps(t)
	s := New(deps, func() screen.Screen { return stubScreen{} })

	exp := time.Now().Add(72 * time.Hour)
	tok := signedToken(t, "user-9", exp)
	profile := &api.Profile{ID: "user-9", Name: "Abeba"}

	scr, cmd := s.Update(authResultMsg{token: tok, profile: profile})
	s = scr.(*LoginScreen)
	if cmd == nil {
		t.Fatal("expected a persistence command")
	}

	if deps.Session.UserID != "user-9" {
		t.Errorf("Session.UserID = %q, want user-9", deps.Session.UserID)
	}
	if deps.Session.Profile == nil || deps.Session.Profile.Name != "Abeba" {
		t.Error("profile should be attached to the session")
	}

	msg := cmd()
	rep, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("msg = %T, want router.ReplaceScreenMsg", msg)
	}
	if rep.Screen.Title() != "Home" {
		t.Errorf("next screen title = %q, want Home", rep.Screen.Title())
	}

	cached, err := deps.Store.LoadAccount(context.Background())
	if err != nil {
		t.Fatalf("load account: %v", err)
	}
	if cached.UserID != "user-9" {
		t.Errorf("cached UserID = %q, want user-9", cached.UserID)
	}
}

func TestGarbageTokenStaysOnScreen(t *testing.T) {
	s := testScreen(t)

	scr, cmd := s.Update(authResultMsg{token: "not-a-jwt", profile: nil})
	s = scr.(*LoginScreen)
	if cmd != nil {
		t.Error("an unusable token must not navigate away")
	}
	if !strings.Contains(s.errMsg, "token") {
		t.Errorf("errMsg = %q", s.errMsg)
	}
}

func TestKeysIgnoredWhileWaiting(t *testing.T) {
	s := testScreen(t)
	s.waiting = true

	scr, cmd := s.Update(specialKey(tea.KeyTab))
	s = scr.(*LoginScreen)
	if cmd != nil || s.focus != 0 {
		t.Error("input should be ignored while a request is in flight")
	}
}
