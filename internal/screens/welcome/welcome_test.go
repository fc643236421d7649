package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/fluentwave/fluentwave/internal/router"
	"github.com/fluentwave/fluentwave/internal/screen"
)

func newTestWelcome() *WelcomeScreen {
	return New(&screen.Deps{})
}

func sendTicks(w *WelcomeScreen, n int) {
	for i := 0; i < n; i++ {
		w.Update(tickMsg(time.Now()))
	}
}

func TestPhaseTransitions(t *testing.T) {
	w := newTestWelcome()

	// Initially at phase 0 — no banner visible
	view := w.View(80, 24)
	if strings.Contains(view, "one word at a time") {
		t.Error("tagline should not be visible at start")
	}

	// After 5 ticks (500ms) — phase 1 complete, sparkles should start
	sendTicks(w, 5)
	if w.elapsed != 500*time.Millisecond {
		t.Errorf("expected elapsed 500ms, got %v", w.elapsed)
	}

	// After 15 ticks (1500ms) — phase 2 complete, banner visible
	sendTicks(w, 10)
	view = w.View(80, 24)
	if !strings.Contains(view, "one word at a time") {
		t.Error("tagline should be visible after phase 2")
	}
}

func TestElapsedCappedAtTotal(t *testing.T) {
	w := newTestWelcome()
	sendTicks(w, 60)
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
}

func TestKeypressTransitionsToLogin(t *testing.T) {
	w := newTestWelcome()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should trigger transition")
	}
	msg := cmd()
	replaceMsg, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if replaceMsg.Screen == nil {
		t.Error("replace screen should not be nil")
	}
	if replaceMsg.Screen.Title() != "Sign In" {
		t.Errorf("logged-out transition should land on login, got %q", replaceMsg.Screen.Title())
	}
}

func TestNoAutoTransition(t *testing.T) {
	w := newTestWelcome()
	sendTicks(w, 60)
	if w.transitioned {
		t.Error("welcome should wait for a keypress")
	}
}

func TestTransitionOnce(t *testing.T) {
	w := newTestWelcome()
	sendTicks(w, 40)

	if _, cmd := w.Update(tea.KeyPressMsg{Code: 'a'}); cmd == nil {
		t.Fatal("first keypress should produce a command")
	}
	if _, cmd := w.Update(tea.KeyPressMsg{Code: 'b'}); cmd != nil {
		t.Error("second keypress should not produce a command")
	}
}

func TestTitleEmpty(t *testing.T) {
	w := newTestWelcome()
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}

func TestCompactBanner(t *testing.T) {
	if !strings.Contains(RenderBanner(40), "F L U E N T W A V E") {
		t.Error("narrow terminals should get the compact banner")
	}
}
