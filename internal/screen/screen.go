package screen

import (
	"math/rand/v2"

	tea "charm.land/bubbletea/v2"

	"github.com/fluentwave/fluentwave/internal/account"
	"github.com/fluentwave/fluentwave/internal/api"
	"github.com/fluentwave/fluentwave/internal/config"
	"github.com/fluentwave/fluentwave/internal/store"
	"github.com/fluentwave/fluentwave/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Deps carries the shared collaborators screens need. A single Deps
// value is built at startup and passed to every screen constructor.
type Deps struct {
	API     *api.Client
	Store   *store.Store
	Config  *config.Config
	Session *account.Session
	RNG     *rand.Rand
}

// LoggedIn reports whether a usable account session is attached.
func (d *Deps) LoggedIn() bool {
	return d.Session != nil && d.Session.Token != ""
}
