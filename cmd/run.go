package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/fluentwave/fluentwave/internal/account"
	"github.com/fluentwave/fluentwave/internal/api"
	"github.com/fluentwave/fluentwave/internal/app"
	"github.com/fluentwave/fluentwave/internal/config"
	"github.com/fluentwave/fluentwave/internal/resync"
	"github.com/fluentwave/fluentwave/internal/screen"
	"github.com/fluentwave/fluentwave/internal/store"
)

// runApp builds the shared dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	deps, cleanup, err := buildDeps(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	// Replay completions journaled while offline. Best effort: the
	// journal keeps anything the server doesn't acknowledge.
	if deps.Session.Valid(time.Now()) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			_, _ = resync.Pending(ctx, deps.Store, deps.API, deps.Session.UserID)
		}()
	}

	return app.Run(deps)
}

// buildDeps loads config, opens the cache, restores any saved session,
// and wires the API client.
func buildDeps(cmd *cobra.Command) (*screen.Deps, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve cache path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}

	client := api.New(cfg.ServerURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}))

	sess := &account.Session{}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if cached, err := st.LoadAccount(ctx); err == nil {
		restored := &account.Session{
			Token:     cached.Token,
			UserID:    cached.UserID,
			ExpiresAt: cached.ExpiresAt,
			Profile:   cached.Profile,
			FetchedAt: cached.FetchedAt,
		}
		if restored.Valid(time.Now()) {
			sess = restored
			client.SetToken(sess.Token)
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	deps := &screen.Deps{
		API:     client,
		Store:   st,
		Config:  cfg,
		Session: sess,
		RNG:     rand.New(rand.NewPCG(seed, seed)),
	}
	return deps, func() { _ = st.Close() }, nil
}
