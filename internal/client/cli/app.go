// Package cli implements the interactive zorgkaart terminal client: a REPL
// over a live mirror of the provider collection. The mirror is fed by the
// server's snapshot stream, so every mutation made here (or anywhere else)
// shows up without manual refreshing.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"zorgkaart/internal/client/config"
	"zorgkaart/internal/debounce"
	"zorgkaart/internal/directory"
	"zorgkaart/internal/geo"
	"zorgkaart/internal/logging"
	"zorgkaart/internal/server/store"
	"zorgkaart/internal/views"
)

// streamRetryDelay is how long the app waits before reopening a dropped
// snapshot stream.
const streamRetryDelay = 2 * time.Second

// apiClient is the surface of the HTTP client the app uses; a test stub
// satisfies it without a server.
type apiClient interface {
	Login(ctx context.Context, wachtwoord string) error
	Logout()
	LoggedIn() bool
	Stream(ctx context.Context) (<-chan store.Snapshot, error)
	CreateProvider(ctx context.Context, p *directory.Provider) (*directory.Provider, error)
	UpdateProvider(ctx context.Context, p *directory.Provider) error
	DeleteProvider(ctx context.Context, id string) error
	AddOpmerking(ctx context.Context, id, tekst, auteur string) error
	DeleteOpmerking(ctx context.Context, id string, displayIndex int) error
	SearchPlaces(ctx context.Context, q string) ([]geo.Place, error)
	MapView(ctx context.Context, f directory.Filters) (*views.Model, error)
}

// syncWriter serializes writes to the terminal. The debounced render runs
// on a timer goroutine while the REPL prints prompts; without the lock the
// two can tear each other's output.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

type App struct {
	config *config.Config
	api    apiClient
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer
	deb    *debounce.Debouncer

	mu        sync.Mutex
	providers []directory.Provider
	filters   directory.Filters
	mode      views.Mode

	// lastShown maps the numbers of the last rendered listing back to
	// provider ids, for commands addressing a provider by number.
	lastShown []string
}

// NewApp constructs the CLI app around an API client.
func NewApp(c *config.Config, client apiClient, logger logging.Logger) *App {
	return &App{
		config: c,
		api:    client,
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
		out:    &syncWriter{w: os.Stdout},
		deb:    debounce.New(c.SearchDebounce),
		mode:   views.ModeCards,
	}
}

// Run logs in and starts the REPL. It returns when the user exits or input
// reaches EOF.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.login(ctx); err != nil {
		return
	}
	go a.watchSnapshots(ctx)

	a.root(ctx)
}

// watchSnapshots keeps the local mirror in sync with the server and
// re-renders the active view on every received snapshot, reopening the
// stream whenever it drops.
func (a *App) watchSnapshots(ctx context.Context) {
	for {
		ch, err := a.api.Stream(ctx)
		if err != nil {
			a.logger.Warn(ctx, "snapshot stream unavailable", "error", err)
		} else {
			for snap := range ch {
				a.mu.Lock()
				a.providers = snap.Providers
				a.mu.Unlock()
				a.deb.Trigger(func() { a.render(ctx) })
			}
			a.logger.Debug(ctx, "snapshot stream closed")
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(streamRetryDelay):
		}
	}
}

// snapshot returns the current mirror contents.
func (a *App) snapshot() []directory.Provider {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.providers
}

func (a *App) currentFilters() directory.Filters {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filters
}

func (a *App) currentMode() views.Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// setQuery updates the search text and re-renders after the debounce quiet
// period, so a fast typist triggers one render, not one per keystroke.
func (a *App) setQuery(ctx context.Context, q string) {
	a.mu.Lock()
	a.filters.Query = q
	a.mu.Unlock()

	a.deb.Trigger(func() { a.render(ctx) })
}

func (a *App) setCategorie(categorie string) {
	a.mu.Lock()
	a.filters.Categorie = categorie
	a.mu.Unlock()
}

func (a *App) clearFilters() {
	a.mu.Lock()
	a.filters = directory.Filters{}
	a.mu.Unlock()
}

func (a *App) setMode(m views.Mode) {
	a.mu.Lock()
	a.mode = m
	a.mu.Unlock()
}
