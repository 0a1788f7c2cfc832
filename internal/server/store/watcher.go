package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"zorgkaart/internal/debounce"
	"zorgkaart/internal/directory"
	"zorgkaart/internal/logging"
)

// NotifyChannel is the Postgres notification channel raised by the
// providers table trigger on any change.
const NotifyChannel = "zorgkaart_providers"

// reconnectDelay is how long the watcher waits before redialing after a
// listen connection drops.
const reconnectDelay = 2 * time.Second

// reloadTimeout bounds a single snapshot reload.
const reloadTimeout = 10 * time.Second

// Lister is the read side the watcher reloads snapshots from.
type Lister interface {
	List(ctx context.Context) ([]directory.Provider, error)
}

// Watcher holds a dedicated LISTEN connection to Postgres and refreshes the
// mirror when the providers table changes. Notification bursts (a multi-row
// import fires one NOTIFY per statement) are coalesced through a debouncer
// so the collection is re-read once per burst.
type Watcher struct {
	dsn    string
	repo   Lister
	mirror *Mirror
	logger logging.Logger
	deb    *debounce.Debouncer
}

// NewWatcher constructs a Watcher. quiet is the debounce period for
// notification bursts.
func NewWatcher(dsn string, repo Lister, mirror *Mirror, quiet time.Duration, logger logging.Logger) *Watcher {
	return &Watcher{
		dsn:    dsn,
		repo:   repo,
		mirror: mirror,
		logger: logger,
		deb:    debounce.New(quiet),
	}
}

// Run loads the initial snapshot and then listens for change notifications
// until ctx is cancelled, reconnecting when the listen connection drops.
func (w *Watcher) Run(ctx context.Context) error {
	w.reload()

	for {
		if err := w.listen(ctx); err != nil {
			if ctx.Err() != nil {
				w.deb.Stop()
				return ctx.Err()
			}
			w.logger.Warn(ctx, "listen connection lost, reconnecting", "error", err)
		}

		select {
		case <-ctx.Done():
			w.deb.Stop()
			return ctx.Err()
		case <-time.After(reconnectDelay):
		}
	}
}

// listen dials a dedicated connection, subscribes to NotifyChannel and
// blocks on notifications. A reload also runs on (re)connect, to cover
// changes made while the connection was down.
func (w *Watcher) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, w.dsn)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "listen "+NotifyChannel); err != nil {
		return err
	}
	w.logger.Info(ctx, "listening for provider changes", "channel", NotifyChannel)
	w.deb.Trigger(w.reload)

	for {
		if _, err := conn.WaitForNotification(ctx); err != nil {
			return err
		}
		w.deb.Trigger(w.reload)
	}
}

// reload re-reads the full collection and swaps it into the mirror. It runs
// on the debounce timer goroutine, detached from any request context.
func (w *Watcher) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()

	providers, err := w.repo.List(ctx)
	if err != nil {
		w.logger.Error(ctx, "snapshot reload failed", "error", err)
		return
	}
	w.mirror.Replace(providers)
	w.logger.Debug(ctx, "snapshot reloaded", "providers", len(providers))
}
