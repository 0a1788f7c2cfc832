package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zorgkaart/internal/directory"
	"zorgkaart/internal/logging"
)

type fakeLister struct {
	mu        sync.Mutex
	calls     int
	providers []directory.Provider
	err       error
}

func (f *fakeLister) List(ctx context.Context) ([]directory.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.providers, nil
}

func (f *fakeLister) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeLister) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func watcherLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestReloadFailureKeepsSnapshot(t *testing.T) {
	mirror := NewMirror()
	mirror.Replace([]directory.Provider{{ID: "a", Naam: "Buurtzorg Noord"}})

	lister := &fakeLister{err: errors.New("connection refused")}
	w := NewWatcher("", lister, mirror, time.Millisecond, watcherLogger())

	w.reload()

	snap := mirror.Current()
	require.Len(t, snap.Providers, 1)
	assert.Equal(t, "a", snap.Providers[0].ID)
	assert.Equal(t, 1, lister.callCount())
}

func TestReloadAfterFailureRecovers(t *testing.T) {
	mirror := NewMirror()
	mirror.Replace([]directory.Provider{{ID: "a"}})

	lister := &fakeLister{
		providers: []directory.Provider{{ID: "a"}, {ID: "b"}},
		err:       errors.New("connection refused"),
	}
	w := NewWatcher("", lister, mirror, time.Millisecond, watcherLogger())

	w.reload()
	require.Len(t, mirror.Current().Providers, 1)

	lister.setErr(nil)
	w.reload()
	assert.Len(t, mirror.Current().Providers, 2)
}

func TestNotificationBurstReloadsOnce(t *testing.T) {
	mirror := NewMirror()
	lister := &fakeLister{providers: []directory.Provider{{ID: "a"}}}
	w := NewWatcher("", lister, mirror, 20*time.Millisecond, watcherLogger())

	// a multi-row import fires one NOTIFY per statement
	for i := 0; i < 5; i++ {
		w.deb.Trigger(w.reload)
	}

	require.Eventually(t, func() bool { return lister.callCount() > 0 },
		time.Second, time.Millisecond)

	// quiet period long past; no further reloads may trail in
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, lister.callCount())
	assert.Len(t, mirror.Current().Providers, 1)
}
