package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zorgkaart/internal/directory"
)

func TestSubscribeDeliversCurrentSnapshot(t *testing.T) {
	m := NewMirror()
	m.Replace([]directory.Provider{{ID: "1", Naam: "Buurtzorg Noord", Categorie: "Thuiszorg"}})

	ch, cancel := m.Subscribe()
	defer cancel()

	select {
	case snap := <-ch:
		require.Len(t, snap.Providers, 1)
		assert.Equal(t, "Buurtzorg Noord", snap.Providers[0].Naam)
	case <-time.After(time.Second):
		t.Fatal("no initial snapshot")
	}
}

func TestReplaceFansOut(t *testing.T) {
	m := NewMirror()
	ch, cancel := m.Subscribe()
	defer cancel()
	<-ch // initial empty snapshot

	m.Replace([]directory.Provider{{ID: "1", Naam: "X", Categorie: "GGZ"}})

	select {
	case snap := <-ch:
		require.Len(t, snap.Providers, 1)
	case <-time.After(time.Second):
		t.Fatal("no snapshot after Replace")
	}
}

func TestLaggingSubscriberGetsLatestOnly(t *testing.T) {
	m := NewMirror()
	ch, cancel := m.Subscribe()
	defer cancel()
	<-ch

	// subscriber is not reading; both versions land while it lags
	m.Replace([]directory.Provider{{ID: "1", Naam: "oud", Categorie: "GGZ"}})
	m.Replace([]directory.Provider{{ID: "1", Naam: "nieuw", Categorie: "GGZ"}})

	snap := <-ch
	require.Len(t, snap.Providers, 1)
	assert.Equal(t, "nieuw", snap.Providers[0].Naam)

	select {
	case extra, ok := <-ch:
		if ok {
			t.Fatalf("unexpected queued snapshot: %+v", extra)
		}
	default:
	}
}

func TestCancelClosesChannel(t *testing.T) {
	m := NewMirror()
	ch, cancel := m.Subscribe()
	<-ch
	cancel()
	cancel() // idempotent

	_, ok := <-ch
	assert.False(t, ok)

	// replace after cancel must not panic or deliver
	m.Replace(nil)
	assert.Empty(t, m.Current().Providers)
}

func TestReplaceNilBecomesEmpty(t *testing.T) {
	m := NewMirror()
	m.Replace(nil)
	snap := m.Current()
	require.NotNil(t, snap.Providers)
	assert.Empty(t, snap.Providers)
}
