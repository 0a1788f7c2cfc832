package views

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zorgkaart/internal/directory"
	"zorgkaart/internal/geo"
)

var testProviders = []directory.Provider{
	{
		ID: "1", Naam: "Buurtzorg Noord", Categorie: "Thuiszorg",
		Adres:  "Overlanderstraat 1, Purmerend",
		Labels: []string{"wijkverpleging"},
		Opmerkingen: []directory.Comment{
			{Tekst: "oud", Auteur: "Anoniem", Datum: "2024-01-01"},
			{Tekst: "nieuw", Auteur: "Anoniem", Datum: "2024-03-01"},
		},
	},
	{ID: "2", Naam: "De Zorgcirkel", Categorie: "Thuiszorg", Adres: "Wolthuissingel 1, Purmerend"},
	{ID: "3", Naam: "Praktijk Helder", Categorie: "GGZ"},
}

type fakeGeocoder struct {
	mu     sync.Mutex
	points map[string]geo.Point
	err    error
	calls  []string
}

func (f *fakeGeocoder) Geocode(ctx context.Context, adres string) (geo.Point, bool, error) {
	f.mu.Lock()
	f.calls = append(f.calls, adres)
	f.mu.Unlock()
	if f.err != nil {
		return geo.Point{}, false, f.err
	}
	pt, ok := f.points[adres]
	return pt, ok, nil
}

func TestRenderCardsSortsComments(t *testing.T) {
	m := Render(context.Background(), testProviders, State{Mode: ModeCards}, nil)

	assert.Equal(t, 3, m.Count)
	assert.False(t, m.Empty)
	require.Len(t, m.Cards, 3)
	require.Len(t, m.Cards[0].Opmerkingen, 2)
	assert.Equal(t, "nieuw", m.Cards[0].Opmerkingen[0].Tekst)
	assert.Equal(t, "oud", m.Cards[0].Opmerkingen[1].Tekst)
}

func TestRenderListUsesStreet(t *testing.T) {
	m := Render(context.Background(), testProviders, State{Mode: ModeList}, nil)

	require.Len(t, m.Rows, 3)
	assert.Equal(t, "Overlanderstraat 1", m.Rows[0].Straat)
	assert.Empty(t, m.Rows[2].Straat)
	assert.Nil(t, m.Cards)
}

func TestRenderAppliesFilters(t *testing.T) {
	st := State{Mode: ModeCards, Filters: directory.Filters{Categorie: "GGZ"}}
	m := Render(context.Background(), testProviders, st, nil)

	assert.Equal(t, 1, m.Count)
	require.Len(t, m.Cards, 1)
	assert.Equal(t, "Praktijk Helder", m.Cards[0].Naam)
}

func TestRenderMapSkipsUnresolved(t *testing.T) {
	gc := &fakeGeocoder{points: map[string]geo.Point{
		"Overlanderstraat 1, Purmerend": {Lat: 52.5, Lon: 4.95},
	}}

	m := Render(context.Background(), testProviders, State{Mode: ModeMap}, gc)

	// count reflects the filtered set, not the geocoded subset
	assert.Equal(t, 3, m.Count)
	require.Len(t, m.Markers, 1)
	assert.Equal(t, "1", m.Markers[0].ID)

	// provider without an address is never geocoded
	assert.Len(t, gc.calls, 2)
}

func TestRenderMapPreservesOrder(t *testing.T) {
	gc := &fakeGeocoder{points: map[string]geo.Point{
		"Overlanderstraat 1, Purmerend": {Lat: 52.5, Lon: 4.95},
		"Wolthuissingel 1, Purmerend":   {Lat: 52.51, Lon: 4.96},
	}}

	m := Render(context.Background(), testProviders, State{Mode: ModeMap}, gc)

	require.Len(t, m.Markers, 2)
	assert.Equal(t, "1", m.Markers[0].ID)
	assert.Equal(t, "2", m.Markers[1].ID)
}

func TestRenderMapGeocoderErrorsAreNotFatal(t *testing.T) {
	gc := &fakeGeocoder{err: errors.New("nominatim down")}

	m := Render(context.Background(), testProviders, State{Mode: ModeMap}, gc)

	assert.Equal(t, 3, m.Count)
	assert.Empty(t, m.Markers)
}

func TestRenderEmptyResult(t *testing.T) {
	st := State{Mode: ModeCards, Filters: directory.Filters{Query: "bestaat niet"}}
	m := Render(context.Background(), testProviders, st, nil)

	assert.True(t, m.Empty)
	assert.Zero(t, m.Count)
	assert.Empty(t, m.Cards)
}

func TestValidMode(t *testing.T) {
	assert.True(t, ValidMode(ModeCards))
	assert.True(t, ValidMode(ModeList))
	assert.True(t, ValidMode(ModeMap))
	assert.False(t, ValidMode("tabel"))
}
