// Package views projects a filtered provider list into one of the three
// presentation shapes: cards, list rows or map markers. The projection is a
// pure function of the providers and the view state, except for the map,
// which needs a geocoder.
package views

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"zorgkaart/internal/directory"
	"zorgkaart/internal/geo"
)

// Mode selects the presentation shape.
type Mode string

const (
	ModeCards Mode = "cards"
	ModeList  Mode = "list"
	ModeMap   Mode = "map"
)

// ValidMode reports whether m is one of the three view modes.
func ValidMode(m Mode) bool {
	return m == ModeCards || m == ModeList || m == ModeMap
}

// State is the client-side view state: the active mode plus the filters
// applied before projection.
type State struct {
	Mode    Mode
	Filters directory.Filters
}

// Card is the cards-view projection of one provider.
type Card struct {
	ID          string              `json:"id"`
	Naam        string              `json:"naam"`
	Categorie   string              `json:"categorie"`
	Adres       string              `json:"adres,omitempty"`
	Telefoon    string              `json:"telefoon,omitempty"`
	Email       string              `json:"email,omitempty"`
	Website     string              `json:"website,omitempty"`
	Labels      []string            `json:"labels"`
	Opmerkingen []directory.Comment `json:"opmerkingen"`
}

// Row is the compact list-view projection: name, category and the street
// part of the address.
type Row struct {
	ID        string `json:"id"`
	Naam      string `json:"naam"`
	Categorie string `json:"categorie"`
	Straat    string `json:"straat,omitempty"`
}

// Marker is one geocoded pin on the map view.
type Marker struct {
	ID    string    `json:"id"`
	Naam  string    `json:"naam"`
	Punt  geo.Point `json:"punt"`
	Adres string    `json:"adres"`
}

// Model is the rendered result for one view state.
type Model struct {
	Mode    Mode     `json:"mode"`
	Count   int      `json:"count"`
	Empty   bool     `json:"empty"`
	Cards   []Card   `json:"cards,omitempty"`
	Rows    []Row    `json:"rows,omitempty"`
	Markers []Marker `json:"markers,omitempty"`
}

// geocodeParallelism bounds concurrent geocoder calls during a map render.
const geocodeParallelism = 4

// Render filters providers with the state's filters and projects the result
// into the state's mode. Count and Empty describe the filtered set, so the
// map view reports providers found even when none of them geocode.
func Render(ctx context.Context, providers []directory.Provider, st State, gc geo.Geocoder) Model {
	filtered := directory.Apply(providers, st.Filters)
	m := Model{Mode: st.Mode, Count: len(filtered), Empty: len(filtered) == 0}

	switch st.Mode {
	case ModeList:
		m.Rows = renderRows(filtered)
	case ModeMap:
		m.Markers = renderMarkers(ctx, filtered, gc)
	default:
		m.Cards = renderCards(filtered)
	}
	return m
}

func renderCards(providers []directory.Provider) []Card {
	cards := make([]Card, 0, len(providers))
	for _, p := range providers {
		cards = append(cards, Card{
			ID:          p.ID,
			Naam:        p.Naam,
			Categorie:   p.Categorie,
			Adres:       p.Adres,
			Telefoon:    p.Telefoon,
			Email:       p.Email,
			Website:     p.Website,
			Labels:      p.Labels,
			Opmerkingen: directory.SortedForDisplay(p.Opmerkingen),
		})
	}
	return cards
}

func renderRows(providers []directory.Provider) []Row {
	rows := make([]Row, 0, len(providers))
	for _, p := range providers {
		rows = append(rows, Row{
			ID:        p.ID,
			Naam:      p.Naam,
			Categorie: p.Categorie,
			Straat:    straat(p.Adres),
		})
	}
	return rows
}

// renderMarkers geocodes the filtered providers and keeps the ones that
// resolve, preserving list order. Every render starts from an empty slice;
// markers for providers no longer in the filtered set cannot survive.
// Geocoder failures skip the provider rather than failing the view.
func renderMarkers(ctx context.Context, providers []directory.Provider, gc geo.Geocoder) []Marker {
	if gc == nil {
		return []Marker{}
	}

	resolved := make([]*Marker, len(providers))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(geocodeParallelism)

	for i, p := range providers {
		if p.Adres == "" {
			continue
		}
		g.Go(func() error {
			pt, found, err := gc.Geocode(ctx, p.Adres)
			if err != nil || !found {
				return nil
			}
			resolved[i] = &Marker{ID: p.ID, Naam: p.Naam, Punt: pt, Adres: p.Adres}
			return nil
		})
	}
	_ = g.Wait()

	markers := make([]Marker, 0, len(providers))
	for _, m := range resolved {
		if m != nil {
			markers = append(markers, *m)
		}
	}
	return markers
}

// straat returns the part of the address before the first comma.
func straat(adres string) string {
	if i := strings.Index(adres, ","); i >= 0 {
		return strings.TrimSpace(adres[:i])
	}
	return strings.TrimSpace(adres)
}
