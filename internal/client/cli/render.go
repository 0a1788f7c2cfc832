package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"zorgkaart/internal/directory"
	"zorgkaart/internal/views"
)

// render filters the mirror with the active filters and prints the active
// view. Cards and list are rendered locally; the map projection comes from
// the server, which owns the geocoder. The whole view is buffered and
// emitted as one write, so a snapshot-triggered redraw cannot land in the
// middle of a prompt.
func (a *App) render(ctx context.Context) {
	var buf bytes.Buffer
	a.renderTo(ctx, &buf)
	a.out.Write(buf.Bytes())
}

func (a *App) renderTo(ctx context.Context, w io.Writer) {
	mode := a.currentMode()
	if mode == views.ModeMap {
		a.renderMap(ctx, w)
		return
	}

	filtered := directory.Apply(a.snapshot(), a.currentFilters())
	a.rememberShown(filtered)

	if len(filtered) == 0 {
		fmt.Fprintln(w, "Geen zorgverleners gevonden.")
		return
	}
	fmt.Fprintf(w, "%d zorgverleners gevonden\n", len(filtered))

	switch mode {
	case views.ModeList:
		a.renderList(w, filtered)
	default:
		a.renderCards(w, filtered)
	}
}

// rememberShown records the id behind each listing number, for commands
// that address a provider by number.
func (a *App) rememberShown(providers []directory.Provider) {
	ids := make([]string, len(providers))
	for i, p := range providers {
		ids[i] = p.ID
	}

	a.mu.Lock()
	a.lastShown = ids
	a.mu.Unlock()
}

func (a *App) renderCards(w io.Writer, providers []directory.Provider) {
	for i, p := range providers {
		fmt.Fprintf(w, "\n%2d. %s  [%s]\n", i+1, p.Naam, p.Categorie)
		if p.Adres != "" {
			fmt.Fprintf(w, "    %s\n", p.Adres)
		}
		if p.Telefoon != "" {
			fmt.Fprintf(w, "    tel %s\n", p.Telefoon)
		}
		if len(p.Labels) > 0 {
			fmt.Fprintf(w, "    labels: %s\n", strings.Join(p.Labels, ", "))
		}
		if n := len(p.Opmerkingen); n == 1 {
			fmt.Fprintln(w, "    1 opmerking")
		} else if n > 1 {
			fmt.Fprintf(w, "    %d opmerkingen\n", n)
		}
	}
}

func (a *App) renderList(w io.Writer, providers []directory.Provider) {
	for i, p := range providers {
		straat := p.Adres
		if j := strings.Index(straat, ","); j >= 0 {
			straat = strings.TrimSpace(straat[:j])
		}
		fmt.Fprintf(w, "%2d. %-35s %-20s %s\n", i+1, p.Naam, p.Categorie, straat)
	}
}

// renderMap fetches the server-rendered map projection and prints the
// markers with their coordinates.
func (a *App) renderMap(ctx context.Context, w io.Writer) {
	model, err := a.api.MapView(ctx, a.currentFilters())
	if err != nil {
		fmt.Fprintln(w, "Kaart ophalen mislukt:", err)
		return
	}
	if model.Empty {
		fmt.Fprintln(w, "Geen zorgverleners gevonden.")
		a.rememberShown(nil)
		return
	}
	fmt.Fprintf(w, "%d zorgverleners gevonden, %d op de kaart\n", model.Count, len(model.Markers))

	ids := make([]string, len(model.Markers))
	for i, m := range model.Markers {
		ids[i] = m.ID
		fmt.Fprintf(w, "%2d. %-35s (%.5f, %.5f)  %s\n", i+1, m.Naam, m.Punt.Lat, m.Punt.Lon, m.Adres)
	}

	a.mu.Lock()
	a.lastShown = ids
	a.mu.Unlock()
}

func (a *App) printCategorieen() {
	for _, c := range directory.Categorieen {
		fmt.Fprintln(a.out, " -", c)
	}
}

func validCategorie(c string) bool {
	return directory.ValidCategorie(c)
}
