package cli

import (
	"context"
	"fmt"
	"strings"

	"zorgkaart/internal/directory"
)

// showDetail prints one provider in full: contact details, labels, and the
// comments in display order (newest first), numbered from 1. Those numbers
// are what verwijderopmerking accepts.
func (a *App) showDetail(ctx context.Context, id string) {
	p, ok := a.findProvider(id)
	if !ok {
		fmt.Fprintln(a.out, "Zorgverlener niet gevonden.")
		return
	}

	fmt.Fprintf(a.out, "\n%s  [%s]\n", p.Naam, p.Categorie)
	if p.Adres != "" {
		fmt.Fprintln(a.out, "adres:   ", p.Adres)
	}
	if p.Telefoon != "" {
		fmt.Fprintln(a.out, "telefoon:", p.Telefoon)
	}
	if p.Email != "" {
		fmt.Fprintln(a.out, "e-mail:  ", p.Email)
	}
	if p.Website != "" {
		fmt.Fprintln(a.out, "website: ", p.Website)
	}
	if len(p.Labels) > 0 {
		fmt.Fprintln(a.out, "labels:  ", strings.Join(p.Labels, ", "))
	}

	opmerkingen := directory.SortedForDisplay(p.Opmerkingen)
	if len(opmerkingen) == 0 {
		fmt.Fprintln(a.out, "\nNog geen opmerkingen.")
		return
	}
	fmt.Fprintln(a.out, "\nOpmerkingen:")
	for i, o := range opmerkingen {
		fmt.Fprintf(a.out, "%2d. %s (%s, %s)\n", i+1, o.Tekst, o.Auteur, directory.FormatDatum(o.Datum))
	}
}

func (a *App) findProvider(id string) (directory.Provider, bool) {
	for _, p := range a.snapshot() {
		if p.ID == id {
			return p, true
		}
	}
	return directory.Provider{}, false
}
