package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"zorgkaart/internal/directory"
)

// cmdNieuw walks through the new-provider form and submits it. The mutation
// is fire-and-forget: the updated collection arrives over the snapshot
// stream.
func (a *App) cmdNieuw(ctx context.Context) {
	p, err := a.providerForm(ctx, &directory.Provider{})
	if err != nil {
		fmt.Fprintln(a.out, "Afgebroken:", err)
		return
	}

	if _, err := a.api.CreateProvider(ctx, p); err != nil {
		fmt.Fprintln(a.out, "Toevoegen mislukt:", err)
		return
	}
	fmt.Fprintln(a.out, "Zorgverlener toegevoegd.")
}

// cmdBewerk edits an existing provider, offering current values as
// defaults. Comments are untouched by edits.
func (a *App) cmdBewerk(ctx context.Context, id string) {
	current, ok := a.findProvider(id)
	if !ok {
		fmt.Fprintln(a.out, "Zorgverlener niet gevonden.")
		return
	}

	p, err := a.providerForm(ctx, &current)
	if err != nil {
		fmt.Fprintln(a.out, "Afgebroken:", err)
		return
	}
	p.ID = id

	if err := a.api.UpdateProvider(ctx, p); err != nil {
		fmt.Fprintln(a.out, "Bewerken mislukt:", err)
		return
	}
	fmt.Fprintln(a.out, "Zorgverlener bijgewerkt.")
}

func (a *App) cmdVerwijder(ctx context.Context, id string) {
	p, ok := a.findProvider(id)
	if !ok {
		fmt.Fprintln(a.out, "Zorgverlener niet gevonden.")
		return
	}
	if !a.confirm(fmt.Sprintf("%q en alle opmerkingen verwijderen?", p.Naam)) {
		return
	}

	if err := a.api.DeleteProvider(ctx, id); err != nil {
		fmt.Fprintln(a.out, "Verwijderen mislukt:", err)
		return
	}
	fmt.Fprintln(a.out, "Zorgverlener verwijderd.")
}

func (a *App) cmdOpmerking(ctx context.Context, id string) {
	tekst, err := GetSimpleText(a.reader, "Opmerking", a.out)
	if err != nil {
		return
	}
	if strings.TrimSpace(tekst) == "" {
		fmt.Fprintln(a.out, "Een opmerking mag niet leeg zijn.")
		return
	}
	auteur, err := GetSimpleText(a.reader, "Naam (leeg = anoniem)", a.out)
	if err != nil {
		return
	}

	if err := a.api.AddOpmerking(ctx, id, tekst, auteur); err != nil {
		fmt.Fprintln(a.out, "Opmerking plaatsen mislukt:", err)
		return
	}
	fmt.Fprintln(a.out, "Opmerking geplaatst.")
}

// providerForm prompts for every provider field. Defaults come from the
// given provider; pressing Enter keeps a default.
func (a *App) providerForm(ctx context.Context, defaults *directory.Provider) (*directory.Provider, error) {
	p := &directory.Provider{Opmerkingen: defaults.Opmerkingen}

	naam, err := a.textWithDefault("Naam", defaults.Naam)
	if err != nil {
		return nil, err
	}
	p.Naam = naam

	categorie, err := a.pickCategorie(defaults.Categorie)
	if err != nil {
		return nil, err
	}
	p.Categorie = categorie

	adres, err := a.adresField(ctx, defaults.Adres)
	if err != nil {
		return nil, err
	}
	p.Adres = adres

	if p.Telefoon, err = a.textWithDefault("Telefoon", defaults.Telefoon); err != nil {
		return nil, err
	}
	if p.Email, err = a.textWithDefault("E-mail", defaults.Email); err != nil {
		return nil, err
	}
	if p.Website, err = a.textWithDefault("Website", defaults.Website); err != nil {
		return nil, err
	}

	labels, err := a.labelLoop(defaults.Labels)
	if err != nil {
		return nil, err
	}
	p.Labels = labels

	return p, nil
}

func (a *App) textWithDefault(prompt, def string) (string, error) {
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, def)
	}
	v, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}

// pickCategorie shows the numbered category list and reads a choice, either
// as a number or as the literal label.
func (a *App) pickCategorie(def string) (string, error) {
	for i, c := range directory.Categorieen {
		fmt.Fprintf(a.out, "%2d. %s\n", i+1, c)
	}
	prompt := "Categorie (nummer of naam)"
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, def)
	}

	for {
		v, err := GetSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return "", err
		}
		if v == "" && def != "" {
			return def, nil
		}
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= len(directory.Categorieen) {
			return directory.Categorieen[n-1], nil
		}
		if directory.ValidCategorie(v) {
			return v, nil
		}
		fmt.Fprintln(a.out, "Onbekende categorie.")
	}
}

// adresField reads an address, offering place-lookup suggestions when the
// input starts with "?", e.g. "?overlander".
func (a *App) adresField(ctx context.Context, def string) (string, error) {
	for {
		v, err := a.textWithDefault("Adres (typ ?zoektekst om op te zoeken)", def)
		if err != nil {
			return "", err
		}
		if !strings.HasPrefix(v, "?") {
			return v, nil
		}

		places, err := a.api.SearchPlaces(ctx, strings.TrimPrefix(v, "?"))
		if err != nil || len(places) == 0 {
			fmt.Fprintln(a.out, "Geen adressen gevonden.")
			continue
		}
		for i, pl := range places {
			fmt.Fprintf(a.out, "%2d. %s\n", i+1, pl.Address)
		}
		choice, err := GetSimpleText(a.reader, "Kies een nummer (leeg = opnieuw)", a.out)
		if err != nil {
			return "", err
		}
		if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(places) {
			return places[n-1].Address, nil
		}
	}
}

// labelLoop collects labels one per line until an empty line. Duplicates
// are rejected with a message, matching the server's rule.
func (a *App) labelLoop(defaults []string) ([]string, error) {
	labels := append([]string{}, defaults...)
	if len(labels) > 0 {
		fmt.Fprintln(a.out, "Huidige labels:", strings.Join(labels, ", "))
	}
	fmt.Fprintln(a.out, "Labels toevoegen, één per regel (lege regel = klaar, -label verwijdert):")

	for {
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return labels, nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return labels, nil
		}

		if rest, ok := strings.CutPrefix(line, "-"); ok {
			removed := false
			for i, l := range labels {
				if l == strings.TrimSpace(rest) {
					labels = directory.RemoveLabel(labels, i)
					removed = true
					break
				}
			}
			if !removed {
				fmt.Fprintln(a.out, "Onbekend label.")
			}
			continue
		}

		next, ok := directory.AddLabel(labels, line)
		if !ok {
			fmt.Fprintln(a.out, "Label bestaat al of is leeg.")
			continue
		}
		labels = next
	}
}
