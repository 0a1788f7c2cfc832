package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"zorgkaart/internal/views"
)

// root runs the read-eval-print loop. Commands address providers by the
// numbers of the last rendered listing.
func (a *App) root(ctx context.Context) {
	fmt.Fprintln(a.out, "Sociale kaart Purmerend (typ 'help' voor de commando's)")
	a.render(ctx)

	for {
		fmt.Fprint(a.out, a.prompt())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			a.render(ctx)
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.printHelp()

		case "zoek":
			a.setQuery(ctx, strings.Join(args, " "))

		case "wis":
			a.clearFilters()
			a.render(ctx)

		case "cats":
			a.printCategorieen()

		case "cat":
			a.cmdCategorie(ctx, strings.Join(args, " "))

		case "view":
			a.cmdView(ctx, args)

		case "toon":
			a.render(ctx)

		case "open":
			a.withNumber(args, func(id string) { a.showDetail(ctx, id) })

		case "nieuw":
			a.cmdNieuw(ctx)

		case "bewerk":
			a.withNumber(args, func(id string) { a.cmdBewerk(ctx, id) })

		case "verwijder":
			a.withNumber(args, func(id string) { a.cmdVerwijder(ctx, id) })

		case "opmerking":
			a.withNumber(args, func(id string) { a.cmdOpmerking(ctx, id) })

		case "verwijderopmerking":
			a.cmdVerwijderOpmerking(ctx, args)

		case "plek":
			a.cmdPlek(ctx, strings.Join(args, " "))

		case "logout":
			a.api.Logout()
			if err := a.login(ctx); err != nil {
				return
			}

		case "exit", "quit":
			fmt.Fprintln(a.out, "Tot ziens!")
			return

		default:
			fmt.Fprintln(a.out, "Onbekend commando:", cmd)
		}
	}
}

func (a *App) prompt() string {
	f := a.currentFilters()
	status := string(a.currentMode())
	if f.Categorie != "" {
		status += " | " + f.Categorie
	}
	if f.Query != "" {
		status += " | \"" + f.Query + "\""
	}
	return fmt.Sprintf("zorgkaart (%s)> ", status)
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, `Commando's:
  zoek <tekst>                   filter op zoektekst
  wis                            alle filters wissen
  cat <categorie|alles>          filter op categorie
  cats                           toon de categorieën
  view <cards|list|map>          wissel van weergave
  toon                           huidige weergave opnieuw tekenen
  open <nr>                      details van een zorgverlener
  nieuw                          zorgverlener toevoegen
  bewerk <nr>                    zorgverlener bewerken
  verwijder <nr>                 zorgverlener verwijderen
  opmerking <nr>                 opmerking plaatsen
  verwijderopmerking <nr> <on>   opmerking <on> verwijderen
  plek <tekst>                   adres opzoeken
  logout                         opnieuw inloggen
  exit                           afsluiten`)
}

// withNumber resolves a "<nr>" argument against the last rendered listing
// and calls fn with the provider id.
func (a *App) withNumber(args []string, fn func(id string)) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Geef een nummer uit de lijst op.")
		return
	}
	id, ok := a.resolveNumber(args[0])
	if !ok {
		fmt.Fprintln(a.out, "Onbekend nummer:", args[0])
		return
	}
	fn(id)
}

func (a *App) resolveNumber(arg string) (string, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return "", false
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if n < 1 || n > len(a.lastShown) {
		return "", false
	}
	return a.lastShown[n-1], true
}

func (a *App) cmdCategorie(ctx context.Context, categorie string) {
	if categorie == "alles" {
		categorie = ""
	}
	if categorie != "" && !validCategorie(categorie) {
		fmt.Fprintln(a.out, "Onbekende categorie. Typ 'cats' voor de lijst.")
		return
	}
	a.setCategorie(categorie)
	a.render(ctx)
}

func (a *App) cmdView(ctx context.Context, args []string) {
	if len(args) == 0 || !views.ValidMode(views.Mode(args[0])) {
		fmt.Fprintln(a.out, "Gebruik: view <cards|list|map>")
		return
	}
	a.setMode(views.Mode(args[0]))
	a.render(ctx)
}

func (a *App) cmdVerwijderOpmerking(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Gebruik: verwijderopmerking <nr> <opmerking-nr>")
		return
	}
	id, ok := a.resolveNumber(args[0])
	if !ok {
		fmt.Fprintln(a.out, "Onbekend nummer:", args[0])
		return
	}
	on, err := strconv.Atoi(args[1])
	if err != nil || on < 1 {
		fmt.Fprintln(a.out, "Ongeldig opmerkingnummer:", args[1])
		return
	}
	if !a.confirm("Opmerking verwijderen?") {
		return
	}
	// comments are numbered from 1 in the detail view, the API counts from 0
	if err := a.api.DeleteOpmerking(ctx, id, on-1); err != nil {
		fmt.Fprintln(a.out, "Verwijderen mislukt:", err)
		return
	}
	fmt.Fprintln(a.out, "Opmerking verwijderd.")
}

func (a *App) cmdPlek(ctx context.Context, q string) {
	if len([]rune(strings.TrimSpace(q))) < 3 {
		fmt.Fprintln(a.out, "Typ minstens drie tekens.")
		return
	}
	places, err := a.api.SearchPlaces(ctx, q)
	if err != nil {
		fmt.Fprintln(a.out, "Zoeken mislukt:", err)
		return
	}
	if len(places) == 0 {
		fmt.Fprintln(a.out, "Geen adressen gevonden.")
		return
	}
	for i, p := range places {
		fmt.Fprintf(a.out, "%2d. %s\n", i+1, p.Address)
	}
}
