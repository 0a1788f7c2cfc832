package directory

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"zorgkaart/internal/common"
)

// AnoniemeAuteur is the author shown for comments submitted without a name.
const AnoniemeAuteur = "Anoniem"

// datumLayout is the stored date format. ISO dates compare correctly as
// plain strings, which keeps the display sort free of time parsing.
const datumLayout = "2006-01-02"

// NewComment builds a comment dated at now (day granularity). The text is
// required; an empty author defaults to AnoniemeAuteur.
func NewComment(tekst, auteur string, now time.Time) (Comment, error) {
	tekst = strings.TrimSpace(tekst)
	if tekst == "" {
		return Comment{}, fmt.Errorf("%w: tekst is verplicht", common.ErrorValidation)
	}
	auteur = strings.TrimSpace(auteur)
	if auteur == "" {
		auteur = AnoniemeAuteur
	}
	return Comment{Tekst: tekst, Auteur: auteur, Datum: now.Format(datumLayout)}, nil
}

// SortedForDisplay returns a copy of the canonical sequence in display
// order: newest date first, ties keeping their canonical relative order.
func SortedForDisplay(opmerkingen []Comment) []Comment {
	sorted := make([]Comment, len(opmerkingen))
	copy(sorted, opmerkingen)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Datum > sorted[j].Datum
	})
	return sorted
}

// ResolveDisplayIndex maps an index into the display ordering back to the
// index of that comment in the canonical sequence, by matching the
// (tekst, datum, auteur) triple. When two comments are fully identical the
// first canonical occurrence wins; without comment identifiers the
// duplicate is indistinguishable.
func ResolveDisplayIndex(canonical []Comment, displayIndex int) (int, error) {
	sorted := SortedForDisplay(canonical)
	if displayIndex < 0 || displayIndex >= len(sorted) {
		return 0, fmt.Errorf("%w: index %d", common.ErrorUnknownComment, displayIndex)
	}
	target := sorted[displayIndex]
	for i, o := range canonical {
		if o.Tekst == target.Tekst && o.Datum == target.Datum && o.Auteur == target.Auteur {
			return i, nil
		}
	}
	// unreachable: the display sequence is a permutation of canonical
	return 0, common.ErrorUnknownComment
}

// RemoveComment returns a new sequence with canonical index i excluded and
// every other comment in its original relative order.
func RemoveComment(opmerkingen []Comment, i int) ([]Comment, error) {
	if i < 0 || i >= len(opmerkingen) {
		return nil, fmt.Errorf("%w: index %d", common.ErrorUnknownComment, i)
	}
	out := make([]Comment, 0, len(opmerkingen)-1)
	out = append(out, opmerkingen[:i]...)
	return append(out, opmerkingen[i+1:]...), nil
}

// dutch month abbreviations, indexed by time.Month-1
var maanden = [...]string{"jan", "feb", "mrt", "apr", "mei", "jun", "jul", "aug", "sep", "okt", "nov", "dec"}

// FormatDatum renders a stored ISO date for display, e.g. "1 mrt 2024".
// Unparseable input is returned as-is.
func FormatDatum(datum string) string {
	t, err := time.Parse(datumLayout, datum)
	if err != nil {
		return datum
	}
	return fmt.Sprintf("%d %s %d", t.Day(), maanden[t.Month()-1], t.Year())
}
