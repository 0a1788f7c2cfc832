// Package directory is the domain core of the zorgkaart: the provider and
// comment model, the category set, the filter engine and the comment
// ordering/identity rules. Everything here is pure and side-effect-free so
// it can be exercised by both the server and the CLI client.
package directory

import (
	"fmt"
	"strings"

	"zorgkaart/internal/common"
)

// Categorieen is the fixed set of provider categories. Order matters: it is
// the order categories are offered in forms and filter chips.
var Categorieen = []string{
	"GGZ",
	"Jeugd GGZ",
	"Verslavingszorg",
	"Maatschappelijk werk",
	"Fysiotherapie",
	"Diëtetiek",
	"Logopedie",
	"Podotherapie",
	"Thuiszorg",
	"Apotheek",
	"Verloskundige",
	"Tandarts",
	"Overig",
}

// Comment is a dated remark on a provider. Comments carry no identifier:
// their identity is positional within the provider's canonical (insertion
// ordered) sequence. Datum is an ISO date string, day granularity.
type Comment struct {
	Tekst  string `json:"tekst"`
	Auteur string `json:"auteur"`
	Datum  string `json:"datum"`
}

// Provider is a single care provider record. ID is assigned by the store on
// creation and stable for the record's lifetime.
type Provider struct {
	ID          string    `json:"id"`
	Naam        string    `json:"naam"`
	Categorie   string    `json:"categorie"`
	Adres       string    `json:"adres,omitempty"`
	Telefoon    string    `json:"telefoon,omitempty"`
	Email       string    `json:"email,omitempty"`
	Website     string    `json:"website,omitempty"`
	Labels      []string  `json:"labels"`
	Opmerkingen []Comment `json:"opmerkingen"`
}

// ValidCategorie reports whether s is one of the fixed category labels.
func ValidCategorie(s string) bool {
	for _, c := range Categorieen {
		if c == s {
			return true
		}
	}
	return false
}

// Validate checks the required provider fields: a non-empty name and a
// known category. Optional contact fields are only trimmed, never rejected.
func Validate(p *Provider) error {
	if strings.TrimSpace(p.Naam) == "" {
		return fmt.Errorf("%w: naam is verplicht", common.ErrorValidation)
	}
	if !ValidCategorie(p.Categorie) {
		return fmt.Errorf("%w: onbekende categorie %q", common.ErrorValidation, p.Categorie)
	}
	return nil
}

// AddLabel appends a trimmed label to labels, rejecting empty strings and
// duplicates. It reports whether the label was added; on rejection the
// original slice is returned unchanged.
func AddLabel(labels []string, label string) ([]string, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return labels, false
	}
	for _, l := range labels {
		if l == label {
			return labels, false
		}
	}
	return append(labels, label), true
}

// RemoveLabel returns labels with index i removed, preserving order.
// An out-of-range index leaves the slice unchanged.
func RemoveLabel(labels []string, i int) []string {
	if i < 0 || i >= len(labels) {
		return labels
	}
	out := make([]string, 0, len(labels)-1)
	out = append(out, labels[:i]...)
	return append(out, labels[i+1:]...)
}
