package directory

import "strings"

// Filters is the orthogonal filter state: an exact-match category (empty
// means all) and a free-text query (empty means all). Both active at once
// combine with logical AND.
type Filters struct {
	Categorie string `json:"categorie"`
	Query     string `json:"query"`
}

// Apply returns the subsequence of providers satisfying the filters, in the
// input order. It is a pure function: identical inputs yield an identical
// result, and applying the same filters twice is a no-op.
func Apply(providers []Provider, f Filters) []Provider {
	q := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if f.Categorie != "" && p.Categorie != f.Categorie {
			continue
		}
		if q != "" && !matchesQuery(&p, q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchesQuery tests q as a case-insensitive substring against each
// searchable field independently: name, category, address, the labels
// joined by a space, and the comment texts joined by a space.
func matchesQuery(p *Provider, q string) bool {
	fields := []string{
		p.Naam,
		p.Categorie,
		p.Adres,
		strings.Join(p.Labels, " "),
		joinCommentTexts(p.Opmerkingen),
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func joinCommentTexts(opmerkingen []Comment) string {
	if len(opmerkingen) == 0 {
		return ""
	}
	texts := make([]string, len(opmerkingen))
	for i, o := range opmerkingen {
		texts[i] = o.Tekst
	}
	return strings.Join(texts, " ")
}
