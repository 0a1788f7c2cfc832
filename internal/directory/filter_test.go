package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProviders() []Provider {
	return []Provider{
		{ID: "1", Naam: "Apotheek De Waag", Categorie: "Apotheek", Adres: "Koemarkt 1, Purmerend"},
		{ID: "2", Naam: "Buurtzorg Noord", Categorie: "Thuiszorg"},
		{ID: "3", Naam: "Dr. Jansen", Categorie: "Tandarts", Labels: []string{"Rolstoeltoegankelijk"}},
		{ID: "4", Naam: "Praktijk De Brug", Categorie: "GGZ",
			Opmerkingen: []Comment{{Tekst: "Lange wachtlijst", Auteur: "Anoniem", Datum: "2024-01-01"}}},
	}
}

func ids(ps []Provider) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestApplyNoFilters(t *testing.T) {
	ps := testProviders()
	got := Apply(ps, Filters{})
	// full input collection, identical ordering and count
	assert.Equal(t, ids(ps), ids(got))
}

func TestApplyCategory(t *testing.T) {
	got := Apply(testProviders(), Filters{Categorie: "Thuiszorg"})
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestApplyQueryMatchesName(t *testing.T) {
	// "zorg" hits "Buurtzorg Noord" via the name and provider 2's
	// category; provider 4 does not contain it anywhere.
	got := Apply(testProviders(), Filters{Query: "zorg"})
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestApplyQueryCaseInsensitive(t *testing.T) {
	got := Apply(testProviders(), Filters{Query: "JANSEN"})
	assert.Equal(t, []string{"3"}, ids(got))
}

func TestApplyQueryMatchesEachFieldIndependently(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"address", "koemarkt", []string{"1"}},
		{"category", "tandarts", []string{"3"}},
		{"label", "rolstoel", []string{"3"}},
		{"comment text", "wachtlijst", []string{"4"}},
		{"no match", "fysiotherapie", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(testProviders(), Filters{Query: tt.query})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApplyCombinesWithAnd(t *testing.T) {
	ps := testProviders()
	// query alone matches 2; category alone matches 2; together still 2
	got := Apply(ps, Filters{Categorie: "Thuiszorg", Query: "noord"})
	assert.Equal(t, []string{"2"}, ids(got))

	// AND of disjoint predicates is empty
	got = Apply(ps, Filters{Categorie: "Tandarts", Query: "noord"})
	assert.Empty(t, got)
}

func TestApplyIdempotent(t *testing.T) {
	f := Filters{Categorie: "GGZ", Query: "wachtlijst"}
	once := Apply(testProviders(), f)
	twice := Apply(once, f)
	assert.Equal(t, once, twice)
}

func TestApplyPreservesOrder(t *testing.T) {
	ps := []Provider{
		{ID: "b", Naam: "Zorg B", Categorie: "Thuiszorg"},
		{ID: "a", Naam: "Zorg A", Categorie: "Thuiszorg"},
		{ID: "c", Naam: "Zorg C", Categorie: "Thuiszorg"},
	}
	got := Apply(ps, Filters{Query: "zorg"})
	assert.Equal(t, []string{"b", "a", "c"}, ids(got))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	ps := testProviders()
	before := ids(ps)
	_ = Apply(ps, Filters{Categorie: "GGZ"})
	assert.Equal(t, before, ids(ps))
}
