package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zorgkaart/internal/common"
)

func TestValidate(t *testing.T) {
	p := &Provider{Naam: "Dr. Jansen", Categorie: "Tandarts"}
	assert.NoError(t, Validate(p))

	assert.ErrorIs(t, Validate(&Provider{Naam: "  ", Categorie: "Tandarts"}), common.ErrorValidation)
	assert.ErrorIs(t, Validate(&Provider{Naam: "X", Categorie: "Kapper"}), common.ErrorValidation)
}

func TestValidCategorie(t *testing.T) {
	assert.Len(t, Categorieen, 13)
	for _, c := range Categorieen {
		assert.True(t, ValidCategorie(c))
	}
	assert.False(t, ValidCategorie("Tandarts "))
	assert.False(t, ValidCategorie(""))
}

func TestAddLabelRejectsDuplicate(t *testing.T) {
	labels := []string{"Rolstoeltoegankelijk"}

	got, added := AddLabel(labels, "Rolstoeltoegankelijk")
	assert.False(t, added)
	assert.Equal(t, []string{"Rolstoeltoegankelijk"}, got)
}

func TestAddLabel(t *testing.T) {
	labels, added := AddLabel(nil, "  Avondopenstelling ")
	assert.True(t, added)
	assert.Equal(t, []string{"Avondopenstelling"}, labels)

	labels, added = AddLabel(labels, "Rolstoeltoegankelijk")
	assert.True(t, added)
	// insertion order preserved
	assert.Equal(t, []string{"Avondopenstelling", "Rolstoeltoegankelijk"}, labels)

	_, added = AddLabel(labels, "   ")
	assert.False(t, added)
}

func TestRemoveLabel(t *testing.T) {
	labels := []string{"a", "b", "c"}
	assert.Equal(t, []string{"a", "c"}, RemoveLabel(labels, 1))
	assert.Equal(t, labels, RemoveLabel(labels, 3))
	assert.Equal(t, labels, RemoveLabel(labels, -1))
}
