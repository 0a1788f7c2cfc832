package providers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zorgkaart/internal/common"
	"zorgkaart/internal/directory"
)

var providerCols = []string{"id", "naam", "categorie", "adres", "telefoon", "email", "website", "labels", "opmerkingen"}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(providerCols).
		AddRow("id-1", "Buurtzorg Noord", "Thuiszorg", "Overlanderstraat 1", "", "", "",
			mustJSON(t, []string{"wijkverpleging"}), mustJSON(t, []directory.Comment{})).
		AddRow("id-2", "De Zorgcirkel", "Ouderenzorg", "", "", "", "",
			mustJSON(t, []string{}), mustJSON(t, []directory.Comment{}))

	mock.ExpectQuery("SELECT (.+) FROM providers ORDER BY naam, id").WillReturnRows(rows)

	r := NewPostgresRepository(db)
	result, err := r.List(context.Background())
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.Equal(t, "Buurtzorg Noord", result[0].Naam)
	assert.Equal(t, []string{"wijkverpleging"}, result[0].Labels)
	assert.Empty(t, result[1].Labels)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM providers WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(providerCols))

	r := NewPostgresRepository(db)
	_, err = r.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAssignsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO providers").
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := NewPostgresRepository(db)
	p, err := r.Create(context.Background(), &directory.Provider{
		Naam:      "Buurtzorg Noord",
		Categorie: "Thuiszorg",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE providers").
		WillReturnResult(sqlmock.NewResult(0, 0))

	r := NewPostgresRepository(db)
	err = r.Update(context.Background(), &directory.Provider{ID: "missing", Naam: "X", Categorie: "Thuiszorg"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM providers WHERE id").
		WithArgs("id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := NewPostgresRepository(db)
	assert.NoError(t, r.Delete(context.Background(), "id-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOpmerkingen(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	opmerkingen := []directory.Comment{
		{Tekst: "Goede ervaring", Auteur: "Anoniem", Datum: "2024-03-01"},
	}
	mock.ExpectExec("UPDATE providers SET opmerkingen").
		WithArgs("id-1", mustJSON(t, opmerkingen)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := NewPostgresRepository(db)
	require.NoError(t, r.UpdateOpmerkingen(context.Background(), "id-1", opmerkingen))
	assert.NoError(t, mock.ExpectationsWereMet())
}
