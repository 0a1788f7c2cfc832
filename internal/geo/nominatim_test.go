package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const purmerendHit = `[{
	"display_name": "Overlanderstraat 1, Purmerend, Noord-Holland, Nederland",
	"lat": "52.5053", "lon": "4.9592",
	"address": {"road": "Overlanderstraat", "house_number": "1", "postcode": "1441 AA", "city": "Purmerend"}
}]`

func TestSearchScopedToRegion(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("q"))
		assert.Equal(t, "nl", r.URL.Query().Get("countrycodes"))
		w.Write([]byte(purmerendHit))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Region: "Purmerend"})
	places, err := c.Search(context.Background(), "Overlanderstraat")
	require.NoError(t, err)

	require.Len(t, queries, 1)
	assert.Equal(t, "Overlanderstraat, Purmerend, Nederland", queries[0])
	require.Len(t, places, 1)
	assert.Equal(t, "Overlanderstraat 1, 1441 AA Purmerend", places[0].Address)
	assert.Equal(t, "Overlanderstraat 1", places[0].ShortName())
	assert.InDelta(t, 52.5053, places[0].Point.Lat, 1e-6)
}

func TestSearchFallsBackCountryWide(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("q"))
		if len(queries) == 1 {
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(purmerendHit))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Region: "Purmerend"})
	places, err := c.Search(context.Background(), "Domplein")
	require.NoError(t, err)

	require.Len(t, queries, 2)
	assert.Equal(t, "Domplein, Purmerend, Nederland", queries[0])
	assert.Equal(t, "Domplein, Nederland", queries[1])
	require.Len(t, places, 1)
}

func TestSearchEmptyQuery(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://unused.invalid"})
	places, err := c.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Write([]byte(purmerendHit))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	pt, found, err := c.Geocode(context.Background(), "Overlanderstraat 1, Purmerend")
	require.NoError(t, err)
	assert.True(t, found)
	assert.InDelta(t, 4.9592, pt.Lon, 1e-6)
}

func TestGeocodeNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, found, err := c.Geocode(context.Background(), "Nergensstraat 999")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, _, err := c.Geocode(context.Background(), "Overlanderstraat 1")
	assert.Error(t, err)
}
