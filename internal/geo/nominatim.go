// Package geo resolves addresses and free-text place queries to coordinates
// through a Nominatim endpoint, with an optional Redis cache in front of
// address geocoding.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Place is one result of a free-text place search.
type Place struct {
	Name    string `json:"name"`
	Address string `json:"adres"`
	Point   Point  `json:"punt"`
}

// ShortName returns the leading segment of the display name, for compact
// suggestion lists.
func (p Place) ShortName() string {
	if i := strings.Index(p.Name, ","); i > 0 {
		return strings.TrimSpace(p.Name[:i])
	}
	return p.Name
}

// Geocoder turns a stored address into a coordinate. found is false when the
// address cannot be resolved; that is not an error.
type Geocoder interface {
	Geocode(ctx context.Context, adres string) (Point, bool, error)
}

type Config struct {
	BaseURL   string
	Region    string
	Timeout   time.Duration
	UserAgent string
}

// Client queries a Nominatim endpoint. Free-text searches are scoped to the
// configured region first and fall back to a country-wide query when the
// scoped one comes back empty.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient applies defaults and constructs a Client.
func NewClient(cfg Config) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if strings.TrimSpace(cfg.UserAgent) == "" {
		cfg.UserAgent = "zorgkaart/1.0"
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
}

// nominatimResult is the wire shape of one /search hit. Coordinates arrive
// as strings.
type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Address     struct {
		Road        string `json:"road"`
		HouseNumber string `json:"house_number"`
		Postcode    string `json:"postcode"`
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
	} `json:"address"`
}

// Search resolves a free-text place query to at most five places. The query
// is first scoped to the configured region; an empty result widens to the
// whole country.
func (c *Client) Search(ctx context.Context, q string) ([]Place, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []Place{}, nil
	}

	scoped := q
	if c.cfg.Region != "" {
		scoped = fmt.Sprintf("%s, %s, Nederland", q, c.cfg.Region)
	}
	results, err := c.search(ctx, scoped, 5, true)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 && c.cfg.Region != "" {
		results, err = c.search(ctx, q+", Nederland", 5, true)
		if err != nil {
			return nil, err
		}
	}

	places := make([]Place, 0, len(results))
	for _, r := range results {
		pt, err := r.point()
		if err != nil {
			continue
		}
		places = append(places, Place{Name: r.DisplayName, Address: r.formatAddress(), Point: pt})
	}
	return places, nil
}

// Geocode resolves a stored address to a single coordinate.
func (c *Client) Geocode(ctx context.Context, adres string) (Point, bool, error) {
	adres = strings.TrimSpace(adres)
	if adres == "" {
		return Point{}, false, nil
	}

	results, err := c.search(ctx, adres+", Nederland", 1, false)
	if err != nil {
		return Point{}, false, err
	}
	if len(results) == 0 {
		return Point{}, false, nil
	}
	pt, err := results[0].point()
	if err != nil {
		return Point{}, false, err
	}
	return pt, true, nil
}

func (c *Client) search(ctx context.Context, q string, limit int, addressDetails bool) ([]nominatimResult, error) {
	v := url.Values{}
	v.Set("q", q)
	v.Set("format", "json")
	v.Set("limit", strconv.Itoa(limit))
	v.Set("countrycodes", "nl")
	if addressDetails {
		v.Set("addressdetails", "1")
	}

	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/search?" + v.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept-Language", "nl")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim http %d: %s", resp.StatusCode, string(raw))
	}

	var results []nominatimResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, fmt.Errorf("nominatim decode: %w", err)
	}
	return results, nil
}

func (r nominatimResult) point() (Point, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return Point{}, fmt.Errorf("bad lat %q: %w", r.Lat, err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return Point{}, fmt.Errorf("bad lon %q: %w", r.Lon, err)
	}
	return Point{Lat: lat, Lon: lon}, nil
}

// formatAddress builds a compact "street number, postcode place" line from
// the structured address, falling back to the display name.
func (r nominatimResult) formatAddress() string {
	a := r.Address
	street := strings.TrimSpace(a.Road + " " + a.HouseNumber)
	place := a.City
	if place == "" {
		place = a.Town
	}
	if place == "" {
		place = a.Village
	}
	locality := strings.TrimSpace(a.Postcode + " " + place)

	switch {
	case street != "" && locality != "":
		return street + ", " + locality
	case street != "":
		return street
	case locality != "":
		return locality
	default:
		return r.DisplayName
	}
}
