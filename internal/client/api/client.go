// Package api is the CLI's HTTP client for the zorgkaart server: login,
// provider and comment mutations, place lookups and the SSE snapshot stream.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"zorgkaart/internal/common"
	"zorgkaart/internal/directory"
	"zorgkaart/internal/geo"
	"zorgkaart/internal/views"
)

// Client talks JSON to the server. The session token obtained by Login is
// attached to every subsequent request.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient constructs a Client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Login exchanges the shared access password for a session token and stores
// it for subsequent requests.
func (c *Client) Login(ctx context.Context, wachtwoord string) error {
	var resp struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/login", map[string]string{"wachtwoord": wachtwoord}, &resp)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.token = resp.Token
	c.mu.Unlock()
	return nil
}

// Logout drops the stored session token. Sessions are stateless server-side;
// forgetting the token is all there is to it.
func (c *Client) Logout() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// LoggedIn reports whether a session token is held.
func (c *Client) LoggedIn() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// CreateProvider sends a new provider and returns it with its assigned id.
func (c *Client) CreateProvider(ctx context.Context, p *directory.Provider) (*directory.Provider, error) {
	var created directory.Provider
	if err := c.do(ctx, http.MethodPost, "/api/providers", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProvider overwrites the provider's fields (comments excluded).
func (c *Client) UpdateProvider(ctx context.Context, p *directory.Provider) error {
	return c.do(ctx, http.MethodPut, "/api/providers/"+url.PathEscape(p.ID), p, nil)
}

// DeleteProvider removes a provider and its comments.
func (c *Client) DeleteProvider(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/providers/"+url.PathEscape(id), nil, nil)
}

// AddOpmerking appends a comment. An empty auteur is stored as anonymous.
func (c *Client) AddOpmerking(ctx context.Context, id, tekst, auteur string) error {
	body := map[string]string{"tekst": tekst, "auteur": auteur}
	return c.do(ctx, http.MethodPost, "/api/providers/"+url.PathEscape(id)+"/opmerkingen", body, nil)
}

// DeleteOpmerking removes the comment at the given display position.
func (c *Client) DeleteOpmerking(ctx context.Context, id string, displayIndex int) error {
	path := "/api/providers/" + url.PathEscape(id) + "/opmerkingen/" + strconv.Itoa(displayIndex)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// SearchPlaces resolves a free-text place query to address suggestions.
func (c *Client) SearchPlaces(ctx context.Context, q string) ([]geo.Place, error) {
	var resp struct {
		Places []geo.Place `json:"places"`
	}
	path := "/api/places?q=" + url.QueryEscape(q)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Places, nil
}

// MapView asks the server to render the map projection, which carries the
// geocoded markers the client cannot compute itself.
func (c *Client) MapView(ctx context.Context, f directory.Filters) (*views.Model, error) {
	v := url.Values{}
	v.Set("mode", string(views.ModeMap))
	if f.Categorie != "" {
		v.Set("categorie", f.Categorie)
	}
	if f.Query != "" {
		v.Set("q", f.Query)
	}

	var model views.Model
	if err := c.do(ctx, http.MethodGet, "/api/views?"+v.Encode(), nil, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// errorEnvelope mirrors the server's error body.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// do sends one JSON request and decodes the response into out (when out is
// non-nil). Server errors surface as the server's message; a 401 maps onto
// common.ErrorUnauthorized so callers can trigger a re-login.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusUnauthorized {
			return common.ErrorUnauthorized
		}
		var env errorEnvelope
		if err := json.Unmarshal(raw, &env); err == nil && env.Error.Message != "" {
			return fmt.Errorf("server: %s", env.Error.Message)
		}
		return fmt.Errorf("server: http %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}
