// Package client provides an HTTP client for the estate-finder JSON API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/evcraddock/estate-finder/internal/dnd"
	"github.com/evcraddock/estate-finder/internal/logging"
	"github.com/evcraddock/estate-finder/internal/property"
	"github.com/evcraddock/estate-finder/internal/search"
)

// Client is an HTTP client for the estate-finder API. It remembers the
// session id the server issues, so favorites persist across calls for the
// lifetime of the server session. A Client is not safe for concurrent use.
type Client struct {
	baseURL    string
	sessionID  string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SessionID returns the session the client is bound to, if any.
func (c *Client) SessionID() string {
	return c.sessionID
}

// SetSessionID binds the client to an existing server session.
func (c *Client) SetSessionID(id string) {
	c.sessionID = id
}

// SearchResult is the response from GET /api/properties.
type SearchResult struct {
	Count      int                  `json:"count"`
	Properties []*property.Property `json:"properties"`
}

// Favorites is the response from the favorites endpoints.
type Favorites struct {
	Count     int                  `json:"count"`
	Favorites []*property.Property `json:"favorites"`
	Favorite  *bool                `json:"favorite,omitempty"`
}

// DragResult is the response from POST /api/drag.
type DragResult struct {
	Outcome   dnd.Outcome          `json:"outcome"`
	Count     int                  `json:"count"`
	Favorites []*property.Property `json:"favorites"`
}

// Search filters the server's catalog.
func (c *Client) Search(criteria search.Criteria) (*SearchResult, error) {
	path := "/api/properties"
	if v := criteria.Values(); len(v) > 0 {
		path += "?" + v.Encode()
	}

	var resp SearchResult
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProperty returns one listing.
func (c *Client) GetProperty(id string) (*property.Property, error) {
	var p property.Property
	if err := c.get("/api/properties/"+url.PathEscape(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Favorites lists the session's favorites.
func (c *Client) Favorites() (*Favorites, error) {
	var resp Favorites
	if err := c.get("/api/favorites", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddFavorite adds a listing to the session's favorites.
func (c *Client) AddFavorite(id string) (*Favorites, error) {
	var resp Favorites
	if err := c.post("/api/favorites", map[string]string{"id": id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ToggleFavorite flips a listing in or out of favorites.
func (c *Client) ToggleFavorite(id string) (*Favorites, error) {
	var resp Favorites
	if err := c.post("/api/favorites/"+url.PathEscape(id)+"/toggle", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveFavorite removes a listing from favorites.
func (c *Client) RemoveFavorite(id string) (*Favorites, error) {
	var resp Favorites
	if err := c.doDelete("/api/favorites/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ClearFavorites empties the session's favorites.
func (c *Client) ClearFavorites() (*Favorites, error) {
	var resp Favorites
	if err := c.doDelete("/api/favorites", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Drag sends one drag lifecycle event.
func (c *Client) Drag(ev dnd.RawEvent) (*DragResult, error) {
	var resp DragResult
	if err := c.post("/api/drag", ev, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, result interface{}) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with an optional JSON body and decodes the response.
func (c *Client) post(path string, body interface{}, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest("POST", c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, result)
}

// doDelete performs a DELETE request.
func (c *Client) doDelete(path string, result interface{}) error {
	req, err := http.NewRequest("DELETE", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// do executes an HTTP request with the session header and handles errors.
func (c *Client) do(req *http.Request, result interface{}) error {
	if c.sessionID != "" {
		req.Header.Set(logging.SessionHeader, c.sessionID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("closing response body", "error", cerr)
		}
	}()

	if id := resp.Header.Get(logging.SessionHeader); id != "" {
		c.sessionID = id
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("server error: %s", http.StatusText(resp.StatusCode))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
