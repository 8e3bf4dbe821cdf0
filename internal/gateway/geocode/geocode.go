// Package geocode talks to the external address lookup service used to
// resolve free-form address queries into structured locations.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Address is a resolved address suggestion.
type Address struct {
	Label   string  `json:"label"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type httpStatusError struct {
	code int
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("geocode service responded %d", e.code)
}

// HTTPGateway is an address lookup gateway backed by the geocode HTTP API.
type HTTPGateway struct {
	client  *http.Client
	baseURL string
}

// NewHTTPGateway creates a geocode gateway. A nil client falls back to
// http.DefaultClient.
func NewHTTPGateway(client *http.Client, baseURL string) *HTTPGateway {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPGateway{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

type searchResponse struct {
	Results []Address `json:"results"`
}

// Search resolves a free-form query into address suggestions.
func (g *HTTPGateway) Search(ctx context.Context, query string) ([]Address, error) {
	u := g.baseURL + "/search?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("geocode gateway: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode gateway: search: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &httpStatusError{code: resp.StatusCode}
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("geocode gateway: decode response: %w", err)
	}
	return body.Results, nil
}
