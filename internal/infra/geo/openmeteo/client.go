package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yanqian/style-ai/internal/domain/outfit"
)

const defaultBaseURL = "https://geocoding-api.open-meteo.com/v1/search"

// Client resolves place names via the Open-Meteo geocoding API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a geocoding client.
func NewClient(baseURL string) *Client {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Search returns candidate matches for a free-text query. An empty slice
// means no match.
func (c *Client) Search(ctx context.Context, query string) ([]outfit.GeoCandidate, error) {
	params := url.Values{}
	params.Set("name", query)
	params.Set("count", "1")
	params.Set("language", "en")
	params.Set("format", "json")
	endpoint := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("geocode request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read geocode response: %w", err)
	}

	var raw searchResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	candidates := make([]outfit.GeoCandidate, 0, len(raw.Results))
	for _, result := range raw.Results {
		candidates = append(candidates, outfit.GeoCandidate{
			Name:      result.Name,
			Latitude:  result.Latitude,
			Longitude: result.Longitude,
		})
	}
	return candidates, nil
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

var _ outfit.GeocodingClient = (*Client)(nil)
