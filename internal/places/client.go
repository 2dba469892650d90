package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Vallabhkejgir/Location-Tracker/internal/geofence"
)

const defaultBaseURL = "https://maps.googleapis.com"

// Client talks to the Google Places web APIs (details + autocomplete).
// The base URL is overridable so tests can point it at an httptest server.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	region     string
}

// NewClient builds a Places client. region biases autocomplete results
// (country code, e.g. "in"); empty disables biasing.
func NewClient(apiKey, baseURL, region string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		// the upstream has no SLA; a bounded wait keeps request handlers from hanging
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		region:     region,
	}
}

type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"result"`
}

// Details resolves a place identifier into its coordinate.
func (c *Client) Details(ctx context.Context, placeID string) (geofence.Coordinate, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("key", c.apiKey)

	body, err := c.get(ctx, "/maps/api/place/details/json", q)
	if err != nil {
		return geofence.Coordinate{}, err
	}
	var dr detailsResponse
	if err := json.Unmarshal(body, &dr); err != nil {
		return geofence.Coordinate{}, fmt.Errorf("place details decode: %w", err)
	}
	if dr.Status != "OK" {
		return geofence.Coordinate{}, fmt.Errorf("place details lookup failed: status %s", dr.Status)
	}
	loc := dr.Result.Geometry.Location
	return geofence.Coordinate{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// Autocomplete returns the raw suggestion payload for a free-text location
// name; the response passes through to the caller untouched.
func (c *Client) Autocomplete(ctx context.Context, input string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("input", input)
	if c.region != "" {
		q.Set("components", "country:"+c.region)
	}
	q.Set("key", c.apiKey)

	body, err := c.get(ctx, "/maps/api/place/autocomplete/json", q)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places endpoint returned %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
