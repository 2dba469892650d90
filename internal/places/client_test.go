package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetails_ResolvesCoordinate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/maps/api/place/details/json", r.URL.Path)
		require.Equal(t, "place-1", r.URL.Query().Get("place_id"))
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "OK",
			"result": map[string]any{
				"geometry": map[string]any{
					"location": map[string]float64{"lat": 12.9716, "lng": 77.5946},
				},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, "in")
	coord, err := c.Details(context.Background(), "place-1")
	require.NoError(t, err)
	require.Equal(t, 12.9716, coord.Lat)
	require.Equal(t, 77.5946, coord.Lng)
}

func TestDetails_UpstreamStatusNotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "NOT_FOUND"})
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, "in")
	_, err := c.Details(context.Background(), "nope")
	require.Error(t, err)
	require.Contains(t, err.Error(), "NOT_FOUND")
}

func TestDetails_UpstreamHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, "in")
	_, err := c.Details(context.Background(), "p")
	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
}

func TestAutocomplete_PassthroughWithRegionBias(t *testing.T) {
	payload := `{"predictions":[{"description":"MG Road, Bengaluru"}],"status":"OK"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/maps/api/place/autocomplete/json", r.URL.Path)
		require.Equal(t, "MG Road", r.URL.Query().Get("input"))
		require.Equal(t, "country:in", r.URL.Query().Get("components"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, "in")
	raw, err := c.Autocomplete(context.Background(), "MG Road")
	require.NoError(t, err)
	require.JSONEq(t, payload, string(raw))
}
