package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadscout-engine/internal/provider"
)

// platformStub fakes the actor platform: start run, poll, dataset items.
func platformStub(t *testing.T, items []any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/acts/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.NotEmpty(t, in["queries"])
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"id": "run-1", "status": "READY"},
		})
	})
	mux.HandleFunc("/actor-runs/run-1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"id": "run-1", "status": "SUCCEEDED", "defaultDatasetId": "ds-1"},
		})
	})
	mux.HandleFunc("/datasets/ds-1/items", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("clean"))
		_ = json.NewEncoder(w).Encode(items)
	})
	return httptest.NewServer(mux)
}

func newTestActor(srv *httptest.Server) *Actor {
	client := provider.NewClient("search", provider.ClientOptions{
		BaseURL:      srv.URL,
		Token:        "test-token",
		PollInterval: 5 * time.Millisecond,
	})
	return NewActor(client, "vendor~search", 2*time.Second)
}

func TestSearchDecodesWrappedItems(t *testing.T) {
	srv := platformStub(t, []any{
		map[string]any{
			"organicResults": []any{
				map[string]any{"url": "https://acme.example", "title": "Acme", "description": "Official."},
				map[string]any{"url": "https://other.example", "title": "Other", "snippet": "Else."},
			},
		},
	})
	defer srv.Close()

	got, err := newTestActor(srv).Search(context.Background(), "acme", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "https://acme.example", got[0].URL)
	assert.Equal(t, "Official.", got[0].Snippet) // description fallback
	assert.Equal(t, "Else.", got[1].Snippet)
}

func TestSearchDecodesFlatItems(t *testing.T) {
	srv := platformStub(t, []any{
		map[string]any{"url": "https://a.example", "title": "A",
			"siteLinks": []any{map[string]any{"url": "https://a.example/contact"}}},
		map[string]any{"url": "https://b.example", "title": "B"},
		map[string]any{"title": "no url, dropped"},
	})
	defer srv.Close()

	got, err := newTestActor(srv).Search(context.Background(), "acme", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"https://a.example/contact"}, got[0].SiteLinks)
}

func TestSearchTruncatesToMax(t *testing.T) {
	srv := platformStub(t, []any{
		map[string]any{"url": "https://a.example"},
		map[string]any{"url": "https://b.example"},
		map[string]any{"url": "https://c.example"},
	})
	defer srv.Close()

	got, err := newTestActor(srv).Search(context.Background(), "acme", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSearchFailedRun(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/acts/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"id": "run-9", "status": "READY"},
		})
	})
	mux.HandleFunc("/actor-runs/run-9", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"id": "run-9", "status": "FAILED"},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := newTestActor(srv).Search(context.Background(), "acme", 5)
	require.Error(t, err)

	var perr *provider.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "search", perr.Provider)
}
