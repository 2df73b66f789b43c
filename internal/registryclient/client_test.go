package registryclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/plugrid/internal/manifest"
)

func serveIndex(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/index.json", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchIndex(t *testing.T) {
	t.Run("decodes the plugin index", func(t *testing.T) {
		server := serveIndex(t, http.StatusOK, `{
			"plugins": [
				{
					"id": "asset-cache",
					"priority": 5100,
					"version": "1.4.0",
					"tier": "Essential",
					"dependencies": [
						{"id": "event-bus", "optional": false, "constraint": ">=2.0.0"},
						{"id": "debug-overlay", "optional": true}
					]
				},
				{"id": "bare"}
			]
		}`)

		client := New(server.URL)
		defer func() { _ = client.Close() }()

		plugins, err := client.FetchIndex(context.Background())
		require.NoError(t, err)
		require.Len(t, plugins, 2)

		cache := plugins[0]
		assert.Equal(t, "asset-cache", cache.ID)
		assert.Equal(t, 5100, cache.Priority)
		assert.Equal(t, "1.4.0", cache.Version)
		assert.Equal(t, "Essential", cache.Tier)
		assert.Equal(t, server.URL+"/index.json", cache.Source)
		require.Len(t, cache.Dependencies, 2)
		assert.Equal(t, manifest.Dependency{ID: "event-bus", Constraint: ">=2.0.0"}, cache.Dependencies[0])
		assert.Equal(t, manifest.Dependency{ID: "debug-overlay", Optional: true}, cache.Dependencies[1])

		// Absent priority maps to the unset sentinel.
		assert.Equal(t, manifest.PriorityUnset, plugins[1].Priority)
	})

	t.Run("error status fails", func(t *testing.T) {
		server := serveIndex(t, http.StatusInternalServerError, "boom")
		client := New(server.URL)
		defer func() { _ = client.Close() }()

		_, err := client.FetchIndex(context.Background())
		assert.ErrorContains(t, err, "returned status 500")
	})

	t.Run("invalid JSON fails", func(t *testing.T) {
		server := serveIndex(t, http.StatusOK, `{"plugins": [`)
		client := New(server.URL)
		defer func() { _ = client.Close() }()

		_, err := client.FetchIndex(context.Background())
		assert.ErrorContains(t, err, "not valid JSON")
	})

	t.Run("missing plugins array fails", func(t *testing.T) {
		server := serveIndex(t, http.StatusOK, `{"modules": []}`)
		client := New(server.URL)
		defer func() { _ = client.Close() }()

		_, err := client.FetchIndex(context.Background())
		assert.ErrorContains(t, err, `no "plugins" array`)
	})

	t.Run("empty plugin id fails", func(t *testing.T) {
		server := serveIndex(t, http.StatusOK, `{"plugins": [{"priority": 1}]}`)
		client := New(server.URL)
		defer func() { _ = client.Close() }()

		_, err := client.FetchIndex(context.Background())
		assert.ErrorContains(t, err, "empty id")
	})
}
