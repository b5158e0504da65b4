package items_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"loot-ledger/feature/items"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestServer returns a server answering the token endpoint and
// delegating item requests to handler.
func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "client", user)
		assert.Equal(t, "secret", pass)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "test-token"}`))
	})
	mux.HandleFunc("/item/", handler)
	return httptest.NewServer(mux)
}

func testConfig(srv *httptest.Server) items.Config {
	return items.Config{
		TokenURL:          srv.URL + "/oauth/token",
		APIBase:           srv.URL,
		Namespace:         "static-classic1x-us",
		Locale:            "en_US",
		ClientID:          "client",
		Secret:            "secret",
		TimeoutSeconds:    5,
		RetryDelaySeconds: 0,
	}
}

func TestClient_ItemName(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "static-classic1x-us", r.URL.Query().Get("namespace"))
		w.Write([]byte(`{"name": "Lightforge Boots"}`))
	})
	defer srv.Close()

	client := items.NewClient(testConfig(srv), zap.NewNop())
	name, err := client.ItemName(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, "Lightforge Boots", name)
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"name": "Lightforge Boots"}`))
	})
	defer srv.Close()

	client := items.NewClient(testConfig(srv), zap.NewNop())
	name, err := client.ItemName(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, "Lightforge Boots", name)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_GivesUpAfterThreeAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	client := items.NewClient(testConfig(srv), zap.NewNop())
	_, err := client.ItemName(context.Background(), "12345")
	assert.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_TerminalFailureDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})
	defer srv.Close()

	client := items.NewClient(testConfig(srv), zap.NewNop())
	_, err := client.ItemName(context.Background(), "12345")
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
