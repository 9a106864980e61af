package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedbot/EmbedBot-Go/bot"
	"github.com/embedbot/EmbedBot-Go/bot/dialect"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)   {}
func (nopLogger) Info(string, ...any)    {}
func (nopLogger) Warn(string, ...any)    {}
func (nopLogger) Error(string, ...any)   {}
func (nopLogger) With(...any) bot.Logger { return nopLogger{} }

func tokenServer(t *testing.T, hits *atomic.Int32, expiresIn int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "id", r.PostForm.Get("client_id"))
		assert.Equal(t, "secret", r.PostForm.Get("client_secret"))
		n := hits.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": fmt.Sprintf("tok-%d", n),
			"token_type":   "Bearer",
			"expires_in":   expiresIn,
		})
	}))
}

func newTestManager(t *testing.T, srvURL string) *TokenManager {
	t.Helper()
	tm := NewTokenManager("id", "secret", NewHTTPClient(), nopLogger{})
	tm.tokenURL = srvURL
	return tm
}

func TestEnsureValidCachesToken(t *testing.T) {
	var hits atomic.Int32
	srv := tokenServer(t, &hits, 3600)
	defer srv.Close()

	tm := newTestManager(t, srv.URL)

	first, err := tm.EnsureValid(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", first)

	second, err := tm.EnsureValid(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load())
}

func TestEnsureValidRefreshMargin(t *testing.T) {
	var hits atomic.Int32
	srv := tokenServer(t, &hits, 3600)
	defer srv.Close()

	tm := newTestManager(t, srv.URL)
	issued := time.Now()
	now := issued
	tm.now = func() time.Time { return now }

	_, err := tm.EnsureValid(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(1), hits.Load())

	// Exactly fifteen minutes of life left still reuses the cached token.
	now = issued.Add(3600*time.Second - tokenMargin)
	_, err = tm.EnsureValid(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	// One second past the margin forces a refresh.
	now = now.Add(time.Second)
	tok, err := tm.EnsureValid(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)
	assert.Equal(t, int32(2), hits.Load())
}

func TestEnsureValidCoalescesConcurrentRefreshes(t *testing.T) {
	var hits atomic.Int32
	gate := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-gate
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "expires_in": 3600})
	}))
	defer srv.Close()

	tm := newTestManager(t, srv.URL)

	const callers = 8
	var wg sync.WaitGroup
	tokens := make([]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errs[i] = tm.EnsureValid(context.Background())
		}(i)
	}

	// Let the goroutines pile up on the in-flight refresh before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "tok", tokens[i])
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestEnsureValidInvalidClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_client"})
	}))
	defer srv.Close()

	tm := newTestManager(t, srv.URL)
	_, err := tm.EnsureValid(context.Background())
	require.ErrorIs(t, err, dialect.ErrInvalidCredential)
}

func TestInvalidateDropsCachedToken(t *testing.T) {
	var hits atomic.Int32
	srv := tokenServer(t, &hits, 3600)
	defer srv.Close()

	tm := newTestManager(t, srv.URL)

	_, err := tm.EnsureValid(context.Background())
	require.NoError(t, err)
	tm.Invalidate()

	tok, err := tm.EnsureValid(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)
	assert.Equal(t, int32(2), hits.Load())
}
