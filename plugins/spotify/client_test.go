package spotify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedbot/EmbedBot-Go/bot/dialect"
)

func newTestClient(t *testing.T, apiURL, tokenURL string) *Client {
	t.Helper()
	httpClient := NewHTTPClient()
	tm := NewTokenManager("id", "secret", httpClient, nopLogger{})
	tm.tokenURL = tokenURL
	c := NewClient(tm, httpClient, nopLogger{})
	c.baseURL = apiURL
	return c
}

func TestGetTrack(t *testing.T) {
	var hits atomic.Int32
	tokenSrv := tokenServer(t, &hits, 3600)
	defer tokenSrv.Close()

	var gotAuth, gotPath string
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(Track{
			ID:         "abc",
			Name:       "Song",
			DurationMs: 125000,
			Artists:    []Artist{{Name: "A"}},
			Album:      Album{Name: "Record", TotalTracks: 10},
		})
	}))
	defer apiSrv.Close()

	c := newTestClient(t, apiSrv.URL, tokenSrv.URL)

	track, err := c.GetTrack(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "Song", track.Name)
	assert.Equal(t, 125000, track.DurationMs)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "/tracks/abc", gotPath)
}

func TestGetTrackStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "unknown id", status: http.StatusNotFound, want: dialect.ErrNotFound},
		{name: "malformed id", status: http.StatusBadRequest, want: dialect.ErrNotFound},
		{name: "rejected token", status: http.StatusUnauthorized, want: dialect.ErrInvalidCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			tokenSrv := tokenServer(t, &hits, 3600)
			defer tokenSrv.Close()

			apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer apiSrv.Close()

			c := newTestClient(t, apiSrv.URL, tokenSrv.URL)
			_, err := c.GetTrack(context.Background(), "abc")
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGetTrackUnauthorizedInvalidatesToken(t *testing.T) {
	var hits atomic.Int32
	tokenSrv := tokenServer(t, &hits, 3600)
	defer tokenSrv.Close()

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer apiSrv.Close()

	c := newTestClient(t, apiSrv.URL, tokenSrv.URL)

	_, err := c.GetTrack(context.Background(), "abc")
	require.ErrorIs(t, err, dialect.ErrInvalidCredential)

	// The dead token was dropped, so the next call fetches a fresh one.
	_, _ = c.GetTrack(context.Background(), "abc")
	assert.Equal(t, int32(2), hits.Load())
}
