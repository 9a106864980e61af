package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

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

func TestClientFetchLines(t *testing.T) {
	var gotPath, gotAccept, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		gotAccept = r.Header.Get("Accept")
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("line one\r\nline two\nline three"))
	}))
	defer srv.Close()

	c := NewClient("tok", nopLogger{})
	c.baseURL = srv.URL

	lines, err := c.FetchLines(context.Background(), Match{
		Owner: "golang", Repo: "go", Branch: "master",
		Path: "src/fmt/print", Ext: "go",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"line one", "line two", "line three"}, lines)
	assert.Equal(t, "/repos/golang/go/contents/src/fmt/print.go?ref=master", gotPath)
	assert.Equal(t, rawAccept, gotAccept)
	assert.Equal(t, "Bearer tok", gotAuth)
}

func TestClientStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "missing file", status: http.StatusNotFound, want: dialect.ErrNotFound},
		{name: "private repo", status: http.StatusForbidden, want: dialect.ErrForbidden},
		{name: "bad token", status: http.StatusUnauthorized, want: dialect.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := NewClient("", nopLogger{})
			c.baseURL = srv.URL

			_, err := c.FetchLines(context.Background(), Match{Owner: "a", Repo: "b", Branch: "c", Path: "d"})
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClientAnonymous(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	c := NewClient("", nopLogger{})
	c.baseURL = srv.URL

	lines, err := c.FetchLines(context.Background(), Match{Owner: "a", Repo: "b", Branch: "c", Path: "d"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, lines)
}
