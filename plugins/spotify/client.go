package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"github.com/sony/gobreaker"

	"github.com/embedbot/EmbedBot-Go/bot"
	"github.com/embedbot/EmbedBot-Go/bot/dialect"
)

const (
	apiBase        = "https://api.spotify.com/v1"
	requestTimeout = 10 * time.Second
)

// Track is the subset of the track object the preview needs.
type Track struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	DurationMs   int          `json:"duration_ms"`
	Explicit     bool         `json:"explicit"`
	Artists      []Artist     `json:"artists"`
	Album        Album        `json:"album"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

type Artist struct {
	Name string `json:"name"`
}

type Album struct {
	Name        string  `json:"name"`
	TotalTracks int     `json:"total_tracks"`
	ReleaseDate string  `json:"release_date"`
	Images      []Image `json:"images"`
}

type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

// Client fetches track metadata from the Spotify Web API using tokens
// supplied by a TokenManager.
type Client struct {
	http    *retryablehttp.Client
	breaker *gobreaker.CircuitBreaker
	tokens  *TokenManager
	baseURL string
	logger  bot.Logger
}

// NewHTTPClient builds the shared HTTP client for the Spotify API and
// token endpoint. A failed request skips the preview rather than retrying.
func NewHTTPClient() *retryablehttp.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.HTTPClient.Timeout = requestTimeout
	rc.Logger = nil
	return rc
}

func NewClient(tokens *TokenManager, httpClient *retryablehttp.Client, logger bot.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "spotify-api",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Client{
		http:    httpClient,
		breaker: breaker,
		tokens:  tokens,
		baseURL: apiBase,
		logger:  logger,
	}
}

// GetTrack fetches one track by id.
func (c *Client) GetTrack(ctx context.Context, id string) (*Track, error) {
	v, err := c.breaker.Execute(func() (any, error) {
		return c.getTrack(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Track), nil
}

func (c *Client) getTrack(ctx context.Context, id string) (*Track, error) {
	token, err := c.tokens.EnsureValid(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtain token: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/tracks/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch track: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusBadRequest:
		// Malformed ids come back as 400, unknown ones as 404.
		return nil, dialect.ErrNotFound
	case http.StatusUnauthorized:
		// The token died early; drop it so the next call starts fresh.
		c.tokens.Invalidate()
		return nil, fmt.Errorf("token rejected: %w", dialect.ErrInvalidCredential)
	default:
		return nil, fmt.Errorf("spotify api status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read track: %w", err)
	}

	var track Track
	if err := json.Unmarshal(body, &track); err != nil {
		return nil, fmt.Errorf("decode track: %w", err)
	}
	return &track, nil
}
