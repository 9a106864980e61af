package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"github.com/sony/gobreaker"

	"github.com/embedbot/EmbedBot-Go/bot"
	"github.com/embedbot/EmbedBot-Go/bot/dialect"
)

const (
	apiBase        = "https://api.github.com"
	rawAccept      = "application/vnd.github.raw"
	requestTimeout = 10 * time.Second

	// maxFileBytes caps the raw payload read from the contents API. Files
	// larger than this cannot yield a snippet that fits a message anyway.
	maxFileBytes = 4 << 20
)

// Client fetches raw file contents through the GitHub contents API.
type Client struct {
	http    *retryablehttp.Client
	breaker *gobreaker.CircuitBreaker
	token   string
	baseURL string
	logger  bot.Logger
}

// NewClient creates a Client. token may be empty for anonymous access.
func NewClient(token string, logger bot.Logger) *Client {
	rc := retryablehttp.NewClient()
	// A failed fetch skips the preview rather than retrying it.
	rc.RetryMax = 0
	rc.HTTPClient.Timeout = requestTimeout
	rc.Logger = nil

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "github-api",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		http:    rc,
		breaker: breaker,
		token:   token,
		baseURL: apiBase,
		logger:  logger,
	}
}

// FetchLines retrieves the file named by match and returns its lines with
// line terminators removed. CRLF and LF inputs produce identical slices.
func (c *Client) FetchLines(ctx context.Context, match Match) ([]string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		c.baseURL, match.Owner, match.Repo, match.FilePath(), match.Branch)

	body, err := c.breaker.Execute(func() (any, error) {
		return c.fetch(ctx, url)
	})
	if err != nil {
		return nil, err
	}
	return splitLines(body.(string)), nil
}

func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", rawAccept)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch contents: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", dialect.ErrNotFound
	case http.StatusForbidden, http.StatusUnauthorized:
		return "", dialect.ErrForbidden
	default:
		return "", fmt.Errorf("github api status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxFileBytes))
	if err != nil {
		return "", fmt.Errorf("read contents: %w", err)
	}
	return string(raw), nil
}

// splitLines splits on "\n" and strips a trailing "\r" from each line so
// that CRLF files reconstruct the same as LF files.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
