package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"golang.org/x/sync/singleflight"

	"github.com/embedbot/EmbedBot-Go/bot"
	"github.com/embedbot/EmbedBot-Go/bot/dialect"
)

const (
	tokenURL = "https://accounts.spotify.com/api/token"

	// tokenMargin is how long before expiry a cached token stops being
	// handed out. A token with exactly this much life left is still used.
	tokenMargin = 15 * time.Minute
)

// Credential is one issued client-credentials token.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

// Valid reports whether the credential still has at least tokenMargin left.
func (c Credential) Valid(now time.Time) bool {
	return c.Token != "" && !now.Add(tokenMargin).After(c.ExpiresAt)
}

// TokenManager owns the client-credentials token lifecycle. Concurrent
// callers needing a refresh are coalesced into a single request.
type TokenManager struct {
	clientID     string
	clientSecret string
	http         *retryablehttp.Client
	logger       bot.Logger

	tokenURL string
	now      func() time.Time

	mu     sync.RWMutex
	cached Credential
	group  singleflight.Group
}

func NewTokenManager(clientID, clientSecret string, httpClient *retryablehttp.Client, logger bot.Logger) *TokenManager {
	return &TokenManager{
		clientID:     clientID,
		clientSecret: clientSecret,
		http:         httpClient,
		logger:       logger,
		tokenURL:     tokenURL,
		now:          time.Now,
	}
}

// EnsureValid returns a token with at least tokenMargin of life left,
// refreshing first when the cached one is stale or absent.
func (tm *TokenManager) EnsureValid(ctx context.Context) (string, error) {
	if cred, ok := tm.current(); ok {
		return cred.Token, nil
	}

	v, err, _ := tm.group.Do("token", func() (any, error) {
		// A refresh that finished while this caller was queued is reused.
		if cred, ok := tm.current(); ok {
			return cred.Token, nil
		}
		cred, err := tm.refresh(ctx)
		if err != nil {
			return nil, err
		}
		tm.mu.Lock()
		tm.cached = cred
		tm.mu.Unlock()
		tm.logger.Debug("spotify token refreshed", "expires_at", cred.ExpiresAt)
		return cred.Token, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate drops the cached token so the next call refreshes.
func (tm *TokenManager) Invalidate() {
	tm.mu.Lock()
	tm.cached = Credential{}
	tm.mu.Unlock()
}

func (tm *TokenManager) current() (Credential, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	if tm.cached.Valid(tm.now()) {
		return tm.cached, true
	}
	return Credential{}, false
}

func (tm *TokenManager) refresh(ctx context.Context) (Credential, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {tm.clientID},
		"client_secret": {tm.clientSecret},
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, tm.tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return Credential{}, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := tm.http.Do(req)
	if err != nil {
		return Credential{}, fmt.Errorf("request token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Credential{}, fmt.Errorf("read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error == "invalid_client" {
			return Credential{}, fmt.Errorf("client credentials rejected: %w", dialect.ErrInvalidCredential)
		}
		return Credential{}, fmt.Errorf("token endpoint status %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return Credential{}, fmt.Errorf("decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return Credential{}, fmt.Errorf("token endpoint returned empty access_token")
	}

	return Credential{
		Token:     payload.AccessToken,
		ExpiresAt: tm.now().Add(time.Duration(payload.ExpiresIn) * time.Second),
	}, nil
}
