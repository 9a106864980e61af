package spotify

import (
	"context"
	"fmt"

	"github.com/embedbot/EmbedBot-Go/bot"
	"github.com/embedbot/EmbedBot-Go/bot/dialect"
)

// Dialect turns Spotify track links into metadata preview cards.
type Dialect struct {
	matcher *Matcher
	client  *Client
	logger  bot.Logger
}

func New(clientID, clientSecret string, logger bot.Logger) *Dialect {
	httpClient := NewHTTPClient()
	tokens := NewTokenManager(clientID, clientSecret, httpClient, logger)
	return &Dialect{
		matcher: NewMatcher(),
		client:  NewClient(tokens, httpClient, logger),
		logger:  logger,
	}
}

func (d *Dialect) Name() string { return Name }

func (d *Dialect) Scan(content string) []dialect.Match {
	found := d.matcher.Scan(content)
	out := make([]dialect.Match, 0, len(found))
	for _, m := range found {
		out = append(out, m)
	}
	return out
}

// Handle fetches the linked track and renders its metadata card. Links the
// author wrapped in <...> produce no reply.
func (d *Dialect) Handle(ctx context.Context, trigger dialect.Trigger, match dialect.Match) (*dialect.Reply, error) {
	m, ok := match.(Match)
	if !ok {
		return nil, fmt.Errorf("unexpected match type %T", match)
	}
	if m.Suppressed {
		return nil, nil
	}

	track, err := d.client.GetTrack(ctx, m.TrackID)
	if err != nil {
		return nil, fmt.Errorf("fetch track %s: %w", m.TrackID, err)
	}
	return &dialect.Reply{Card: BuildCard(track)}, nil
}
