package github

import (
	"context"
	"fmt"

	"github.com/embedbot/EmbedBot-Go/bot"
	"github.com/embedbot/EmbedBot-Go/bot/dialect"
)

// Dialect turns GitHub code-range links into code block previews.
type Dialect struct {
	matcher *Matcher
	client  *Client
	logger  bot.Logger
}

// New creates the GitHub dialect. token may be empty.
func New(token string, logger bot.Logger) *Dialect {
	return &Dialect{
		matcher: NewMatcher(),
		client:  NewClient(token, logger),
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

// Handle fetches the linked file and reconstructs the requested lines.
// Links the author wrapped in <...> are acknowledged but produce no reply.
func (d *Dialect) Handle(ctx context.Context, trigger dialect.Trigger, match dialect.Match) (*dialect.Reply, error) {
	m, ok := match.(Match)
	if !ok {
		return nil, fmt.Errorf("unexpected match type %T", match)
	}
	if m.Suppressed {
		return nil, nil
	}

	lines, err := d.client.FetchLines(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("fetch %s/%s@%s %s: %w", m.Owner, m.Repo, m.Branch, m.FilePath(), err)
	}

	block, err := Reconstruct(lines, m)
	if err != nil {
		return nil, fmt.Errorf("reconstruct %s: %w", m.FilePath(), err)
	}
	if block == "" {
		return nil, nil
	}
	return &dialect.Reply{Text: block}, nil
}
