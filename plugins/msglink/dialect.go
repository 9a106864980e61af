package msglink

import (
	"context"
	"fmt"

	"github.com/embedbot/EmbedBot-Go/bot"
	"github.com/embedbot/EmbedBot-Go/bot/dialect"
)

// Dialect quotes messages linked from the same guild as an embed preview.
//
// It needs a live session to resolve links, which does not exist when plugin
// factories run, so the message source is bound later through
// dialect.SourceBinder.
type Dialect struct {
	matcher *Matcher
	source  dialect.MessageSource
	logger  bot.Logger
}

func New(logger bot.Logger) *Dialect {
	return &Dialect{
		matcher: NewMatcher(),
		logger:  logger,
	}
}

func (d *Dialect) Name() string { return Name }

// BindMessageSource attaches the resolver used to look up linked messages.
func (d *Dialect) BindMessageSource(src dialect.MessageSource) {
	d.source = src
}

func (d *Dialect) Scan(content string) []dialect.Match {
	found := d.matcher.Scan(content)
	out := make([]dialect.Match, 0, len(found))
	for _, m := range found {
		out = append(out, m)
	}
	return out
}

// Handle resolves the linked message and renders it as a quote card. Links
// into other guilds resolve to ErrNotFound and links wrapped in <...>
// produce no reply.
func (d *Dialect) Handle(ctx context.Context, trigger dialect.Trigger, match dialect.Match) (*dialect.Reply, error) {
	m, ok := match.(Match)
	if !ok {
		return nil, fmt.Errorf("unexpected match type %T", match)
	}
	if m.Suppressed {
		return nil, nil
	}
	if d.source == nil {
		return nil, fmt.Errorf("message source not bound")
	}
	if m.GuildID != trigger.GuildID {
		// Linked content from other guilds is not leaked into this one.
		return nil, nil
	}

	linked, err := d.source.Resolve(ctx, m.GuildID, m.ChannelID, m.MessageID)
	if err != nil {
		return nil, fmt.Errorf("resolve message %s/%s: %w", m.ChannelID, m.MessageID, err)
	}
	if linked.Content == "" {
		// Attachment or embed only messages have nothing quotable.
		return nil, nil
	}

	description := linked.Content
	if m.Spoiler {
		description = "||" + description + "||"
	}

	return &dialect.Reply{Card: &dialect.Card{
		Title:       "#" + linked.ChannelName,
		URL:         canonicalURL(m),
		Description: description,
		Color:       trigger.AuthorColor,
		Timestamp:   linked.CreatedAt,
		AuthorName:  linked.AuthorName,
		AuthorIcon:  linked.AuthorIcon,
	}}, nil
}

func canonicalURL(m Match) string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", m.GuildID, m.ChannelID, m.MessageID)
}
