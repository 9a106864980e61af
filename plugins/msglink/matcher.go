package msglink

import (
	"regexp"

	"github.com/embedbot/EmbedBot-Go/bot/dialect"
)

// Name is the dialect and feature identifier for cross-channel message links.
const Name = "message_links"

// Match is one Discord message link found in a scanned message.
type Match struct {
	GuildID   string
	ChannelID string
	MessageID string

	SpanStart int
	SpanEnd   int

	Spoiler    bool
	Suppressed bool
}

func (Match) Dialect() string { return Name }

// Matcher extracts message-link matches, accepting the canonical, ptb and
// canary hosts as well as the legacy discordapp.com domain.
type Matcher struct {
	pattern *regexp.Regexp
}

func NewMatcher() *Matcher {
	return &Matcher{
		pattern: regexp.MustCompile(
			`https://(?:ptb\.|canary\.)?discord(?:app)?\.com/channels/` +
				`(?P<guild>\d+)/(?P<channel>\d+)/(?P<message>\d+)/?`,
		),
	}
}

// Scan returns all well-bounded message links in left-to-right order.
func (m *Matcher) Scan(content string) []Match {
	locs := m.pattern.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return nil
	}

	var matches []Match
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if !dialect.BoundaryOK(content, start, end) {
			continue
		}
		matches = append(matches, Match{
			GuildID:    m.group(content, loc, "guild"),
			ChannelID:  m.group(content, loc, "channel"),
			MessageID:  m.group(content, loc, "message"),
			SpanStart:  start,
			SpanEnd:    end,
			Spoiler:    dialect.SpoilerWrapped(content, start, end),
			Suppressed: dialect.AngleWrapped(content, start, end),
		})
	}
	return matches
}

func (m *Matcher) group(content string, loc []int, name string) string {
	i := m.pattern.SubexpIndex(name)
	if i < 0 || loc[2*i] < 0 {
		return ""
	}
	return content[loc[2*i]:loc[2*i+1]]
}
