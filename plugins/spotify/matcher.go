package spotify

import (
	"regexp"

	"github.com/embedbot/EmbedBot-Go/bot/dialect"
)

// Name is the dialect and feature identifier for Spotify track links.
const Name = "spotify"

// Match is one Spotify track link found in a scanned message.
type Match struct {
	TrackID string

	SpanStart int
	SpanEnd   int

	Spoiler    bool
	Suppressed bool
}

func (Match) Dialect() string { return Name }

// Matcher extracts track links, tolerating the localized intl-xx path
// segment and query parameters such as si.
type Matcher struct {
	pattern *regexp.Regexp
}

func NewMatcher() *Matcher {
	return &Matcher{
		pattern: regexp.MustCompile(
			`https://open\.spotify\.com/` +
				`(?:intl-[a-zA-Z]+(?:-[a-zA-Z]+)?/)?` +
				`track/(?P<id>[A-Za-z0-9]+)` +
				`(?:\?\S*)?`,
		),
	}
}

// Scan returns all well-bounded track links in left-to-right order.
func (m *Matcher) Scan(content string) []Match {
	locs := m.pattern.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return nil
	}

	idIdx := m.pattern.SubexpIndex("id")
	var matches []Match
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if !dialect.BoundaryOK(content, start, end) {
			continue
		}
		matches = append(matches, Match{
			TrackID:    content[loc[2*idIdx]:loc[2*idIdx+1]],
			SpanStart:  start,
			SpanEnd:    end,
			Spoiler:    dialect.SpoilerWrapped(content, start, end),
			Suppressed: dialect.AngleWrapped(content, start, end),
		})
	}
	return matches
}
