package github

import (
	"regexp"
	"strconv"

	"github.com/embedbot/EmbedBot-Go/bot/dialect"
)

// Name is the dialect and feature identifier for GitHub code-range links.
const Name = "github"

// Match is one GitHub blob link carrying a #L line-range fragment.
type Match struct {
	Owner     string
	Repo      string
	Branch    string
	Path      string
	Ext       string
	StartLine int
	EndLine   int

	// SpanStart/SpanEnd are byte offsets of the link in the scanned message.
	SpanStart int
	SpanEnd   int

	// Spoiler marks a link the author wrapped in ||...||; the preview keeps
	// the wrapping. Suppressed marks a <...> wrapped link; no preview is sent.
	Spoiler    bool
	Suppressed bool
}

func (Match) Dialect() string { return Name }

// Matcher extracts code-range matches from message text.
//
// The boundary rules of the grammar (whitespace, "<" or "||" on both sides)
// cannot be expressed in Go's regexp, so the pattern matches the bare URL and
// the surrounding bytes are checked per candidate; see dialect.BoundaryOK.
type Matcher struct {
	pattern *regexp.Regexp
}

// NewMatcher creates a Matcher for github.com blob URLs.
func NewMatcher() *Matcher {
	return &Matcher{
		pattern: regexp.MustCompile(
			`https?://github\.com/` +
				`(?P<owner>[\w\-.]+)/` +
				`(?P<repo>[\w\-.]+)/` +
				`blob/(?P<branch>[\w\-.]+)/` +
				`(?P<path>.+?)` +
				`(?:\.(?P<ext>\w+))?` +
				`(?:\?\S*?)?` +
				`#L(?P<l1>\d+)` +
				`(?:-L(?P<l2>\d+))?`,
		),
	}
}

// Scan returns all well-formed code-range matches in left-to-right order.
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

		owner := m.group(content, loc, "owner")
		repo := m.group(content, loc, "repo")
		branch := m.group(content, loc, "branch")
		path := m.group(content, loc, "path")
		l1 := m.group(content, loc, "l1")
		if owner == "" || repo == "" || branch == "" || path == "" || l1 == "" {
			continue
		}

		startLine, err := strconv.Atoi(l1)
		if err != nil || startLine < 1 {
			continue
		}
		endLine := startLine
		if l2 := m.group(content, loc, "l2"); l2 != "" {
			if parsed, err := strconv.Atoi(l2); err == nil {
				endLine = parsed
			}
		}

		matches = append(matches, Match{
			Owner:      owner,
			Repo:       repo,
			Branch:     branch,
			Path:       path,
			Ext:        m.group(content, loc, "ext"),
			StartLine:  startLine,
			EndLine:    endLine,
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

// FilePath returns the repository-relative file path including the extension.
func (m Match) FilePath() string {
	if m.Ext == "" {
		return m.Path
	}
	return m.Path + "." + m.Ext
}
