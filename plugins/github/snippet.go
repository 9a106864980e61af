package github

import (
	"strings"

	"github.com/embedbot/EmbedBot-Go/bot/dialect"
)

// maxSnippetLen is the hard ceiling on a rendered snippet, matching the
// platform message length limit.
const maxSnippetLen = 2000

// Reconstruct renders the requested line range of a fetched file as a fenced
// code block ready to send.
//
// The range is 1-based and inclusive on both ends and is clamped to the
// file; a range entirely outside the file, or a reversed one, yields an
// empty selection. Common leading indentation across the selected non-blank
// lines is removed before fencing. An empty selection returns ("", nil). A
// rendered block longer than maxSnippetLen returns dialect.ErrTooLarge.
func Reconstruct(lines []string, match Match) (string, error) {
	start, end := match.StartLine, match.EndLine
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start > len(lines) || end < start {
		return "", nil
	}

	selected := lines[start-1 : end]
	selected = dedent(selected)

	body := strings.Join(selected, "\n")
	if strings.TrimSpace(body) == "" {
		return "", nil
	}

	block := "```" + match.Ext + "\n" + body + "\n```"
	if match.Spoiler {
		block = "||" + block + "||"
	}
	if len(block) > maxSnippetLen {
		return "", dialect.ErrTooLarge
	}
	return block, nil
}

// dedent strips the widest common leading run of spaces and tabs, measured
// over non-blank lines only. Blank lines neither contribute to the width nor
// keep their own whitespace beyond what remains after stripping.
func dedent(lines []string) []string {
	width := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := leadingWhitespace(line)
		if width < 0 || n < width {
			width = n
		}
	}
	if width <= 0 {
		return lines
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		n := width
		if len(line) < n {
			n = len(line)
		}
		out[i] = line[n:]
	}
	return out
}

func leadingWhitespace(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return i
		}
	}
	return len(line)
}
