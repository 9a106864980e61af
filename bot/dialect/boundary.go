package dialect

import (
	"unicode"
	"unicode/utf8"
)

// Boundary rules shared by the link grammars: a candidate URL span counts as
// a match only when it is preceded by start-of-string, whitespace, "<" or
// "||", and followed by end-of-string, whitespace, ">" or "||". This keeps
// link fragments inside longer URLs or inline-code spans from matching, and
// lets the author's own suppression and spoiler markup wrap the link.
//
// Go's regexp has no lookarounds, so dialects run these checks against the
// text around each candidate span instead of encoding them in the pattern.
// The rules are defined over characters, not bytes: the neighbors are
// decoded as runes so multi-byte text on either side behaves the same as
// ASCII.

// BoundaryOK reports whether the span [start, end) sits on valid boundaries
// inside content.
func BoundaryOK(content string, start, end int) bool {
	before := start == 0 ||
		content[start-1] == '<' ||
		(start >= 2 && content[start-2:start] == "||") ||
		spaceBefore(content, start)

	after := end == len(content) ||
		content[end] == '>' ||
		(end+2 <= len(content) && content[end:end+2] == "||") ||
		spaceAfter(content, end)

	return before && after
}

// SpoilerWrapped reports whether the span is immediately wrapped in "||...||".
func SpoilerWrapped(content string, start, end int) bool {
	return start >= 2 && content[start-2:start] == "||" &&
		end+2 <= len(content) && content[end:end+2] == "||"
}

// AngleWrapped reports whether the span is immediately wrapped in "<...>",
// the author's embed-suppression markup.
func AngleWrapped(content string, start, end int) bool {
	return start >= 1 && content[start-1] == '<' &&
		end < len(content) && content[end] == '>'
}

// spaceBefore reports whether the character ending at i is whitespace. The
// full rune is decoded, so a trailing byte of a multi-byte character never
// passes as whitespace on its own.
func spaceBefore(content string, i int) bool {
	r, size := utf8.DecodeLastRuneInString(content[:i])
	if size == 0 || (r == utf8.RuneError && size == 1) {
		return false
	}
	return unicode.IsSpace(r)
}

func spaceAfter(content string, i int) bool {
	r, size := utf8.DecodeRuneInString(content[i:])
	if size == 0 || (r == utf8.RuneError && size == 1) {
		return false
	}
	return unicode.IsSpace(r)
}
