package spotify

import (
	"fmt"
	"strings"

	"github.com/embedbot/EmbedBot-Go/bot/dialect"
)

// spotifyGreen is the brand color used for track cards.
const spotifyGreen = 0x1DB954

// FormatDuration renders a track length as M:SS, or H:MM:SS from one hour
// up. Seconds are truncated, not rounded.
func FormatDuration(ms int) string {
	total := ms / 1000
	h := total / 3600
	m := total % 3600 / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// BuildCard renders track metadata as a preview card.
//
// The title carries the explicit marker when the track is flagged. The album
// line is omitted for singles, which report one total track.
func BuildCard(track *Track) *dialect.Card {
	title := track.Name
	if track.Explicit {
		title = "🅴 " + title
	}

	names := make([]string, 0, len(track.Artists))
	for _, a := range track.Artists {
		names = append(names, a.Name)
	}

	lines := []string{"by " + strings.Join(names, ", ")}
	if track.Album.TotalTracks > 1 {
		lines = append(lines, "on "+track.Album.Name)
	}
	lines = append(lines, FormatDuration(track.DurationMs))

	return &dialect.Card{
		Title:        title,
		URL:          track.ExternalURLs.Spotify,
		Description:  strings.Join(lines, "\n"),
		Color:        spotifyGreen,
		ThumbnailURL: largestImage(track.Album.Images),
	}
}

// largestImage picks the cover with the greatest pixel area.
func largestImage(images []Image) string {
	best := ""
	bestArea := -1
	for _, img := range images {
		area := img.Width * img.Height
		if area > bestArea {
			best = img.URL
			bestArea = area
		}
	}
	return best
}
