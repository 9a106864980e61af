package spotify

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int
		want string
	}{
		{ms: 0, want: "0:00"},
		{ms: 999, want: "0:00"},
		{ms: 65000, want: "1:05"},
		{ms: 125000, want: "2:05"},
		{ms: 600000, want: "10:00"},
		{ms: 3725000, want: "1:02:05"},
		{ms: 7322000, want: "2:02:02"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.ms); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestBuildCard(t *testing.T) {
	track := &Track{
		Name:       "Song",
		DurationMs: 125000,
		Explicit:   true,
		Artists:    []Artist{{Name: "A"}, {Name: "B"}},
		Album: Album{
			Name:        "Record",
			TotalTracks: 12,
			Images: []Image{
				{URL: "small", Width: 64, Height: 64},
				{URL: "big", Width: 640, Height: 640},
				{URL: "medium", Width: 300, Height: 300},
			},
		},
		ExternalURLs: ExternalURLs{Spotify: "https://open.spotify.com/track/x"},
	}

	card := BuildCard(track)
	if card.Title != "🅴 Song" {
		t.Errorf("Title = %q", card.Title)
	}
	if card.URL != "https://open.spotify.com/track/x" {
		t.Errorf("URL = %q", card.URL)
	}
	if card.Description != "by A, B\non Record\n2:05" {
		t.Errorf("Description = %q", card.Description)
	}
	if card.ThumbnailURL != "big" {
		t.Errorf("ThumbnailURL = %q", card.ThumbnailURL)
	}
	if card.Color != spotifyGreen {
		t.Errorf("Color = %#x", card.Color)
	}
}

func TestBuildCardSingleOmitsAlbum(t *testing.T) {
	track := &Track{
		Name:       "Solo",
		DurationMs: 60000,
		Artists:    []Artist{{Name: "A"}},
		Album:      Album{Name: "Solo", TotalTracks: 1},
	}
	card := BuildCard(track)
	if card.Title != "Solo" {
		t.Errorf("Title = %q", card.Title)
	}
	if card.Description != "by A\n1:00" {
		t.Errorf("Description = %q", card.Description)
	}
	if card.ThumbnailURL != "" {
		t.Errorf("ThumbnailURL = %q", card.ThumbnailURL)
	}
}
