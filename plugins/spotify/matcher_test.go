package spotify

import "testing"

func TestMatcherScan(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Match
	}{
		{
			name:    "plain track link",
			content: "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC",
			want:    []Match{{TrackID: "4uLU6hMCjMI75M1A2tKUQC"}},
		},
		{
			name:    "share query parameter",
			content: "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC?si=abc123",
			want:    []Match{{TrackID: "4uLU6hMCjMI75M1A2tKUQC"}},
		},
		{
			name:    "localized path segment",
			content: "https://open.spotify.com/intl-de/track/4uLU6hMCjMI75M1A2tKUQC",
			want:    []Match{{TrackID: "4uLU6hMCjMI75M1A2tKUQC"}},
		},
		{
			name:    "regional localized path segment",
			content: "https://open.spotify.com/intl-pt-BR/track/4uLU6hMCjMI75M1A2tKUQC",
			want:    []Match{{TrackID: "4uLU6hMCjMI75M1A2tKUQC"}},
		},
		{
			name:    "spoiler wrapped",
			content: "||https://open.spotify.com/track/abc||",
			want:    []Match{{TrackID: "abc", Spoiler: true}},
		},
		{
			name:    "angle wrapped",
			content: "<https://open.spotify.com/track/abc>",
			want:    []Match{{TrackID: "abc", Suppressed: true}},
		},
		{
			name:    "album link is ignored",
			content: "https://open.spotify.com/album/abc",
			want:    nil,
		},
		{
			name:    "embedded in word is ignored",
			content: "xhttps://open.spotify.com/track/abc",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewMatcher().Scan(tt.content)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d matches, want %d: %+v", len(got), len(tt.want), got)
			}
			for i, w := range tt.want {
				g := got[i]
				g.SpanStart, g.SpanEnd = 0, 0
				if g != w {
					t.Fatalf("match %d = %+v, want %+v", i, g, w)
				}
			}
		})
	}
}
