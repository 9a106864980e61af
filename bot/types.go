package bot

import "time"

// Feature identifiers. They double as dialect names, per-guild setting
// columns and [plugins.*] config section names.
const (
	FeatureGitHub       = "github"
	FeatureMessageLinks = "message_links"
	FeatureSpotify      = "spotify"
)

// Features returns the known feature identifiers in dialect order.
func Features() []string {
	return []string{FeatureGitHub, FeatureMessageLinks, FeatureSpotify}
}

// StatPreviewsSent is the counter key for dispatched previews of one dialect.
func StatPreviewsSent(feature string) string {
	return "previews_sent_" + feature
}

// GuildSettings holds the per-guild preview toggles.
type GuildSettings struct {
	ID        uint
	CreatedAt time.Time
	UpdatedAt time.Time

	GuildID      string
	GitHub       bool
	MessageLinks bool
	Spotify      bool
}

// Enabled reports whether the given feature is switched on.
// Unknown features are treated as disabled.
func (s *GuildSettings) Enabled(feature string) bool {
	if s == nil {
		return false
	}
	switch feature {
	case FeatureGitHub:
		return s.GitHub
	case FeatureMessageLinks:
		return s.MessageLinks
	case FeatureSpotify:
		return s.Spotify
	default:
		return false
	}
}

// SetEnabled flips one feature toggle. It reports whether the feature name
// was recognized.
func (s *GuildSettings) SetEnabled(feature string, on bool) bool {
	switch feature {
	case FeatureGitHub:
		s.GitHub = on
	case FeatureMessageLinks:
		s.MessageLinks = on
	case FeatureSpotify:
		s.Spotify = on
	default:
		return false
	}
	return true
}
