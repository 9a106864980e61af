// Package dialect defines the reference-preview pipeline model: each dialect
// recognizes one URL family inside message text and turns its matches into
// reply payloads.
package dialect

import (
	"context"
	"time"
)

// Match is one recognized reference inside a message. Concrete match types
// live with the dialect that produced them.
type Match interface {
	Dialect() string
}

// Card is a structured preview rendered as a rich embed.
type Card struct {
	Title        string
	URL          string
	Description  string
	Color        int
	Timestamp    time.Time
	AuthorName   string
	AuthorIcon   string
	ThumbnailURL string
}

// Reply is one outbound preview payload. Exactly one of Text or Card is set.
type Reply struct {
	Text string
	Card *Card
}

// Trigger identifies the message that produced a match.
type Trigger struct {
	GuildID   string
	ChannelID string
	MessageID string
	AuthorID  string

	// AuthorColor is the trigger author's display color, 0 when unknown.
	AuthorColor int
}

// Dialect recognizes one URL family and turns matches into replies.
//
// Scan is pure text processing and must not perform I/O; matches are
// returned in left-to-right order and do not overlap within a dialect.
// Handle may perform network I/O. A (nil, nil) return means the match was
// deliberately skipped, which is not an error.
type Dialect interface {
	Name() string
	Scan(content string) []Match
	Handle(ctx context.Context, trigger Trigger, match Match) (*Reply, error)
}

// LinkedMessage is the resolved target of a cross-channel message link.
type LinkedMessage struct {
	ChannelName string
	Content     string
	AuthorName  string
	AuthorIcon  string
	CreatedAt   time.Time
}

// MessageSource resolves guild/channel/message IDs against the chat platform.
type MessageSource interface {
	Resolve(ctx context.Context, guildID, channelID, messageID string) (*LinkedMessage, error)
}

// SourceBinder is implemented by dialects that need a MessageSource bound
// after the platform session exists.
type SourceBinder interface {
	BindMessageSource(src MessageSource)
}
