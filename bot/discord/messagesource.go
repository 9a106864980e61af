package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/embedbot/EmbedBot-Go/bot/dialect"
)

// MessageSource resolves message links through the session, preferring the
// gateway state cache and falling back to the REST API.
type MessageSource struct {
	session *discordgo.Session
}

func NewMessageSource(session *discordgo.Session) *MessageSource {
	return &MessageSource{session: session}
}

// Resolve looks up a linked message and its channel. A channel that belongs
// to a different guild than claimed resolves to ErrNotFound, so forged links
// cannot read content across guilds.
func (s *MessageSource) Resolve(ctx context.Context, guildID, channelID, messageID string) (*dialect.LinkedMessage, error) {
	channel, err := s.channel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if channel.GuildID != guildID {
		return nil, dialect.ErrNotFound
	}

	msg, err := s.message(ctx, channelID, messageID)
	if err != nil {
		return nil, err
	}

	linked := &dialect.LinkedMessage{
		ChannelName: channel.Name,
		Content:     msg.Content,
		CreatedAt:   msg.Timestamp,
	}
	if msg.Author != nil {
		linked.AuthorName = msg.Author.Username
		linked.AuthorIcon = msg.Author.AvatarURL("64")
		if member, err := s.session.State.Member(guildID, msg.Author.ID); err == nil && member.Nick != "" {
			linked.AuthorName = member.Nick
		}
	}
	return linked, nil
}

func (s *MessageSource) channel(ctx context.Context, channelID string) (*discordgo.Channel, error) {
	if channel, err := s.session.State.Channel(channelID); err == nil {
		return channel, nil
	}
	channel, err := s.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, mapRESTError(err, "fetch channel")
	}
	return channel, nil
}

func (s *MessageSource) message(ctx context.Context, channelID, messageID string) (*discordgo.Message, error) {
	if msg, err := s.session.State.Message(channelID, messageID); err == nil {
		return msg, nil
	}
	msg, err := s.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, mapRESTError(err, "fetch message")
	}
	return msg, nil
}

func mapRESTError(err error, op string) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusNotFound:
			return dialect.ErrNotFound
		case http.StatusForbidden:
			return dialect.ErrForbidden
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
