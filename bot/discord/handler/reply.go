package handler

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/embedbot/EmbedBot-Go/bot/dialect"
	discordpkg "github.com/embedbot/EmbedBot-Go/bot/discord"
)

// deleteCustomID identifies the delete button on every preview. It is a
// fixed id so the button keeps working across restarts.
const deleteCustomID = "embedbot:delete"

// Replier sends a rendered preview in response to a trigger message.
type Replier interface {
	Send(ctx context.Context, trigger dialect.Trigger, reply *dialect.Reply) error
}

// SessionReplier sends previews as non-pinging replies through the session,
// throttled by the per-channel rate limiter.
type SessionReplier struct {
	Session *discordgo.Session
	Limiter *discordpkg.RateLimiter
}

func (r *SessionReplier) Send(ctx context.Context, trigger dialect.Trigger, reply *dialect.Reply) error {
	send := &discordgo.MessageSend{
		Content: reply.Text,
		Reference: &discordgo.MessageReference{
			GuildID:   trigger.GuildID,
			ChannelID: trigger.ChannelID,
			MessageID: trigger.MessageID,
		},
		AllowedMentions: &discordgo.MessageAllowedMentions{
			RepliedUser: false,
		},
		Components: []discordgo.MessageComponent{deleteRow()},
	}
	if reply.Card != nil {
		send.Embeds = []*discordgo.MessageEmbed{embedFromCard(reply.Card)}
	}

	return discordpkg.WithRetry(ctx, r.Limiter, trigger.ChannelID, func() error {
		_, err := r.Session.ChannelMessageSendComplex(trigger.ChannelID, send, discordgo.WithContext(ctx))
		return err
	})
}

func deleteRow() discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Delete",
				Style:    discordgo.DangerButton,
				CustomID: deleteCustomID,
				Emoji:    &discordgo.ComponentEmoji{Name: "🗑️"},
			},
		},
	}
}

func embedFromCard(card *dialect.Card) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       card.Title,
		URL:         card.URL,
		Description: card.Description,
		Color:       card.Color,
	}
	if !card.Timestamp.IsZero() {
		embed.Timestamp = card.Timestamp.Format(time.RFC3339)
	}
	if card.AuthorName != "" {
		embed.Author = &discordgo.MessageEmbedAuthor{
			Name:    card.AuthorName,
			IconURL: card.AuthorIcon,
		}
	}
	if card.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: card.ThumbnailURL}
	}
	return embed
}
