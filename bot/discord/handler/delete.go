package handler

import (
	"github.com/bwmarrin/discordgo"

	botpkg "github.com/embedbot/EmbedBot-Go/bot"
)

// DeleteHandler removes a preview when anyone presses its delete button.
// The button carries no state, so it survives restarts and works on
// previews sent by earlier versions of the bot.
type DeleteHandler struct {
	Logger botpkg.Logger
}

func (h *DeleteHandler) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	if i.MessageComponentData().CustomID != deleteCustomID {
		return
	}

	// Acknowledge first so the client never shows "interaction failed",
	// even if the message is already gone.
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		h.Logger.Debug("ack delete interaction", "error", err)
	}

	if i.Message == nil {
		return
	}
	if err := s.ChannelMessageDelete(i.ChannelID, i.Message.ID); err != nil {
		h.Logger.Warn("delete preview", "channel", i.ChannelID, "message", i.Message.ID, "error", err)
	}
}
