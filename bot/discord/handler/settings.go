package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	botpkg "github.com/embedbot/EmbedBot-Go/bot"
)

const settingsCommandName = "previews"

// SettingsHandler implements the /previews command, letting guild managers
// toggle preview features per guild.
type SettingsHandler struct {
	Repo   botpkg.SettingsRepository
	Logger botpkg.Logger
}

// Command returns the application command definition to register.
func Command() *discordgo.ApplicationCommand {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(botpkg.Features()))
	for _, f := range botpkg.Features() {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  featureLabel(f),
			Value: f,
		})
	}
	featureOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "feature",
		Description: "Which preview feature to change",
		Required:    true,
		Choices:     choices,
	}

	manageGuild := int64(discordgo.PermissionManageGuild)
	return &discordgo.ApplicationCommand{
		Name:                     settingsCommandName,
		Description:              "Configure link previews for this server",
		DefaultMemberPermissions: &manageGuild,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "show",
				Description: "Show which preview features are enabled",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "enable",
				Description: "Enable a preview feature",
				Options:     []*discordgo.ApplicationCommandOption{featureOption},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "disable",
				Description: "Disable a preview feature",
				Options:     []*discordgo.ApplicationCommandOption{featureOption},
			},
		},
	}
}

func (h *SettingsHandler) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	if data.Name != settingsCommandName {
		return
	}
	if i.GuildID == "" {
		h.respond(s, i, "This command only works in a server.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]

	switch sub.Name {
	case "show":
		h.show(ctx, s, i)
	case "enable":
		h.toggle(ctx, s, i, sub, true)
	case "disable":
		h.toggle(ctx, s, i, sub, false)
	}
}

func (h *SettingsHandler) show(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	settings, err := h.Repo.GetGuildSettings(ctx, i.GuildID)
	if err != nil {
		h.Logger.Error("load guild settings", "guild", i.GuildID, "error", err)
		h.respond(s, i, "Could not load settings, try again later.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Link previews in this server:\n")
	for _, f := range botpkg.Features() {
		state := "disabled"
		if settings.Enabled(f) {
			state = "enabled"
		}
		fmt.Fprintf(&sb, "- %s: %s\n", featureLabel(f), state)
	}
	h.respond(s, i, sb.String())
}

func (h *SettingsHandler) toggle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption, on bool) {
	if len(sub.Options) == 0 {
		return
	}
	feature := sub.Options[0].StringValue()

	settings, err := h.Repo.GetGuildSettings(ctx, i.GuildID)
	if err != nil {
		h.Logger.Error("load guild settings", "guild", i.GuildID, "error", err)
		h.respond(s, i, "Could not load settings, try again later.")
		return
	}

	settings.SetEnabled(feature, on)
	settings.GuildID = i.GuildID
	if err := h.Repo.UpdateGuildSettings(ctx, settings); err != nil {
		h.Logger.Error("save guild settings", "guild", i.GuildID, "error", err)
		h.respond(s, i, "Could not save settings, try again later.")
		return
	}

	verb := "disabled"
	if on {
		verb = "enabled"
	}
	h.respond(s, i, fmt.Sprintf("%s previews %s.", featureLabel(feature), verb))
}

func (h *SettingsHandler) respond(s *discordgo.Session, i *discordgo.InteractionCreate, text string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: text,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		h.Logger.Warn("respond to command", "error", err)
	}
}

func featureLabel(feature string) string {
	switch feature {
	case botpkg.FeatureGitHub:
		return "GitHub code"
	case botpkg.FeatureMessageLinks:
		return "Message links"
	case botpkg.FeatureSpotify:
		return "Spotify tracks"
	default:
		return feature
	}
}
