package handler

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"

	botpkg "github.com/embedbot/EmbedBot-Go/bot"
	"github.com/embedbot/EmbedBot-Go/bot/dialect"
)

const defaultHandleTimeout = 30 * time.Second

// MessageHandler scans incoming guild messages for recognized links and
// replies with previews.
type MessageHandler struct {
	Manager *dialect.Manager
	Repo    botpkg.SettingsRepository
	Pool    botpkg.WorkerPool
	Replier Replier
	Logger  botpkg.Logger
	Timeout time.Duration
}

// Handle enqueues preview work for one incoming message. It returns fast so
// the gateway read loop is never blocked on remote fetches.
func (h *MessageHandler) Handle(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m == nil || m.Author == nil || m.Author.Bot {
		return
	}
	if m.GuildID == "" || m.Content == "" {
		return
	}

	msg := m.Message
	if err := h.Pool.Submit(func() { h.process(s, msg) }); err != nil {
		h.Logger.Warn("preview work dropped", "channel", msg.ChannelID, "error", err)
	}
}

func (h *MessageHandler) process(s *discordgo.Session, m *discordgo.Message) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = defaultHandleTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	settings, err := h.Repo.GetGuildSettings(ctx, m.GuildID)
	if err != nil {
		h.Logger.Error("load guild settings", "guild", m.GuildID, "error", err)
		settings = h.Repo.Defaults()
	}

	trigger := dialect.Trigger{
		GuildID:     m.GuildID,
		ChannelID:   m.ChannelID,
		MessageID:   m.ID,
		AuthorID:    m.Author.ID,
		AuthorColor: memberColor(s, m.Author.ID, m.ChannelID),
	}

	for _, d := range h.Manager.Dialects() {
		if !settings.Enabled(d.Name()) {
			continue
		}
		for _, match := range d.Scan(m.Content) {
			h.handleMatch(ctx, d, trigger, match)
		}
	}
}

func (h *MessageHandler) handleMatch(ctx context.Context, d dialect.Dialect, trigger dialect.Trigger, match dialect.Match) {
	reply, err := d.Handle(ctx, trigger, match)
	if err != nil {
		h.logMatchError(d.Name(), trigger, err)
		return
	}
	if reply == nil {
		return
	}

	if err := h.Replier.Send(ctx, trigger, reply); err != nil {
		h.Logger.Error("send preview", "dialect", d.Name(), "channel", trigger.ChannelID, "error", err)
		return
	}

	if err := h.Repo.IncrementStat(ctx, botpkg.StatPreviewsSent(d.Name()), 1); err != nil {
		h.Logger.Warn("record preview stat", "dialect", d.Name(), "error", err)
	}
}

// logMatchError keeps one match's failure from being noisier than it needs
// to be. Expected conditions, like links to private or deleted content, log
// at debug; real faults log at warn.
func (h *MessageHandler) logMatchError(name string, trigger dialect.Trigger, err error) {
	switch {
	case errors.Is(err, dialect.ErrNotFound),
		errors.Is(err, dialect.ErrForbidden),
		errors.Is(err, dialect.ErrTooLarge):
		h.Logger.Debug("preview skipped", "dialect", name, "channel", trigger.ChannelID, "reason", err)
	case errors.Is(err, dialect.ErrInvalidCredential):
		h.Logger.Error("credential rejected", "dialect", name, "error", err)
	default:
		h.Logger.Warn("preview failed", "dialect", name, "channel", trigger.ChannelID, "error", err)
	}
}

// memberColor returns the trigger author's role color, used to tint quote
// cards. A nil session or missing state yields the zero color.
func memberColor(s *discordgo.Session, userID, channelID string) int {
	if s == nil || s.State == nil {
		return 0
	}
	return s.State.UserColor(userID, channelID)
}
