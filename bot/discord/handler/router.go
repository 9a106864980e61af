package handler

import (
	"github.com/bwmarrin/discordgo"

	botpkg "github.com/embedbot/EmbedBot-Go/bot"
)

// Router attaches all gateway handlers to a session and registers the
// application commands once the gateway reports ready.
type Router struct {
	Message  *MessageHandler
	Delete   *DeleteHandler
	Settings *SettingsHandler
	Logger   botpkg.Logger
}

func (r *Router) Attach(session *discordgo.Session) {
	session.AddHandler(r.Message.Handle)
	session.AddHandler(r.Delete.Handle)
	session.AddHandler(r.Settings.Handle)
	session.AddHandler(r.onReady)
}

func (r *Router) onReady(s *discordgo.Session, _ *discordgo.Ready) {
	commands := []*discordgo.ApplicationCommand{Command()}
	if _, err := s.ApplicationCommandBulkOverwrite(s.State.User.ID, "", commands); err != nil {
		r.Logger.Error("register application commands", "error", err)
		return
	}
	r.Logger.Info("application commands registered", "count", len(commands))
}
