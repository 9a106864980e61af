package discord

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"

	botpkg "github.com/embedbot/EmbedBot-Go/bot"
	"github.com/embedbot/EmbedBot-Go/bot/config"
)

// Bot wraps discordgo with application configuration.
type Bot struct {
	session *discordgo.Session
	config  *config.Config
	logger  botpkg.Logger
}

// New creates a new Discord gateway client. The session is configured but
// not yet connected; handlers are attached before Start opens the gateway.
func New(cfg *config.Config, logger botpkg.Logger) (*Bot, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	token := cfg.GetString("BotToken")
	if token == "" {
		return nil, fmt.Errorf("BotToken required")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	// Message content is a privileged intent and has to be enabled for the
	// application in the developer portal as well.
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	session.Client = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   20,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	session.State.MaxMessageCount = 200

	return &Bot{
		session: session,
		config:  cfg,
		logger:  logger,
	}, nil
}

// Session exposes the underlying discordgo session for handler wiring.
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

// Start opens the gateway connection.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	b.logger.Info("gateway connected", "user", b.session.State.User.String())
	return nil
}

// Stop closes the gateway connection.
func (b *Bot) Stop() error {
	return b.session.Close()
}
