package spotify

import (
	"fmt"

	"github.com/embedbot/EmbedBot-Go/bot/config"
	"github.com/embedbot/EmbedBot-Go/bot/dialect/plugins"
	logpkg "github.com/embedbot/EmbedBot-Go/bot/logger"
)

func init() {
	if err := plugins.Register(Name, buildContribution); err != nil {
		panic(err)
	}
}

func buildContribution(cfg *config.Config, logger *logpkg.Logger) (*plugins.Contribution, error) {
	clientID := cfg.GetPluginString(Name, "client_id")
	clientSecret := cfg.GetPluginString(Name, "client_secret")
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("spotify plugin requires client_id and client_secret")
	}
	return &plugins.Contribution{
		Dialect: New(clientID, clientSecret, logger.With("plugin", Name)),
	}, nil
}
