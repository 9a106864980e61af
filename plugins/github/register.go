package github

import (
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
	token := cfg.GetPluginString(Name, "token")
	if token == "" {
		logger.Info("github plugin running unauthenticated, api rate limits apply")
	}
	return &plugins.Contribution{
		Dialect: New(token, logger.With("plugin", Name)),
	}, nil
}
