package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/embedbot/EmbedBot-Go/bot"
	"github.com/embedbot/EmbedBot-Go/bot/config"
	"github.com/embedbot/EmbedBot-Go/bot/db"
	"github.com/embedbot/EmbedBot-Go/bot/dialect"
	dialectplugins "github.com/embedbot/EmbedBot-Go/bot/dialect/plugins"
	"github.com/embedbot/EmbedBot-Go/bot/discord"
	"github.com/embedbot/EmbedBot-Go/bot/discord/handler"
	logpkg "github.com/embedbot/EmbedBot-Go/bot/logger"
	"github.com/embedbot/EmbedBot-Go/bot/worker"
	gormlogger "gorm.io/gorm/logger"
)

// App wires all application dependencies.
type App struct {
	Config  *config.Config
	Logger  *logpkg.Logger
	DB      *db.Repository
	Pool    *worker.Pool
	Manager *dialect.Manager
	Discord *discord.Bot
	Build   BuildInfo
}

// BuildInfo provides build-time metadata.
type BuildInfo struct {
	RuntimeVer string
	BinVersion string
	CommitSHA  string
	BuildTime  string
	BuildArch  string
}

// New builds the application container.
func New(ctx context.Context, configPath string, build BuildInfo) (*App, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logpkg.New(conf.GetString("LogLevel"), conf.GetString("LogFormat"), conf.GetBool("LogSource"))
	if err != nil {
		return nil, err
	}

	gormLogger := logpkg.NewGormLogger(log.Slog(), mapGormLevel(conf.GetString("GormLogLevel")))
	databasePath := strings.TrimSpace(conf.GetString("Database"))
	if databasePath == "" {
		databasePath = "settings.db"
	}

	repo, err := db.NewSQLiteRepository(databasePath, gormLogger)
	if err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}
	poolMaxOpen := conf.GetInt("DBMaxOpenConns")
	poolMaxIdle := conf.GetInt("DBMaxIdleConns")
	poolMaxLifetimeSec := conf.GetInt("DBConnMaxLifetimeSec")
	if err := repo.ConfigurePool(poolMaxOpen, poolMaxIdle, time.Duration(poolMaxLifetimeSec)*time.Second); err != nil {
		return nil, fmt.Errorf("configure db pool: %w", err)
	}
	repo.SetDefaults(
		defaultToggle(conf, bot.FeatureGitHub),
		defaultToggle(conf, bot.FeatureMessageLinks),
		defaultToggle(conf, bot.FeatureSpotify),
	)

	pool := worker.New(conf.GetInt("WorkerPoolSize"))

	manager := dialect.NewManager()
	pluginNames := conf.PluginNames()
	if len(pluginNames) == 0 {
		pluginNames = dialectplugins.Names()
	}
	for _, name := range pluginNames {
		enabled := true
		if pluginCfg, ok := conf.GetPluginConfig(name); ok {
			if _, hasKey := pluginCfg["enabled"]; hasKey {
				enabled = conf.GetPluginBool(name, "enabled")
			}
		}
		if !enabled {
			log.Info("plugin disabled by config", "plugin", name)
			continue
		}

		factory, ok := dialectplugins.Get(name)
		if !ok {
			log.Warn("plugin not registered", "plugin", name)
			continue
		}

		contrib, err := factory(conf, log)
		if err != nil {
			log.Error("plugin init failed", "plugin", name, "error", err)
			continue
		}
		if contrib == nil || contrib.Dialect == nil {
			continue
		}
		if err := manager.Register(contrib.Dialect); err != nil {
			log.Error("plugin register failed", "plugin", name, "error", err)
		}
	}

	dc, err := discord.New(conf, log)
	if err != nil {
		return nil, fmt.Errorf("init discord: %w", err)
	}

	// Dialects needing the live session get it now that one exists.
	source := discord.NewMessageSource(dc.Session())
	for _, d := range manager.Dialects() {
		if binder, ok := d.(dialect.SourceBinder); ok {
			binder.BindMessageSource(source)
		}
	}

	return &App{
		Config:  conf,
		Logger:  log,
		DB:      repo,
		Pool:    pool,
		Manager: manager,
		Discord: dc,
		Build:   build,
	}, nil
}

// Start attaches handlers and opens the gateway connection.
func (a *App) Start(ctx context.Context) error {
	rateLimitPerSecond := a.Config.GetFloat64("RateLimitPerSecond")
	if rateLimitPerSecond <= 0 {
		rateLimitPerSecond = 1.0
	}
	rateLimitBurst := a.Config.GetInt("RateLimitBurst")
	if rateLimitBurst <= 0 {
		rateLimitBurst = 3
	}
	rateLimiter := discord.NewRateLimiter(rateLimitPerSecond, rateLimitBurst)

	replier := &handler.SessionReplier{
		Session: a.Discord.Session(),
		Limiter: rateLimiter,
	}

	router := &handler.Router{
		Message: &handler.MessageHandler{
			Manager: a.Manager,
			Repo:    a.DB,
			Pool:    a.Pool,
			Replier: replier,
			Logger:  a.Logger,
			Timeout: time.Duration(a.Config.GetInt("HandleTimeoutSec")) * time.Second,
		},
		Delete:   &handler.DeleteHandler{Logger: a.Logger},
		Settings: &handler.SettingsHandler{Repo: a.DB, Logger: a.Logger},
		Logger:   a.Logger,
	}
	router.Attach(a.Discord.Session())

	if err := a.Discord.Start(); err != nil {
		return err
	}

	a.Logger.Info("embedbot started",
		"version", a.Build.BinVersion,
		"commit", a.Build.CommitSHA,
		"runtime", a.Build.RuntimeVer,
		"dialects", len(a.Manager.Dialects()),
	)
	return nil
}

// Shutdown stops the gateway, drains in-flight work and closes storage.
func (a *App) Shutdown(ctx context.Context) error {
	var firstErr error
	if err := a.Discord.Stop(); err != nil {
		firstErr = err
	}
	if err := a.Pool.Shutdown(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := a.DB.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := a.Logger.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// defaultToggle reads the initial per-guild default for one feature. The
// key lives in the feature's [plugins.*] section as default_enabled and
// falls back to on.
func defaultToggle(conf *config.Config, feature string) bool {
	if pluginCfg, ok := conf.GetPluginConfig(feature); ok {
		if _, hasKey := pluginCfg["default_enabled"]; hasKey {
			return conf.GetPluginBool(feature, "default_enabled")
		}
	}
	return true
}

func mapGormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
