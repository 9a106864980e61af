package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/embedbot/EmbedBot-Go/bot"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Repository provides access to the settings database.
type Repository struct {
	db       *gorm.DB
	defaults bot.GuildSettings
}

// NewSQLiteRepository creates a repository backed by SQLite.
func NewSQLiteRepository(dsn string, gormLogger logger.Interface) (*Repository, error) {
	if dsn == "" {
		return nil, fmt.Errorf("dsn required")
	}

	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	dbDir := filepath.Dir(dsn)
	if dbDir != "" && dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 gormLogger,
	})
	if err != nil {
		return nil, err
	}

	if err := applySQLitePragmas(db); err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&GuildSettingsModel{}, &BotStatModel{}); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Repository{
		db: db,
		defaults: bot.GuildSettings{
			GitHub:       true,
			MessageLinks: true,
			Spotify:      true,
		},
	}, nil
}

// ConfigurePool adjusts the SQL connection pool.
func (r *Repository) ConfigurePool(maxOpen, maxIdle int, maxLifetime time.Duration) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		sqlDB.SetMaxIdleConns(maxIdle)
	}
	if maxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(maxLifetime)
	}
	return nil
}

// SetDefaults configures the toggles applied to guilds seen for the first
// time (and to direct messages, which have no guild row).
func (r *Repository) SetDefaults(github, messageLinks, spotify bool) {
	r.defaults.GitHub = github
	r.defaults.MessageLinks = messageLinks
	r.defaults.Spotify = spotify
}

// Defaults returns a copy of the default settings snapshot.
func (r *Repository) Defaults() *bot.GuildSettings {
	defaults := r.defaults
	return &defaults
}

// GetGuildSettings returns the settings row for a guild, creating it with
// defaults on first access.
func (r *Repository) GetGuildSettings(ctx context.Context, guildID string) (*bot.GuildSettings, error) {
	guildID = strings.TrimSpace(guildID)
	if guildID == "" {
		return r.Defaults(), nil
	}

	var model GuildSettingsModel
	err := r.db.WithContext(ctx).Where("guild_id = ?", guildID).First(&model).Error
	if err == nil {
		return toInternal(model), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	model = GuildSettingsModel{
		GuildID:      guildID,
		GitHub:       r.defaults.GitHub,
		MessageLinks: r.defaults.MessageLinks,
		Spotify:      r.defaults.Spotify,
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoNothing: true,
	}).Create(&model).Error; err != nil {
		return nil, err
	}

	// Re-read to cover the conflict path where another writer won the race.
	if err := r.db.WithContext(ctx).Where("guild_id = ?", guildID).First(&model).Error; err != nil {
		return nil, err
	}
	return toInternal(model), nil
}

// UpdateGuildSettings persists the per-guild toggles.
func (r *Repository) UpdateGuildSettings(ctx context.Context, settings *bot.GuildSettings) error {
	if settings == nil || strings.TrimSpace(settings.GuildID) == "" {
		return fmt.Errorf("guild id required")
	}

	model := toModel(settings)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"github", "message_links", "spotify", "updated_at"}),
	}).Create(model).Error
}

// IncrementStat adds delta to a named counter, creating it when missing.
func (r *Repository) IncrementStat(ctx context.Context, key string, delta int64) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("stat key required")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"value": gorm.Expr("bot_stats.value + ?", delta)}),
	}).Create(&BotStatModel{Key: key, Value: delta}).Error
}

// GetStat returns the value of a named counter, 0 when missing.
func (r *Repository) GetStat(ctx context.Context, key string) (int64, error) {
	var model BotStatModel
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return model.Value, nil
}

// Close releases the underlying database handle.
func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func applySQLitePragmas(db *gorm.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, stmt := range pragmas {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
