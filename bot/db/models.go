package db

import (
	"github.com/embedbot/EmbedBot-Go/bot"
	"gorm.io/gorm"
)

// GuildSettingsModel mirrors the guild_settings schema.
type GuildSettingsModel struct {
	gorm.Model
	GuildID      string `gorm:"uniqueIndex;not null"`
	GitHub       bool   `gorm:"column:github;not null;default:true"`
	MessageLinks bool   `gorm:"not null;default:true"`
	Spotify      bool   `gorm:"not null;default:true"`
}

func (GuildSettingsModel) TableName() string {
	return "guild_settings"
}

// BotStatModel stores aggregated preview counters.
type BotStatModel struct {
	gorm.Model
	Key   string `gorm:"uniqueIndex;not null"`
	Value int64
}

func (BotStatModel) TableName() string {
	return "bot_stats"
}

func toInternal(model GuildSettingsModel) *bot.GuildSettings {
	return &bot.GuildSettings{
		ID:           model.ID,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
		GuildID:      model.GuildID,
		GitHub:       model.GitHub,
		MessageLinks: model.MessageLinks,
		Spotify:      model.Spotify,
	}
}

func toModel(settings *bot.GuildSettings) *GuildSettingsModel {
	if settings == nil {
		return &GuildSettingsModel{}
	}

	model := &GuildSettingsModel{
		GuildID:      settings.GuildID,
		GitHub:       settings.GitHub,
		MessageLinks: settings.MessageLinks,
		Spotify:      settings.Spotify,
	}

	if settings.ID != 0 {
		model.ID = settings.ID
	}
	if !settings.CreatedAt.IsZero() {
		model.CreatedAt = settings.CreatedAt
	}
	if !settings.UpdatedAt.IsZero() {
		model.UpdatedAt = settings.UpdatedAt
	}

	return model
}
