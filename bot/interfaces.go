package bot

import "context"

// Logger is the minimal logging abstraction used across modules.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// SettingsRepository defines storage for per-guild preview toggles and
// aggregate counters.
type SettingsRepository interface {
	GetGuildSettings(ctx context.Context, guildID string) (*GuildSettings, error)
	UpdateGuildSettings(ctx context.Context, settings *GuildSettings) error
	Defaults() *GuildSettings
	IncrementStat(ctx context.Context, key string, delta int64) error
	GetStat(ctx context.Context, key string) (int64, error)
}

// WorkerPool limits concurrency for message enrichment tasks.
type WorkerPool interface {
	Submit(task func()) error
	Shutdown(ctx context.Context) error
	Size() int
}
