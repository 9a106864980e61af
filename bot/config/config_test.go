package config

import (
	"os"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "test_config_*.ini")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := tmpFile.Close(); err != nil {
		t.Fatalf("close config: %v", err)
	}
	return tmpFile.Name()
}

func TestLoadDefaults(t *testing.T) {
	path := writeTempConfig(t, "BotToken = test_token\n")

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if got := conf.GetString("BotToken"); got != "test_token" {
		t.Fatalf("BotToken = %q, want test_token", got)
	}
	if got := conf.GetString("LogLevel"); got != "info" {
		t.Fatalf("LogLevel default = %q, want info", got)
	}
	if got := conf.GetInt("WorkerPoolSize"); got != 4 {
		t.Fatalf("WorkerPoolSize default = %d, want 4", got)
	}
	if got := conf.GetFloat64("RateLimitPerSecond"); got != 1.0 {
		t.Fatalf("RateLimitPerSecond default = %v, want 1.0", got)
	}
}

func TestPluginSections(t *testing.T) {
	path := writeTempConfig(t, `BotToken = test_token
LogLevel = debug

[plugins.github]
token = ghp_example
enabled = true

[plugins.spotify]
client_id = spotify_client
client_secret = spotify_secret
enabled = false
`)

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	names := conf.PluginNames()
	if len(names) != 2 || names[0] != "github" || names[1] != "spotify" {
		t.Fatalf("PluginNames() = %v", names)
	}

	if got := conf.GetPluginString("github", "token"); got != "ghp_example" {
		t.Fatalf("github token = %q", got)
	}
	if !conf.GetPluginBool("github", "enabled") {
		t.Fatalf("github should be enabled")
	}
	if conf.GetPluginBool("spotify", "enabled") {
		t.Fatalf("spotify should be disabled")
	}
	if got := conf.GetPluginString("spotify", "client_secret"); got != "spotify_secret" {
		t.Fatalf("spotify client_secret = %q", got)
	}
	if got := conf.GetPluginString("missing", "key"); got != "" {
		t.Fatalf("missing plugin key = %q, want empty", got)
	}
}
