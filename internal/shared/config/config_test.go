package config

import (
	"errors"
	"testing"

	"github.com/fugui-tools/filter-bot/internal/shared/domain"
	sharederrors "github.com/fugui-tools/filter-bot/internal/shared/errors"
)

func TestLoadMissingToken(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := Load()
	if !errors.Is(err, sharederrors.ErrMissingBotToken) {
		t.Fatalf("expected ErrMissingBotToken, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.TelegramBotToken != "123:abc" {
		t.Errorf("token = %q", cfg.TelegramBotToken)
	}
	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("mongo_uri = %q", cfg.MongoURI)
	}
	if cfg.MongoDatabase != "telegram_filter_bot" {
		t.Errorf("mongo_database = %q", cfg.MongoDatabase)
	}
	if cfg.ChannelsPageSize != 10 {
		t.Errorf("channels_page_size = %d", cfg.ChannelsPageSize)
	}
	if cfg.StatsWindowDays != 7 {
		t.Errorf("stats_window_days = %d", cfg.StatsWindowDays)
	}
	if cfg.AppEnv != domain.AppEnvProduction {
		t.Errorf("app_env = %q", cfg.AppEnv)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("MONGO_DATABASE", "filters_test")
	t.Setenv("APP_ENV", "Development")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.MongoDatabase != "filters_test" {
		t.Errorf("mongo_database = %q", cfg.MongoDatabase)
	}
	if cfg.AppEnv != domain.AppEnvDevelopment {
		t.Errorf("app_env = %q", cfg.AppEnv)
	}
}
