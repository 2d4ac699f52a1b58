package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fugui-tools/filter-bot/internal/shared/domain"
	"github.com/fugui-tools/filter-bot/internal/shared/errors"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

type Config struct {
	TelegramBotToken string        `koanf:"telegram_bot_token"`
	TelegramAPIURL   string        `koanf:"telegram_api_url"`
	MongoURI         string        `koanf:"mongo_uri"`
	MongoDatabase    string        `koanf:"mongo_database"`
	HTTPPort         string        `koanf:"http_port"`
	ChannelsPageSize int           `koanf:"channels_page_size"`
	StatsWindowDays  int           `koanf:"stats_window_days"`
	AppEnv           domain.AppEnv `koanf:"app_env"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try to load config file from various formats
	configFiles := []string{
		"config.yaml",
		"config.yml",
		"config.json",
		"config.toml",
	}

	// Use lo.Find to find the first existing config file
	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Load environment variables (they override config file values)
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	// Set defaults
	if !k.Exists("telegram_api_url") {
		k.Set("telegram_api_url", "https://api.telegram.org")
	}
	if !k.Exists("mongo_uri") {
		k.Set("mongo_uri", "mongodb://localhost:27017")
	}
	if !k.Exists("mongo_database") {
		k.Set("mongo_database", "telegram_filter_bot")
	}
	if !k.Exists("http_port") {
		k.Set("http_port", "8080")
	}
	if !k.Exists("channels_page_size") {
		k.Set("channels_page_size", 10)
	}
	if !k.Exists("stats_window_days") {
		k.Set("stats_window_days", 7)
	}
	if !k.Exists("app_env") {
		k.Set("app_env", "production")
	}

	// Unmarshal into struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	// Parse AppEnv from string if needed
	if appEnvStr := k.String("app_env"); appEnvStr != "" {
		if env, err := domain.ParseAppEnv(appEnvStr); err == nil {
			cfg.AppEnv = env
		} else {
			cfg.AppEnv = domain.AppEnvProduction
		}
	} else {
		cfg.AppEnv = domain.AppEnvProduction
	}

	if cfg.ChannelsPageSize < 1 {
		cfg.ChannelsPageSize = 10
	}
	if cfg.StatsWindowDays < 1 {
		cfg.StatsWindowDays = 7
	}

	// Validate required fields
	if cfg.TelegramBotToken == "" {
		return nil, errors.ErrMissingBotToken
	}

	return &cfg, nil
}
