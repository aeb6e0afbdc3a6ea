package config

import (
	"errors"
	"fmt"
	"strings"

	"cascade-bot/model"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional .env file, an optional
// config.yaml, and environment variables. Environment variables win.
func Load() (*model.Config, error) {
	// Missing .env is fine; environment variables are enough.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./data")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", "info")
	v.SetDefault("database_path", "./data/cascade.db")
	v.SetDefault("redis_db", 0)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &model.Config{
		BotToken:      v.GetString("bot_token"),
		OwnerUserID:   v.GetString("owner_user_id"),
		LogChannelID:  v.GetString("log_channel_id"),
		LogLevel:      v.GetString("log_level"),
		DatabasePath:  v.GetString("database_path"),
		RedisAddr:     v.GetString("redis_addr"),
		RedisUsername: v.GetString("redis_username"),
		RedisPassword: v.GetString("redis_password"),
		RedisDB:       v.GetInt("redis_db"),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *model.Config) error {
	var errs []string
	if strings.TrimSpace(cfg.BotToken) == "" {
		errs = append(errs, "BOT_TOKEN is required")
	}
	if strings.TrimSpace(cfg.DatabasePath) == "" {
		errs = append(errs, "DATABASE_PATH must not be empty")
	}
	if cfg.RedisDB < 0 {
		errs = append(errs, "REDIS_DB must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
