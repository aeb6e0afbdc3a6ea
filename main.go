package main

import (
	"log"

	"cascade-bot/bot"
	"cascade-bot/cache"
	"cascade-bot/config"
	"cascade-bot/handlers"
	"cascade-bot/logger"
	"cascade-bot/utils/database"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	store, err := database.Init(cfg.DatabasePath)
	if err != nil {
		zl.Fatal("failed to initialize database", zap.Error(err))
	}
	defer store.Close()

	var cacheManager *cache.Manager
	if cfg.RedisAddr != "" {
		cacheManager, err = cache.NewManager(cache.Options{
			Addr:     cfg.RedisAddr,
			Username: cfg.RedisUsername,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, zl)
		if err != nil {
			zl.Fatal("failed to connect to redis", zap.Error(err))
		}
	}

	b, err := bot.New(cfg, store, cacheManager, zl)
	if err != nil {
		zl.Fatal("failed to create bot", zap.Error(err))
	}
	handlers.Register(b)

	defer b.Close()
	if err := b.Run(); err != nil {
		zl.Fatal("bot terminated", zap.Error(err))
	}
}
