package bot

import (
	"cascade-bot/cache"
	"cascade-bot/model"
	"cascade-bot/moderation"
	"cascade-bot/utils/database"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

type Bot struct {
	Session            *discordgo.Session
	Config             *model.Config
	Store              *database.Store
	Cache              *cache.Manager // nil when redis is not configured
	Coordinator        *moderation.Coordinator
	Unmutes            *moderation.UnmuteScheduler
	Stats              *Stats
	Logger             *zap.Logger
	CommandHandlers    map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot)
	RegisteredCommands []*discordgo.ApplicationCommand
	done               chan struct{}
}

func New(cfg *model.Config, store *database.Store, cacheManager *cache.Manager, logger *zap.Logger) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentMessageContent
	dg.StateEnabled = true

	actor := NewActor(dg)
	unmutes := moderation.NewUnmuteScheduler(actor, store, logger)
	coordinator := moderation.NewCoordinator(actor, store, unmutes, logger)

	b := &Bot{
		Session:         dg,
		Config:          cfg,
		Store:           store,
		Cache:           cacheManager,
		Coordinator:     coordinator,
		Unmutes:         unmutes,
		Stats:           NewStats(),
		Logger:          logger,
		CommandHandlers: make(map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot)),
		done:            make(chan struct{}),
	}
	return b, nil
}

func (b *Bot) Close() {
	b.Logger.Info("gracefully shutting down")
	close(b.done)
	b.Unmutes.Stop()
	if b.Cache != nil {
		b.Cache.Close()
	}
	if err := b.Session.Close(); err != nil {
		b.Logger.Warn("failed to close session", zap.Error(err))
	}
}
