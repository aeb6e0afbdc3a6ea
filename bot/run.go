package bot

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cascade-bot/commands"
	"cascade-bot/utils"

	"go.uber.org/zap"
)

func (b *Bot) Run() error {
	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway connection: %w", err)
	}
	b.Coordinator.SetSelfID(b.Session.State.User.ID)

	b.Logger.Info("registering application commands")
	cmds := commands.GenerateCommands()
	registered, err := b.Session.ApplicationCommandBulkOverwrite(b.Session.State.User.ID, "", cmds)
	if err != nil {
		return fmt.Errorf("failed to register application commands: %w", err)
	}
	b.RegisteredCommands = registered
	b.Logger.Info("registered application commands", zap.Int("count", len(registered)))

	b.startBackgroundTasks()

	if b.Config.OwnerUserID != "" {
		utils.SendPrivateMessage(b.Session, b.Config.OwnerUserID, "Bot is up.")
	}

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	return nil
}
