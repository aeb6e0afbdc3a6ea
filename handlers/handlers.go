package handlers

import (
	"context"
	"log"
	"time"

	"cascade-bot/bot"
	"cascade-bot/handlers/guildconfig"
	"cascade-bot/handlers/info"
	"cascade-bot/handlers/msglog"
	"cascade-bot/handlers/punish"
	"cascade-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// commandCooldown is the minimum spacing between command invocations per
// user. Only enforced when the cache is available.
const commandCooldown = 3 * time.Second

// Register wires all command and gateway event handlers onto the bot.
func Register(b *bot.Bot) {
	b.CommandHandlers = commandHandlers()
	addHandlers(b)
}

func commandHandlers() map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot){
		"warn":        punish.HandleWarnCommand,
		"mute":        punish.HandleMuteCommand,
		"unmute":      punish.HandleUnmuteCommand,
		"kick":        punish.HandleKickCommand,
		"ban":         punish.HandleBanCommand,
		"infractions": punish.HandleInfractionsCommand,
		"messagelog":  msglog.HandleMessageLogCommand,
		"config":      guildconfig.HandleConfigCommand,
		"botinfo":     info.HandleBotInfoCommand,
		"ping":        info.HandlePingCommand,
		"serverinfo":  info.HandleServerInfoCommand,
		"userinfo":    info.HandleUserInfoCommand,
	}
}

func addHandlers(b *bot.Bot) {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
		if b.Config.LogChannelID != "" {
			if _, err := s.ChannelMessageSend(b.Config.LogChannelID, "Bot has started successfully."); err != nil {
				log.Printf("Failed to send startup message: %v", err)
			}
		}
	})

	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if i.Member == nil || i.Member.User == nil {
			// Guild commands only; DM invocations have no member.
			return
		}
		name := i.ApplicationCommandData().Name
		h, ok := b.CommandHandlers[name]
		if !ok {
			return
		}
		if b.Cache != nil {
			ctx := context.Background()
			userID := i.Member.User.ID
			if active, err := b.Cache.OnCooldown(ctx, userID, name); err == nil && active {
				utils.SendErrorResponse(s, i, "You're doing that too fast. Try again in a moment.")
				return
			}
			if err := b.Cache.SetCooldown(ctx, userID, name, commandCooldown); err != nil {
				log.Printf("Failed to set cooldown for user %s: %v", userID, err)
			}
		}
		b.Stats.CommandsExecuted.Add(1)
		h(s, i, b)
	})

	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		msglog.HandleMessageCreate(s, m, b)
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageDelete) {
		msglog.HandleMessageDelete(s, m, b)
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageUpdate) {
		msglog.HandleMessageUpdate(s, m, b)
	})
}
