package commands

import (
	"cascade-bot/commands/defs"

	"github.com/bwmarrin/discordgo"
)

// GenerateCommands returns every application command the bot registers.
func GenerateCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		defs.Warn,
		defs.Mute,
		defs.Unmute,
		defs.Kick,
		defs.Ban,
		defs.Infractions,
		defs.MessageLogLookup,
		defs.GuildConfig,
		defs.BotInfo,
		defs.Ping,
		defs.ServerInfo,
		defs.UserInfo,
	}
}
