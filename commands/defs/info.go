package defs

import "github.com/bwmarrin/discordgo"

var BotInfo = &discordgo.ApplicationCommand{
	Name:        "botinfo",
	Description: "Display bot and system status information",
}

var Ping = &discordgo.ApplicationCommand{
	Name:        "ping",
	Description: "Check the bot's gateway latency",
}

var ServerInfo = &discordgo.ApplicationCommand{
	Name:        "serverinfo",
	Description: "Display information about this server",
}

var UserInfo = &discordgo.ApplicationCommand{
	Name:        "userinfo",
	Description: "Display information about a member",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The member to look up (defaults to you)",
			Required:    false,
		},
	},
}
