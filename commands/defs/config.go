package defs

import "github.com/bwmarrin/discordgo"

var manageGuild = int64(discordgo.PermissionManageServer)

var GuildConfig = &discordgo.ApplicationCommand{
	Name:                     "config",
	Description:              "View or change this server's bot configuration",
	DefaultMemberPermissions: &manageGuild,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "view",
			Description: "Show the current configuration",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "set",
			Description: "Change one or more settings",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "mod_role",
					Description: "Role granted moderator permissions",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "admin_role",
					Description: "Role granted admin permissions",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "mute_role",
					Description: "Role applied to muted members",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "log_channel",
					Description: "Channel for message logs",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "mod_log_channel",
					Description: "Channel for moderation action logs",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "welcome_channel",
					Description: "Channel for welcome messages",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "prefix",
					Description: "Legacy text command prefix",
					Required:    false,
				},
			},
		},
	},
}
