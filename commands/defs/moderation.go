package defs

import "github.com/bwmarrin/discordgo"

var (
	manageMessages = int64(discordgo.PermissionManageMessages)
	manageRoles    = int64(discordgo.PermissionManageRoles)
	kickMembers    = int64(discordgo.PermissionKickMembers)
	banMembers     = int64(discordgo.PermissionBanMembers)
)

var Warn = &discordgo.ApplicationCommand{
	Name:                     "warn",
	Description:              "Warn a member and record the infraction",
	DefaultMemberPermissions: &manageMessages,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The member to warn",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the warning",
			Required:    false,
		},
	},
}

var Mute = &discordgo.ApplicationCommand{
	Name:                     "mute",
	Description:              "Mute a member for a duration (e.g. 1h, 30m, 1d2h)",
	DefaultMemberPermissions: &manageRoles,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The member to mute",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "duration",
			Description: "How long to mute for, e.g. 1h, 30m, 1d2h30m (max 28d)",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the mute",
			Required:    false,
		},
	},
}

var Unmute = &discordgo.ApplicationCommand{
	Name:                     "unmute",
	Description:              "Lift a member's mute early",
	DefaultMemberPermissions: &manageRoles,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The member to unmute",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for lifting the mute",
			Required:    false,
		},
	},
}

var Kick = &discordgo.ApplicationCommand{
	Name:                     "kick",
	Description:              "Kick a member from the server",
	DefaultMemberPermissions: &kickMembers,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The member to kick",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the kick",
			Required:    false,
		},
	},
}

var Ban = &discordgo.ApplicationCommand{
	Name:                     "ban",
	Description:              "Ban a member from the server",
	DefaultMemberPermissions: &banMembers,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The member to ban",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the ban",
			Required:    false,
		},
	},
}

var Infractions = &discordgo.ApplicationCommand{
	Name:                     "infractions",
	Description:              "Show a member's moderation history",
	DefaultMemberPermissions: &manageMessages,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The member to look up",
			Required:    true,
		},
	},
}

var MessageLogLookup = &discordgo.ApplicationCommand{
	Name:                     "messagelog",
	Description:              "Show the recorded history of a message",
	DefaultMemberPermissions: &manageMessages,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "message_id",
			Description: "ID of the message to look up",
			Required:    true,
		},
	},
}
