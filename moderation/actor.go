package moderation

// Member is the resolved view of a guild member that moderation decisions
// depend on.
type Member struct {
	UserID string
	// Roles are the member's role IDs.
	Roles []string
	// TopRoleRank is the position of the member's highest role. Higher
	// outranks lower; the @everyone baseline is rank 0.
	TopRoleRank int
}

// Role is a guild role as seen by the moderation core.
type Role struct {
	ID   string
	Name string
	Rank int
}

// Channel types relevant for mute-role overrides.
const (
	ChannelText  = "text"
	ChannelVoice = "voice"
)

// Channel is a guild channel as seen by the moderation core.
type Channel struct {
	ID   string
	Type string
}

// MuteDeny describes which permissions the muted role blocks in a channel.
type MuteDeny struct {
	SendMessages bool
	AddReactions bool
	Speak        bool
	Connect      bool
}

// Actor performs the platform side effects of moderation actions. The
// bot package adapts a discordgo session to this interface; tests
// substitute fakes.
type Actor interface {
	// ResolveMember returns the member, or (nil, nil) if the user is not
	// in the guild.
	ResolveMember(guildID, userID string) (*Member, error)
	GuildOwnerID(guildID string) (string, error)
	GuildRoles(guildID string) ([]Role, error)
	GuildChannels(guildID string) ([]Channel, error)
	CreateRole(guildID, name string) (string, error)
	SetChannelPermissionOverride(channelID, roleID string, deny MuteDeny) error
	AddRole(guildID, userID, roleID string) error
	RemoveRole(guildID, userID, roleID string) error
	Kick(guildID, userID, reason string) error
	Ban(guildID, userID, reason string) error
	// SendDirectNotification delivers a DM. Callers treat failures as
	// best-effort and never surface them.
	SendDirectNotification(userID, content string) error
}
