package model

// ServerConfig is the per-guild configuration row. It is created on first
// write and merged field-by-field on later updates.
type ServerConfig struct {
	GuildID          string `db:"guild_id"` // Primary Key
	Prefix           string `db:"prefix"`
	ModRoleID        string `db:"mod_role_id"`
	AdminRoleID      string `db:"admin_role_id"`
	MuteRoleID       string `db:"mute_role_id"`
	LogChannelID     string `db:"log_channel_id"`
	ModLogChannelID  string `db:"mod_log_channel_id"`
	WelcomeChannelID string `db:"welcome_channel_id"`
}

// ServerConfigPatch carries a partial server-config update. Nil fields keep
// their previous value (or the column default on first insert).
type ServerConfigPatch struct {
	Prefix           *string
	ModRoleID        *string
	AdminRoleID      *string
	MuteRoleID       *string
	LogChannelID     *string
	ModLogChannelID  *string
	WelcomeChannelID *string
}

// Config stores the application configuration.
type Config struct {
	BotToken     string
	OwnerUserID  string
	LogChannelID string
	LogLevel     string

	DatabasePath string

	RedisAddr     string
	RedisUsername string
	RedisPassword string
	RedisDB       int
}
