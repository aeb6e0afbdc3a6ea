package model

// Action types recorded in the moderation log.
const (
	ActionWarn   = "warn"
	ActionMute   = "mute"
	ActionKick   = "kick"
	ActionBan    = "ban"
	ActionUnmute = "unmute"
)

// MaxReasonDisplayLength caps how much of a reason is rendered in embeds.
const MaxReasonDisplayLength = 1000

// ModerationAction is a single immutable row in the moderation log.
// Rows are only ever inserted, never updated or deleted.
type ModerationAction struct {
	ID          int64  `db:"id"` // Primary Key, Auto-increment
	GuildID     string `db:"guild_id"`
	UserID      string `db:"user_id"`
	ModeratorID string `db:"moderator_id"`
	ActionType  string `db:"action_type"`
	Reason      string `db:"reason"`
	// DurationSeconds is set for mutes only; 0 means no duration.
	DurationSeconds int64 `db:"duration_seconds"`
	CreatedAt       int64 `db:"created_at"` // Unix seconds, set at insert
}
