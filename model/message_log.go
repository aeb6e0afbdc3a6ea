package model

// Message log action types.
const (
	MessageActionDelete = "delete"
	MessageActionEdit   = "edit"
)

// MessageLog records a deleted or edited message for later review.
type MessageLog struct {
	ID         int64  `db:"id"`
	GuildID    string `db:"guild_id"`
	ChannelID  string `db:"channel_id"`
	UserID     string `db:"user_id"`
	MessageID  string `db:"message_id"`
	Content    string `db:"content"`
	ActionType string `db:"action_type"`
	CreatedAt  int64  `db:"created_at"` // Unix seconds
}
