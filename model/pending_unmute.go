package model

import "time"

// PendingUnmute is a deferred role removal for a timed mute. Rows survive
// restarts; the scheduler re-arms them at startup and fires any whose
// FireAt is already in the past.
type PendingUnmute struct {
	ID      int64     `db:"id"`
	GuildID string    `db:"guild_id"`
	UserID  string    `db:"user_id"`
	RoleID  string    `db:"role_id"`
	FireAt  time.Time `db:"fire_at"`
}
