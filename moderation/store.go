package moderation

import "cascade-bot/model"

// Store is the persistence contract the coordinator depends on. The
// database package implements it over sqlite.
type Store interface {
	// AppendAction inserts one moderation-log row and returns its id.
	// The write is a single statement: either the row exists with an id
	// or the call errors.
	AppendAction(guildID, userID, moderatorID, actionType, reason string, durationSeconds int64) (int64, error)
	// IncrementWarningCount bumps the user's warning counter, creating
	// the user row with count 1 if it does not exist, and returns the
	// new count.
	IncrementWarningCount(userID string) (int64, error)
	ListActions(userID string) ([]model.ModerationAction, error)
	// GetServerConfig returns (nil, nil) when the guild has no config row.
	GetServerConfig(guildID string) (*model.ServerConfig, error)
	UpsertServerConfig(guildID string, patch model.ServerConfigPatch) error
}

// UnmuteStore persists pending unmutes so they survive restarts.
type UnmuteStore interface {
	AddPendingUnmute(task model.PendingUnmute) (int64, error)
	DeletePendingUnmute(id int64) error
	DeletePendingUnmuteByDetails(guildID, userID string) error
	ListPendingUnmutes() ([]model.PendingUnmute, error)
}

// Unmuter registers and cancels deferred role removals. Implemented by
// UnmuteScheduler.
type Unmuter interface {
	Schedule(task model.PendingUnmute) error
	Cancel(guildID, userID string) error
}
