package database

import (
	"fmt"
	"time"

	"cascade-bot/model"
)

// AppendAction inserts one moderation-log row and returns its assigned id.
// The log is append-only; rows are never updated or deleted.
func (s *Store) AppendAction(guildID, userID, moderatorID, actionType, reason string, durationSeconds int64) (int64, error) {
	query := `INSERT INTO moderation_logs (guild_id, user_id, moderator_id, action_type, reason, duration_seconds, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := s.db.Exec(query, guildID, userID, moderatorID, actionType, reason, durationSeconds, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to insert moderation action: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	return id, nil
}

// ListActions returns a user's moderation history, most recent first.
func (s *Store) ListActions(userID string) ([]model.ModerationAction, error) {
	var actions []model.ModerationAction
	query := "SELECT * FROM moderation_logs WHERE user_id = ? ORDER BY created_at DESC, id DESC"
	if err := s.db.Select(&actions, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get moderation actions for user %s: %w", userID, err)
	}
	return actions, nil
}

// CountActionsByGuild returns the number of logged actions for a guild since
// the given time.
func (s *Store) CountActionsByGuild(guildID string, since time.Time) (int64, error) {
	var count int64
	query := "SELECT COUNT(*) FROM moderation_logs WHERE guild_id = ? AND created_at >= ?"
	if err := s.db.Get(&count, query, guildID, since.Unix()); err != nil {
		return 0, fmt.Errorf("failed to count moderation actions for guild %s: %w", guildID, err)
	}
	return count, nil
}
