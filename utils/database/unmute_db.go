package database

import (
	"fmt"

	"cascade-bot/model"
)

// AddPendingUnmute inserts a pending unmute row and returns its id.
func (s *Store) AddPendingUnmute(task model.PendingUnmute) (int64, error) {
	query := `INSERT INTO pending_unmutes (guild_id, user_id, role_id, fire_at)
	          VALUES (?, ?, ?, ?)`
	result, err := s.db.Exec(query, task.GuildID, task.UserID, task.RoleID, task.FireAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert pending unmute: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	return id, nil
}

// DeletePendingUnmute removes a pending unmute by id. Deleting an already
// removed row is not an error.
func (s *Store) DeletePendingUnmute(id int64) error {
	if _, err := s.db.Exec("DELETE FROM pending_unmutes WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete pending unmute %d: %w", id, err)
	}
	return nil
}

// DeletePendingUnmuteByDetails removes any pending unmutes for a guild
// member. Used when the mute is lifted by hand.
func (s *Store) DeletePendingUnmuteByDetails(guildID, userID string) error {
	if _, err := s.db.Exec("DELETE FROM pending_unmutes WHERE guild_id = ? AND user_id = ?", guildID, userID); err != nil {
		return fmt.Errorf("failed to delete pending unmutes for user %s in guild %s: %w", userID, guildID, err)
	}
	return nil
}

// ListPendingUnmutes returns all persisted pending unmutes, soonest first.
func (s *Store) ListPendingUnmutes() ([]model.PendingUnmute, error) {
	var tasks []model.PendingUnmute
	query := "SELECT * FROM pending_unmutes ORDER BY fire_at"
	if err := s.db.Select(&tasks, query); err != nil {
		return nil, fmt.Errorf("failed to list pending unmutes: %w", err)
	}
	return tasks, nil
}
