package database

import (
	"fmt"
	"time"

	"cascade-bot/model"
)

// AddMessageLog records a deleted or edited message.
func (s *Store) AddMessageLog(entry model.MessageLog) (int64, error) {
	query := `INSERT INTO message_logs (guild_id, channel_id, user_id, message_id, content, action_type, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := s.db.Exec(query, entry.GuildID, entry.ChannelID, entry.UserID, entry.MessageID, entry.Content, entry.ActionType, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to insert message log: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	return id, nil
}

// GetMessageLogs returns all log entries for a message id, newest first.
func (s *Store) GetMessageLogs(messageID string) ([]model.MessageLog, error) {
	var entries []model.MessageLog
	query := "SELECT * FROM message_logs WHERE message_id = ? ORDER BY created_at DESC, id DESC"
	if err := s.db.Select(&entries, query, messageID); err != nil {
		return nil, fmt.Errorf("failed to get message logs for message %s: %w", messageID, err)
	}
	return entries, nil
}
