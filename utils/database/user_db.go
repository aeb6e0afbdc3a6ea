package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cascade-bot/model"
)

// IncrementWarningCount bumps a user's warning counter and returns the new
// value. A missing user row is created with the increment already applied,
// so a fresh user's first warning yields 1. The whole operation is a single
// statement.
func (s *Store) IncrementWarningCount(userID string) (int64, error) {
	var count int64
	query := `INSERT INTO users (id, warnings) VALUES (?, 1)
	          ON CONFLICT(id) DO UPDATE SET warnings = warnings + 1
	          RETURNING warnings`
	if err := s.db.Get(&count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to increment warning count for user %s: %w", userID, err)
	}
	return count, nil
}

// GetUser returns the user record, or (nil, nil) if none exists yet.
func (s *Store) GetUser(userID string) (*model.UserRecord, error) {
	var user model.UserRecord
	err := s.db.Get(&user, "SELECT * FROM users WHERE id = ?", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return &user, nil
}

// TouchLastSeen records message activity for a user, creating the row lazily.
func (s *Store) TouchLastSeen(userID string) error {
	query := `INSERT INTO users (id, last_seen) VALUES (?, ?)
	          ON CONFLICT(id) DO UPDATE SET last_seen = excluded.last_seen`
	if _, err := s.db.Exec(query, userID, time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to update last seen for user %s: %w", userID, err)
	}
	return nil
}

// AddXP adds experience points to a user and returns the new total.
func (s *Store) AddXP(userID string, amount int64) (int64, error) {
	var total int64
	query := `INSERT INTO users (id, xp_points) VALUES (?, ?)
	          ON CONFLICT(id) DO UPDATE SET xp_points = xp_points + excluded.xp_points
	          RETURNING xp_points`
	if err := s.db.Get(&total, query, userID, amount); err != nil {
		return 0, fmt.Errorf("failed to add xp for user %s: %w", userID, err)
	}
	return total, nil
}
