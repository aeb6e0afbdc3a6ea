package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the bot's sqlite database.
type Store struct {
	db *sqlx.DB
}

// Init opens the database and ensures all tables exist.
func Init(dbPath string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schemas := []string{
		`CREATE TABLE IF NOT EXISTS users (
		    id TEXT PRIMARY KEY,
		    warnings INTEGER NOT NULL DEFAULT 0,
		    xp_points INTEGER NOT NULL DEFAULT 0,
		    currency_amount INTEGER NOT NULL DEFAULT 0,
		    last_seen INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS moderation_logs (
		    id INTEGER PRIMARY KEY AUTOINCREMENT,
		    guild_id TEXT NOT NULL,
		    user_id TEXT NOT NULL,
		    moderator_id TEXT NOT NULL,
		    action_type TEXT NOT NULL,
		    reason TEXT NOT NULL DEFAULT '',
		    duration_seconds INTEGER NOT NULL DEFAULT 0,
		    created_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_moderation_logs_user ON moderation_logs (user_id, created_at);`,
		`CREATE TABLE IF NOT EXISTS server_configs (
		    guild_id TEXT PRIMARY KEY,
		    prefix TEXT NOT NULL DEFAULT '!',
		    mod_role_id TEXT NOT NULL DEFAULT '',
		    admin_role_id TEXT NOT NULL DEFAULT '',
		    mute_role_id TEXT NOT NULL DEFAULT '',
		    log_channel_id TEXT NOT NULL DEFAULT '',
		    mod_log_channel_id TEXT NOT NULL DEFAULT '',
		    welcome_channel_id TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS pending_unmutes (
		    id INTEGER PRIMARY KEY AUTOINCREMENT,
		    guild_id TEXT NOT NULL,
		    user_id TEXT NOT NULL,
		    role_id TEXT NOT NULL,
		    fire_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS message_logs (
		    id INTEGER PRIMARY KEY AUTOINCREMENT,
		    guild_id TEXT NOT NULL,
		    channel_id TEXT NOT NULL,
		    user_id TEXT NOT NULL,
		    message_id TEXT NOT NULL,
		    content TEXT NOT NULL DEFAULT '',
		    action_type TEXT NOT NULL,
		    created_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_message_logs_message ON message_logs (message_id);`,
	}
	for _, schema := range schemas {
		if _, err := db.Exec(schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
