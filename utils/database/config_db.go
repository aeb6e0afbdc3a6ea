package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cascade-bot/model"
)

// GetServerConfig returns the guild's configuration row, or (nil, nil) when
// none has been written yet.
func (s *Store) GetServerConfig(guildID string) (*model.ServerConfig, error) {
	var cfg model.ServerConfig
	err := s.db.Get(&cfg, "SELECT * FROM server_configs WHERE guild_id = ?", guildID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get server config for guild %s: %w", guildID, err)
	}
	return &cfg, nil
}

// UpsertServerConfig merges the supplied fields into the guild's config row.
// Fields left nil keep their previous value, or the column default on first
// insert. The merge is a single upsert statement.
func (s *Store) UpsertServerConfig(guildID string, patch model.ServerConfigPatch) error {
	columns := []string{"guild_id"}
	args := []interface{}{guildID}

	set := func(column string, value *string) {
		if value != nil {
			columns = append(columns, column)
			args = append(args, *value)
		}
	}
	set("prefix", patch.Prefix)
	set("mod_role_id", patch.ModRoleID)
	set("admin_role_id", patch.AdminRoleID)
	set("mute_role_id", patch.MuteRoleID)
	set("log_channel_id", patch.LogChannelID)
	set("mod_log_channel_id", patch.ModLogChannelID)
	set("welcome_channel_id", patch.WelcomeChannelID)

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	var updates []string
	for _, column := range columns[1:] {
		updates = append(updates, fmt.Sprintf("%s = excluded.%s", column, column))
	}

	query := fmt.Sprintf("INSERT INTO server_configs (%s) VALUES (%s)", strings.Join(columns, ", "), placeholders)
	if len(updates) > 0 {
		query += fmt.Sprintf(" ON CONFLICT(guild_id) DO UPDATE SET %s", strings.Join(updates, ", "))
	} else {
		query += " ON CONFLICT(guild_id) DO NOTHING"
	}

	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to upsert server config for guild %s: %w", guildID, err)
	}
	return nil
}
