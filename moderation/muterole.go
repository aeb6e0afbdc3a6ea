package moderation

import (
	"fmt"
	"strings"

	"cascade-bot/model"

	"go.uber.org/zap"
)

// MutedRoleName is the name used when the role has to be created.
const MutedRoleName = "Muted"

// resolveMuteRole finds the guild's muted role. Resolution is two-step: the
// configured mute_role_id wins; otherwise the first role whose name contains
// "mute" is used. If neither exists the role is created, with creation
// guarded by a per-guild single-flight so concurrent first-time mutes share
// one create.
func (c *Coordinator) resolveMuteRole(guildID string) (string, error) {
	if roleID, ok, err := c.lookupMuteRole(guildID); err != nil {
		return "", err
	} else if ok {
		return roleID, nil
	}

	v, err, _ := c.muteRoleFlight.Do(guildID, func() (any, error) {
		// Another caller may have finished creating while we waited on
		// the flight key, so look again before creating.
		if roleID, ok, err := c.lookupMuteRole(guildID); err != nil {
			return "", err
		} else if ok {
			return roleID, nil
		}
		return c.createMuteRole(guildID)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// lookupMuteRole checks the server config first, then falls back to matching
// role names.
func (c *Coordinator) lookupMuteRole(guildID string) (string, bool, error) {
	roles, err := c.actor.GuildRoles(guildID)
	if err != nil {
		return "", false, fmt.Errorf("failed to list roles for guild %s: %w", guildID, err)
	}

	cfg, err := c.store.GetServerConfig(guildID)
	if err != nil {
		c.logger.Warn("Failed to load server config for mute role lookup",
			zap.String("guildID", guildID), zap.Error(err))
	}
	if cfg != nil && cfg.MuteRoleID != "" {
		for _, role := range roles {
			if role.ID == cfg.MuteRoleID {
				return role.ID, true, nil
			}
		}
		c.logger.Warn("Configured mute role no longer exists",
			zap.String("guildID", guildID), zap.String("roleID", cfg.MuteRoleID))
	}

	for _, role := range roles {
		if strings.Contains(strings.ToLower(role.Name), "mute") {
			c.rememberMuteRole(guildID, role.ID)
			return role.ID, true, nil
		}
	}
	return "", false, nil
}

// createMuteRole creates the muted role and denies send/react in text
// channels and speak/connect in voice channels.
func (c *Coordinator) createMuteRole(guildID string) (string, error) {
	roleID, err := c.actor.CreateRole(guildID, MutedRoleName)
	if err != nil {
		return "", fmt.Errorf("failed to create mute role in guild %s: %w", guildID, err)
	}

	channels, err := c.actor.GuildChannels(guildID)
	if err != nil {
		return "", fmt.Errorf("failed to list channels for guild %s: %w", guildID, err)
	}
	for _, ch := range channels {
		var deny MuteDeny
		switch ch.Type {
		case ChannelText:
			deny.SendMessages = true
			deny.AddReactions = true
		case ChannelVoice:
			deny.Speak = true
			deny.Connect = true
		default:
			continue
		}
		if err := c.actor.SetChannelPermissionOverride(ch.ID, roleID, deny); err != nil {
			c.logger.Warn("Failed to set mute override on channel",
				zap.String("channelID", ch.ID), zap.String("roleID", roleID), zap.Error(err))
		}
	}

	c.rememberMuteRole(guildID, roleID)
	c.logger.Info("Created mute role",
		zap.String("guildID", guildID), zap.String("roleID", roleID))
	return roleID, nil
}

// rememberMuteRole records the resolved role in the server config so later
// mutes skip the name scan. Best-effort.
func (c *Coordinator) rememberMuteRole(guildID, roleID string) {
	patch := model.ServerConfigPatch{MuteRoleID: &roleID}
	if err := c.store.UpsertServerConfig(guildID, patch); err != nil {
		c.logger.Warn("Failed to persist mute role id",
			zap.String("guildID", guildID), zap.String("roleID", roleID), zap.Error(err))
	}
}
