package bot

import (
	"errors"
	"fmt"

	"cascade-bot/moderation"

	"github.com/bwmarrin/discordgo"
)

// sessionActor adapts a discordgo session to the moderation.Actor contract.
type sessionActor struct {
	session *discordgo.Session
}

// NewActor wraps a session for the moderation core.
func NewActor(session *discordgo.Session) moderation.Actor {
	return &sessionActor{session: session}
}

// isUnknownEntity reports whether the error means the member, user or role
// does not exist (anymore).
func isUnknownEntity(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Message == nil {
		return false
	}
	switch restErr.Message.Code {
	case discordgo.ErrCodeUnknownMember, discordgo.ErrCodeUnknownUser, discordgo.ErrCodeUnknownRole:
		return true
	}
	return false
}

func (a *sessionActor) ResolveMember(guildID, userID string) (*moderation.Member, error) {
	member, err := a.session.GuildMember(guildID, userID)
	if err != nil {
		if isUnknownEntity(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch member %s in guild %s: %w", userID, guildID, err)
	}

	roles, err := a.session.GuildRoles(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roles for guild %s: %w", guildID, err)
	}
	positions := make(map[string]int, len(roles))
	for _, role := range roles {
		positions[role.ID] = role.Position
	}

	rank := 0
	for _, roleID := range member.Roles {
		if pos, ok := positions[roleID]; ok && pos > rank {
			rank = pos
		}
	}

	return &moderation.Member{
		UserID:      userID,
		Roles:       member.Roles,
		TopRoleRank: rank,
	}, nil
}

func (a *sessionActor) GuildOwnerID(guildID string) (string, error) {
	guild, err := a.session.Guild(guildID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch guild %s: %w", guildID, err)
	}
	return guild.OwnerID, nil
}

func (a *sessionActor) GuildRoles(guildID string) ([]moderation.Role, error) {
	roles, err := a.session.GuildRoles(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roles for guild %s: %w", guildID, err)
	}
	out := make([]moderation.Role, 0, len(roles))
	for _, role := range roles {
		out = append(out, moderation.Role{ID: role.ID, Name: role.Name, Rank: role.Position})
	}
	return out, nil
}

func (a *sessionActor) GuildChannels(guildID string) ([]moderation.Channel, error) {
	channels, err := a.session.GuildChannels(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channels for guild %s: %w", guildID, err)
	}
	out := make([]moderation.Channel, 0, len(channels))
	for _, ch := range channels {
		switch ch.Type {
		case discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews:
			out = append(out, moderation.Channel{ID: ch.ID, Type: moderation.ChannelText})
		case discordgo.ChannelTypeGuildVoice, discordgo.ChannelTypeGuildStageVoice:
			out = append(out, moderation.Channel{ID: ch.ID, Type: moderation.ChannelVoice})
		}
	}
	return out, nil
}

func (a *sessionActor) CreateRole(guildID, name string) (string, error) {
	role, err := a.session.GuildRoleCreate(guildID, &discordgo.RoleParams{Name: name})
	if err != nil {
		return "", fmt.Errorf("failed to create role in guild %s: %w", guildID, err)
	}
	return role.ID, nil
}

func (a *sessionActor) SetChannelPermissionOverride(channelID, roleID string, deny moderation.MuteDeny) error {
	var denyBits int64
	if deny.SendMessages {
		denyBits |= discordgo.PermissionSendMessages
	}
	if deny.AddReactions {
		denyBits |= discordgo.PermissionAddReactions
	}
	if deny.Speak {
		denyBits |= discordgo.PermissionVoiceSpeak
	}
	if deny.Connect {
		denyBits |= discordgo.PermissionVoiceConnect
	}
	err := a.session.ChannelPermissionSet(channelID, roleID, discordgo.PermissionOverwriteTypeRole, 0, denyBits)
	if err != nil {
		return fmt.Errorf("failed to set permission override on channel %s: %w", channelID, err)
	}
	return nil
}

func (a *sessionActor) AddRole(guildID, userID, roleID string) error {
	if err := a.session.GuildMemberRoleAdd(guildID, userID, roleID); err != nil {
		return fmt.Errorf("failed to add role %s to user %s: %w", roleID, userID, err)
	}
	return nil
}

func (a *sessionActor) RemoveRole(guildID, userID, roleID string) error {
	err := a.session.GuildMemberRoleRemove(guildID, userID, roleID)
	if err != nil && !isUnknownEntity(err) {
		return fmt.Errorf("failed to remove role %s from user %s: %w", roleID, userID, err)
	}
	return nil
}

func (a *sessionActor) Kick(guildID, userID, reason string) error {
	err := a.session.GuildMemberDeleteWithReason(guildID, userID, reason)
	if err != nil {
		return fmt.Errorf("failed to kick user %s from guild %s: %w", userID, guildID, err)
	}
	return nil
}

func (a *sessionActor) Ban(guildID, userID, reason string) error {
	err := a.session.GuildBanCreateWithReason(guildID, userID, reason, 0)
	if err != nil {
		return fmt.Errorf("failed to ban user %s from guild %s: %w", userID, guildID, err)
	}
	return nil
}

func (a *sessionActor) SendDirectNotification(userID, content string) error {
	channel, err := a.session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to create DM channel with user %s: %w", userID, err)
	}
	if _, err := a.session.ChannelMessageSend(channel.ID, content); err != nil {
		return fmt.Errorf("failed to DM user %s: %w", userID, err)
	}
	return nil
}
