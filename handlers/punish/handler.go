package punish

import (
	"fmt"
	"log"

	"cascade-bot/bot"
	"cascade-bot/model"
	"cascade-bot/moderation"
	"cascade-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// HandleWarnCommand warns a member and reports the new warning count.
func HandleWarnCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, false); err != nil {
		log.Printf("Failed to defer interaction: %v", err)
		return
	}

	opts := parseOptions(s, i)
	if opts.TargetUser == nil {
		utils.SendFollowUpError(s, i.Interaction, "No target user supplied.")
		return
	}

	result, err := b.Coordinator.Warn(moderation.Request{
		GuildID:     i.GuildID,
		TargetID:    opts.TargetUser.ID,
		ModeratorID: i.Member.User.ID,
		Reason:      opts.Reason,
	})
	if err != nil {
		respondCommandError(s, i, err)
		return
	}

	description := fmt.Sprintf("<@%s> has been warned.", opts.TargetUser.ID)
	if result.WarningCount > 0 {
		description = fmt.Sprintf("<@%s> has been warned. They now have %d warning(s).",
			opts.TargetUser.ID, result.WarningCount)
	}
	embed := actionEmbed("Member Warned", model.ActionWarn, description, opts.Reason, "")
	utils.SendFollowUpEmbed(s, i.Interaction, embed)

	sendModLog(s, b, i, model.ActionWarn, opts.TargetUser.ID, opts.Reason, "")
}

// HandleMuteCommand mutes a member for a parsed duration and schedules the
// automatic unmute.
func HandleMuteCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, false); err != nil {
		log.Printf("Failed to defer interaction: %v", err)
		return
	}

	opts := parseOptions(s, i)
	if opts.TargetUser == nil {
		utils.SendFollowUpError(s, i.Interaction, "No target user supplied.")
		return
	}

	result, err := b.Coordinator.Mute(moderation.Request{
		GuildID:     i.GuildID,
		TargetID:    opts.TargetUser.ID,
		ModeratorID: i.Member.User.ID,
		Reason:      opts.Reason,
		Duration:    opts.Duration,
	})
	if err != nil {
		respondCommandError(s, i, err)
		return
	}

	formatted := utils.FormatDuration(result.Duration)
	description := fmt.Sprintf("<@%s> has been muted for %s.", opts.TargetUser.ID, formatted)
	embed := actionEmbed("Member Muted", model.ActionMute, description, opts.Reason, formatted)
	utils.SendFollowUpEmbed(s, i.Interaction, embed)

	sendModLog(s, b, i, model.ActionMute, opts.TargetUser.ID, opts.Reason, formatted)
}

// HandleUnmuteCommand lifts a mute before it expires.
func HandleUnmuteCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, false); err != nil {
		log.Printf("Failed to defer interaction: %v", err)
		return
	}

	opts := parseOptions(s, i)
	if opts.TargetUser == nil {
		utils.SendFollowUpError(s, i.Interaction, "No target user supplied.")
		return
	}

	_, err := b.Coordinator.Unmute(moderation.Request{
		GuildID:     i.GuildID,
		TargetID:    opts.TargetUser.ID,
		ModeratorID: i.Member.User.ID,
		Reason:      opts.Reason,
	})
	if err != nil {
		respondCommandError(s, i, err)
		return
	}

	description := fmt.Sprintf("<@%s> has been unmuted.", opts.TargetUser.ID)
	embed := actionEmbed("Member Unmuted", model.ActionUnmute, description, opts.Reason, "")
	utils.SendFollowUpEmbed(s, i.Interaction, embed)

	sendModLog(s, b, i, model.ActionUnmute, opts.TargetUser.ID, opts.Reason, "")
}

// HandleKickCommand kicks a member from the guild.
func HandleKickCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, false); err != nil {
		log.Printf("Failed to defer interaction: %v", err)
		return
	}

	opts := parseOptions(s, i)
	if opts.TargetUser == nil {
		utils.SendFollowUpError(s, i.Interaction, "No target user supplied.")
		return
	}

	_, err := b.Coordinator.Kick(moderation.Request{
		GuildID:     i.GuildID,
		TargetID:    opts.TargetUser.ID,
		ModeratorID: i.Member.User.ID,
		Reason:      opts.Reason,
	})
	if err != nil {
		respondCommandError(s, i, err)
		return
	}

	description := fmt.Sprintf("<@%s> has been kicked from the server.", opts.TargetUser.ID)
	embed := actionEmbed("Member Kicked", model.ActionKick, description, opts.Reason, "")
	utils.SendFollowUpEmbed(s, i.Interaction, embed)

	sendModLog(s, b, i, model.ActionKick, opts.TargetUser.ID, opts.Reason, "")
}

// HandleBanCommand bans a member from the guild.
func HandleBanCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, false); err != nil {
		log.Printf("Failed to defer interaction: %v", err)
		return
	}

	opts := parseOptions(s, i)
	if opts.TargetUser == nil {
		utils.SendFollowUpError(s, i.Interaction, "No target user supplied.")
		return
	}

	_, err := b.Coordinator.Ban(moderation.Request{
		GuildID:     i.GuildID,
		TargetID:    opts.TargetUser.ID,
		ModeratorID: i.Member.User.ID,
		Reason:      opts.Reason,
	})
	if err != nil {
		respondCommandError(s, i, err)
		return
	}

	description := fmt.Sprintf("<@%s> has been banned from the server.", opts.TargetUser.ID)
	embed := actionEmbed("Member Banned", model.ActionBan, description, opts.Reason, "")
	utils.SendFollowUpEmbed(s, i.Interaction, embed)

	sendModLog(s, b, i, model.ActionBan, opts.TargetUser.ID, opts.Reason, "")
}
