package punish

import (
	"fmt"
	"log"
	"strings"
	"time"

	"cascade-bot/bot"
	"cascade-bot/model"
	"cascade-bot/utils"

	"github.com/bwmarrin/discordgo"
)

const infractionsShown = 5

// HandleInfractionsCommand shows a member's recent moderation history.
func HandleInfractionsCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	opts := parseOptions(s, i)
	if opts.TargetUser == nil {
		utils.SendErrorResponse(s, i, "No target user supplied.")
		return
	}

	actions, err := b.Store.ListActions(opts.TargetUser.ID)
	if err != nil {
		log.Printf("Failed to list infractions for user %s: %v", opts.TargetUser.ID, err)
		utils.SendErrorResponse(s, i, "Could not load the moderation history.")
		return
	}

	if len(actions) == 0 {
		utils.SendPublicResponse(s, i, fmt.Sprintf("<@%s> has no recorded infractions.", opts.TargetUser.ID))
		return
	}

	warningCount := int64(0)
	if user, err := b.Store.GetUser(opts.TargetUser.ID); err == nil && user != nil {
		warningCount = user.Warnings
	}

	shown := actions
	if len(shown) > infractionsShown {
		shown = shown[:infractionsShown]
	}

	var lines []string
	for _, action := range shown {
		line := fmt.Sprintf("**#%d %s** by <@%s> <t:%d:R>\n%s",
			action.ID,
			action.ActionType,
			action.ModeratorID,
			action.CreatedAt,
			utils.Truncate(action.Reason, model.MaxReasonDisplayLength))
		if action.DurationSeconds > 0 {
			line += fmt.Sprintf(" (%s)", utils.FormatDuration(time.Duration(action.DurationSeconds)*time.Second))
		}
		lines = append(lines, line)
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Infractions for %s", opts.TargetUser.Username),
		Description: fmt.Sprintf("%d total record(s), %d warning(s). Showing the most recent %d.\n\n%s",
			len(actions), warningCount, len(shown), strings.Join(lines, "\n\n")),
		Color:     utils.ColorBlue,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	utils.SendEmbedResponse(s, i, embed)
}
