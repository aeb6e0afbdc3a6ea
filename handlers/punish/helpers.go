package punish

import (
	"errors"
	"log"
	"time"

	"cascade-bot/bot"
	"cascade-bot/moderation"
	"cascade-bot/utils"

	"github.com/bwmarrin/discordgo"
)

type commandOptions struct {
	TargetUser *discordgo.User
	Reason     string
	Duration   string
}

func parseOptions(s *discordgo.Session, i *discordgo.InteractionCreate) commandOptions {
	opts := commandOptions{Reason: "No reason provided"}
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "user":
			opts.TargetUser = opt.UserValue(s)
		case "reason":
			if v := opt.StringValue(); v != "" {
				opts.Reason = utils.EscapeMentions(v)
			}
		case "duration":
			opts.Duration = opt.StringValue()
		}
	}
	return opts
}

// respondCommandError turns a coordinator error into user-facing feedback.
// Validation and authority errors carry their own message; anything else
// gets a generic reply and a log line.
func respondCommandError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	var validationErr *moderation.ValidationError
	var authorityErr *moderation.AuthorityError
	switch {
	case errors.As(err, &validationErr):
		utils.SendFollowUpError(s, i.Interaction, validationErr.Message)
	case errors.As(err, &authorityErr):
		utils.SendFollowUpError(s, i.Interaction, authorityErr.Message)
	default:
		log.Printf("Moderation command failed in guild %s: %v", i.GuildID, err)
		utils.SendFollowUpError(s, i.Interaction, "Something went wrong while executing that action.")
	}
}

func actionEmbed(title, actionType, description, reason, duration string) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Reason", Value: reason, Inline: false},
	}
	if duration != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Duration", Value: duration, Inline: true})
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       utils.ActionColor(actionType),
		Fields:      fields,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

// sendModLog posts the action to the guild's configured mod log channel,
// when one is set.
func sendModLog(s *discordgo.Session, b *bot.Bot, i *discordgo.InteractionCreate, actionType, targetID, reason, duration string) {
	cfg, err := b.Store.GetServerConfig(i.GuildID)
	if err != nil {
		log.Printf("Failed to load server config for guild %s: %v", i.GuildID, err)
		return
	}
	if cfg == nil || cfg.ModLogChannelID == "" {
		return
	}
	utils.SendModLogEmbed(s, cfg.ModLogChannelID, actionType, targetID, i.Member.User.ID, reason, duration)
}
