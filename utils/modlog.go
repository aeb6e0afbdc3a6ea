package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	ColorGreen  = 3066993
	ColorOrange = 15105570
	ColorRed    = 15158332
	ColorBlue   = 3447003
)

// ActionColor maps a moderation action type to its embed color.
func ActionColor(actionType string) int {
	switch actionType {
	case "warn", "mute":
		return ColorOrange
	case "kick", "ban":
		return ColorRed
	case "unmute":
		return ColorGreen
	default:
		return ColorBlue
	}
}

// SendModLogEmbed posts a moderation action embed to the guild's mod log
// channel. Errors are logged and swallowed; logging never blocks the action.
func SendModLogEmbed(s *discordgo.Session, channelID, actionType, targetID, moderatorID, reason, duration string) {
	if channelID == "" {
		return
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Member", Value: fmt.Sprintf("<@%s>", targetID), Inline: true},
		{Name: "Moderator", Value: fmt.Sprintf("<@%s>", moderatorID), Inline: true},
		{Name: "Reason", Value: reason, Inline: false},
	}
	if duration != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Duration", Value: duration, Inline: true})
	}

	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("Moderation: %s", actionType),
		Color:     ActionColor(actionType),
		Fields:    fields,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.Printf("Error sending mod log embed to channel %s: %v", channelID, err)
	}
}
