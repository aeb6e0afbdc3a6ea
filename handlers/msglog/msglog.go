package msglog

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"cascade-bot/bot"
	"cascade-bot/model"
	"cascade-bot/utils"

	"github.com/bwmarrin/discordgo"
)

const xpPerMessage = 5

// HandleMessageCreate tracks activity and caches content so deletions and
// edits can be logged with the original text.
func HandleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate, b *bot.Bot) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}
	b.Stats.MessagesProcessed.Add(1)

	if err := b.Store.TouchLastSeen(m.Author.ID); err != nil {
		log.Printf("Failed to update last seen for user %s: %v", m.Author.ID, err)
	}
	if _, err := b.Store.AddXP(m.Author.ID, xpPerMessage); err != nil {
		log.Printf("Failed to award xp to user %s: %v", m.Author.ID, err)
	}

	if b.Cache == nil {
		return
	}
	ctx := context.Background()
	if err := b.Cache.UpdateLastSeen(ctx, m.Author.ID, time.Now()); err != nil {
		log.Printf("Failed to cache last seen for user %s: %v", m.Author.ID, err)
	}
	if m.Content != "" {
		if err := b.Cache.CacheMessageContent(ctx, m.ID, m.Content); err != nil {
			log.Printf("Failed to cache message %s: %v", m.ID, err)
		}
	}
	if _, err := b.Cache.IncrCounter(ctx, "messages"); err != nil {
		log.Printf("Failed to bump message counter: %v", err)
	}
}

// HandleMessageDelete records the deletion, recovering the original content
// from the cache when possible.
func HandleMessageDelete(s *discordgo.Session, m *discordgo.MessageDelete, b *bot.Bot) {
	if m.GuildID == "" {
		return
	}
	b.Stats.EventsHandled.Add(1)

	content := ""
	userID := ""
	if m.BeforeDelete != nil {
		content = m.BeforeDelete.Content
		if m.BeforeDelete.Author != nil {
			if m.BeforeDelete.Author.Bot {
				return
			}
			userID = m.BeforeDelete.Author.ID
		}
	}
	if content == "" && b.Cache != nil {
		if cached, ok, err := b.Cache.CachedMessageContent(context.Background(), m.ID); err == nil && ok {
			content = cached
		}
	}
	if content == "" {
		content = "(content unavailable)"
	}

	recordAndAnnounce(s, b, model.MessageLog{
		GuildID:    m.GuildID,
		ChannelID:  m.ChannelID,
		UserID:     userID,
		MessageID:  m.ID,
		Content:    content,
		ActionType: model.MessageActionDelete,
	}, "")
}

// HandleMessageUpdate records an edit, recovering the prior content from the
// session state or the cache. Edits that leave the content unchanged, such as
// embed unfurls, are ignored.
func HandleMessageUpdate(s *discordgo.Session, m *discordgo.MessageUpdate, b *bot.Bot) {
	if m.GuildID == "" || m.Author == nil || m.Author.Bot || m.Content == "" {
		return
	}

	prior := ""
	if m.BeforeUpdate != nil {
		prior = m.BeforeUpdate.Content
	}
	if prior == "" && b.Cache != nil {
		if cached, ok, err := b.Cache.CachedMessageContent(context.Background(), m.ID); err == nil && ok {
			prior = cached
		}
	}
	if prior == m.Content {
		return
	}
	b.Stats.EventsHandled.Add(1)

	recordAndAnnounce(s, b, model.MessageLog{
		GuildID:    m.GuildID,
		ChannelID:  m.ChannelID,
		UserID:     m.Author.ID,
		MessageID:  m.ID,
		Content:    m.Content,
		ActionType: model.MessageActionEdit,
	}, prior)

	if b.Cache != nil {
		if err := b.Cache.CacheMessageContent(context.Background(), m.ID, m.Content); err != nil {
			log.Printf("Failed to cache message %s: %v", m.ID, err)
		}
	}
}

func recordAndAnnounce(s *discordgo.Session, b *bot.Bot, entry model.MessageLog, prior string) {
	if _, err := b.Store.AddMessageLog(entry); err != nil {
		log.Printf("Failed to record message log for message %s: %v", entry.MessageID, err)
		return
	}

	cfg, err := b.Store.GetServerConfig(entry.GuildID)
	if err != nil || cfg == nil || cfg.LogChannelID == "" {
		return
	}

	if _, err := s.ChannelMessageSendEmbed(cfg.LogChannelID, logEmbed(entry, prior)); err != nil {
		log.Printf("Failed to send message log embed to channel %s: %v", cfg.LogChannelID, err)
	}
}

// logEmbed renders a deletion as a single Content field and an edit as a
// Before/After pair, with mentions neutralized.
func logEmbed(entry model.MessageLog, prior string) *discordgo.MessageEmbed {
	author := "unknown"
	if entry.UserID != "" {
		author = fmt.Sprintf("<@%s>", entry.UserID)
	}
	fields := []*discordgo.MessageEmbedField{
		{Name: "Author", Value: author, Inline: true},
		{Name: "Channel", Value: fmt.Sprintf("<#%s>", entry.ChannelID), Inline: true},
	}

	color := utils.ColorRed
	title := "Message Deleted"
	if entry.ActionType == model.MessageActionEdit {
		color = utils.ColorOrange
		title = "Message Edited"
		if prior == "" {
			prior = "(content unavailable)"
		}
		fields = append(fields,
			&discordgo.MessageEmbedField{Name: "Before", Value: utils.Truncate(utils.EscapeMentions(prior), 500), Inline: false},
			&discordgo.MessageEmbedField{Name: "After", Value: utils.Truncate(utils.EscapeMentions(entry.Content), 500), Inline: false})
	} else {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Content",
			Value:  utils.Truncate(utils.EscapeMentions(entry.Content), model.MaxReasonDisplayLength),
			Inline: false,
		})
	}

	return &discordgo.MessageEmbed{
		Title:     title,
		Color:     color,
		Fields:    fields,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// HandleMessageLogCommand shows the recorded history of one message.
func HandleMessageLogCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	messageID := ""
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "message_id" {
			messageID = opt.StringValue()
		}
	}
	if messageID == "" {
		utils.SendErrorResponse(s, i, "Supply a message ID.")
		return
	}

	entries, err := b.Store.GetMessageLogs(messageID)
	if err != nil {
		log.Printf("Failed to load message logs for message %s: %v", messageID, err)
		utils.SendErrorResponse(s, i, "Could not load the message history.")
		return
	}
	if len(entries) == 0 {
		utils.SendErrorResponse(s, i, "No history recorded for that message.")
		return
	}

	var lines []string
	for _, entry := range entries {
		lines = append(lines, fmt.Sprintf("**%s** <t:%d:R>\n%s",
			entry.ActionType, entry.CreatedAt, utils.Truncate(entry.Content, 500)))
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("History of message %s", messageID),
		Description: strings.Join(lines, "\n\n"),
		Color:       utils.ColorBlue,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	utils.SendEmbedResponse(s, i, embed)
}
