package msglog

import (
	"strings"
	"testing"

	"cascade-bot/model"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldValue(t *testing.T, embed *discordgo.MessageEmbed, name string) string {
	t.Helper()
	for _, field := range embed.Fields {
		if field.Name == name {
			return field.Value
		}
	}
	t.Fatalf("embed has no field %q", name)
	return ""
}

func hasField(embed *discordgo.MessageEmbed, name string) bool {
	for _, field := range embed.Fields {
		if field.Name == name {
			return true
		}
	}
	return false
}

func editEntry(content string) model.MessageLog {
	return model.MessageLog{
		GuildID:    "g1",
		ChannelID:  "ch1",
		UserID:     "u1",
		MessageID:  "m1",
		Content:    content,
		ActionType: model.MessageActionEdit,
	}
}

func TestLogEmbedEditShowsPriorContent(t *testing.T) {
	t.Parallel()

	embed := logEmbed(editEntry("new text"), "old text")

	assert.Equal(t, "Message Edited", embed.Title)
	assert.Equal(t, "old text", fieldValue(t, embed, "Before"))
	assert.Equal(t, "new text", fieldValue(t, embed, "After"))
	assert.False(t, hasField(embed, "Content"))
}

func TestLogEmbedEditWithoutPriorContent(t *testing.T) {
	t.Parallel()

	embed := logEmbed(editEntry("new text"), "")

	assert.Equal(t, "(content unavailable)", fieldValue(t, embed, "Before"))
	assert.Equal(t, "new text", fieldValue(t, embed, "After"))
}

func TestLogEmbedEditTruncatesLongContent(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 600)
	embed := logEmbed(editEntry(long), long)

	require.Len(t, fieldValue(t, embed, "Before"), 500)
	require.Len(t, fieldValue(t, embed, "After"), 500)
}

func TestLogEmbedDelete(t *testing.T) {
	t.Parallel()

	embed := logEmbed(model.MessageLog{
		GuildID:    "g1",
		ChannelID:  "ch1",
		UserID:     "u1",
		MessageID:  "m1",
		Content:    "@everyone free stuff",
		ActionType: model.MessageActionDelete,
	}, "")

	assert.Equal(t, "Message Deleted", embed.Title)
	assert.Equal(t, "@\u200beveryone free stuff", fieldValue(t, embed, "Content"))
	assert.Equal(t, "<@u1>", fieldValue(t, embed, "Author"))
	assert.False(t, hasField(embed, "Before"))
}

func TestLogEmbedDeleteWithoutAuthor(t *testing.T) {
	t.Parallel()

	embed := logEmbed(model.MessageLog{
		GuildID:    "g1",
		ChannelID:  "ch1",
		MessageID:  "m1",
		Content:    "gone",
		ActionType: model.MessageActionDelete,
	}, "")

	assert.Equal(t, "unknown", fieldValue(t, embed, "Author"))
}
