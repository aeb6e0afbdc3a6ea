package guildconfig

import (
	"fmt"
	"log"
	"time"

	"cascade-bot/bot"
	"cascade-bot/model"
	"cascade-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// HandleConfigCommand routes the config view/set subcommands.
func HandleConfigCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		utils.SendErrorResponse(s, i, "Missing subcommand.")
		return
	}

	switch data.Options[0].Name {
	case "view":
		handleView(s, i, b)
	case "set":
		handleSet(s, i, b, data.Options[0].Options)
	default:
		utils.SendErrorResponse(s, i, "Unknown subcommand.")
	}
}

func handleView(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cfg, err := b.Store.GetServerConfig(i.GuildID)
	if err != nil {
		log.Printf("Failed to load server config for guild %s: %v", i.GuildID, err)
		utils.SendErrorResponse(s, i, "Could not load the server configuration.")
		return
	}
	if cfg == nil {
		utils.SendPublicResponse(s, i, "This server has no configuration yet. Use `/config set` to create one.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "Server Configuration",
		Color: utils.ColorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Prefix", Value: orUnset(cfg.Prefix), Inline: true},
			{Name: "Mod Role", Value: roleOrUnset(cfg.ModRoleID), Inline: true},
			{Name: "Admin Role", Value: roleOrUnset(cfg.AdminRoleID), Inline: true},
			{Name: "Mute Role", Value: roleOrUnset(cfg.MuteRoleID), Inline: true},
			{Name: "Log Channel", Value: channelOrUnset(cfg.LogChannelID), Inline: true},
			{Name: "Mod Log Channel", Value: channelOrUnset(cfg.ModLogChannelID), Inline: true},
			{Name: "Welcome Channel", Value: channelOrUnset(cfg.WelcomeChannelID), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	utils.SendEmbedResponse(s, i, embed)
}

func handleSet(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	var patch model.ServerConfigPatch
	changed := 0

	for _, opt := range opts {
		switch opt.Name {
		case "mod_role":
			patch.ModRoleID = strPtr(opt.RoleValue(s, i.GuildID).ID)
		case "admin_role":
			patch.AdminRoleID = strPtr(opt.RoleValue(s, i.GuildID).ID)
		case "mute_role":
			patch.MuteRoleID = strPtr(opt.RoleValue(s, i.GuildID).ID)
		case "log_channel":
			patch.LogChannelID = strPtr(opt.ChannelValue(s).ID)
		case "mod_log_channel":
			patch.ModLogChannelID = strPtr(opt.ChannelValue(s).ID)
		case "welcome_channel":
			patch.WelcomeChannelID = strPtr(opt.ChannelValue(s).ID)
		case "prefix":
			patch.Prefix = strPtr(opt.StringValue())
		default:
			continue
		}
		changed++
	}

	if changed == 0 {
		utils.SendErrorResponse(s, i, "Supply at least one setting to change.")
		return
	}

	if err := b.Store.UpsertServerConfig(i.GuildID, patch); err != nil {
		log.Printf("Failed to update server config for guild %s: %v", i.GuildID, err)
		utils.SendErrorResponse(s, i, "Could not save the configuration.")
		return
	}

	utils.SendPublicResponse(s, i, fmt.Sprintf("Updated %d setting(s).", changed))
}

func strPtr(s string) *string { return &s }

func orUnset(v string) string {
	if v == "" {
		return "unset"
	}
	return v
}

func roleOrUnset(id string) string {
	if id == "" {
		return "unset"
	}
	return fmt.Sprintf("<@&%s>", id)
}

func channelOrUnset(id string) string {
	if id == "" {
		return "unset"
	}
	return fmt.Sprintf("<#%s>", id)
}
