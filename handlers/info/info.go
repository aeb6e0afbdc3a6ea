package info

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"

	"cascade-bot/bot"
	"cascade-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// HandleBotInfoCommand reports runtime counters and host statistics.
func HandleBotInfoCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cpuCount, _ := cpu.Counts(true)
	cpuPercent, _ := cpu.Percent(0, false)
	vm, _ := mem.VirtualMemory()
	hostInfo, _ := host.Info()

	cpuUsage := "n/a"
	if len(cpuPercent) > 0 {
		cpuUsage = fmt.Sprintf("%.1f%%", cpuPercent[0])
	}
	osVersion := "unknown"
	if hostInfo != nil {
		osVersion = fmt.Sprintf("%s %s", hostInfo.Platform, hostInfo.PlatformVersion)
	}
	memUsage := "n/a"
	if vm != nil {
		memUsage = fmt.Sprintf("%.1f%% (%d MB / %d MB)", vm.UsedPercent, vm.Used/1024/1024, vm.Total/1024/1024)
	}

	snapshot := b.Stats.Snapshot()

	embed := &discordgo.MessageEmbed{
		Title: "Bot Information",
		Color: 0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Uptime", Value: utils.FormatDuration(snapshot.Uptime), Inline: true},
			{Name: "Commands Executed", Value: fmt.Sprintf("%d", snapshot.CommandsExecuted), Inline: true},
			{Name: "Messages Processed", Value: fmt.Sprintf("%d", snapshot.MessagesProcessed), Inline: true},
			{Name: "Events Handled", Value: fmt.Sprintf("%d", snapshot.EventsHandled), Inline: true},
			{Name: "Guilds", Value: fmt.Sprintf("%d", len(s.State.Guilds)), Inline: true},
			{Name: "Gateway Latency", Value: s.HeartbeatLatency().String(), Inline: true},
			{Name: "OS", Value: osVersion, Inline: true},
			{Name: "Go Version", Value: runtime.Version(), Inline: true},
			{Name: "Goroutines", Value: fmt.Sprintf("%d", runtime.NumGoroutine()), Inline: true},
			{Name: "CPU Count", Value: fmt.Sprintf("%d", cpuCount), Inline: true},
			{Name: "CPU Usage", Value: cpuUsage, Inline: true},
			{Name: "Memory", Value: memUsage, Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	utils.SendEmbedResponse(s, i, embed)
}

// HandlePingCommand reports the gateway heartbeat latency.
func HandlePingCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	utils.SendPublicResponse(s, i, fmt.Sprintf("Pong! Gateway latency: %s", s.HeartbeatLatency().Round(time.Millisecond)))
}

// HandleServerInfoCommand shows basic facts about the current guild.
func HandleServerInfoCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	guild, err := s.State.Guild(i.GuildID)
	if err != nil {
		guild, err = s.Guild(i.GuildID)
		if err != nil {
			log.Printf("Failed to fetch guild %s: %v", i.GuildID, err)
			utils.SendErrorResponse(s, i, "Could not load server information.")
			return
		}
	}

	created, _ := discordgo.SnowflakeTimestamp(guild.ID)

	fields := []*discordgo.MessageEmbedField{
		{Name: "Owner", Value: fmt.Sprintf("<@%s>", guild.OwnerID), Inline: true},
		{Name: "Members", Value: fmt.Sprintf("%d", guild.MemberCount), Inline: true},
		{Name: "Roles", Value: fmt.Sprintf("%d", len(guild.Roles)), Inline: true},
		{Name: "Channels", Value: fmt.Sprintf("%d", len(guild.Channels)), Inline: true},
		{Name: "Created", Value: fmt.Sprintf("<t:%d:R>", created.Unix()), Inline: true},
	}
	if count, err := b.Store.CountActionsByGuild(i.GuildID, time.Now().AddDate(0, 0, -30)); err == nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Mod Actions (30d)", Value: fmt.Sprintf("%d", count), Inline: true,
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:     guild.Name,
		Color:     utils.ColorBlue,
		Fields:    fields,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if guild.Icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: guild.IconURL("256")}
	}
	utils.SendEmbedResponse(s, i, embed)
}

// HandleUserInfoCommand shows basic facts about a member, defaulting to the
// invoker.
func HandleUserInfoCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	target := i.Member.User
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			target = opt.UserValue(s)
		}
	}

	member, err := s.GuildMember(i.GuildID, target.ID)
	if err != nil {
		log.Printf("Failed to fetch member %s: %v", target.ID, err)
		utils.SendErrorResponse(s, i, "Could not load member information.")
		return
	}

	created, _ := discordgo.SnowflakeTimestamp(target.ID)

	fields := []*discordgo.MessageEmbedField{
		{Name: "ID", Value: target.ID, Inline: true},
		{Name: "Account Created", Value: fmt.Sprintf("<t:%d:R>", created.Unix()), Inline: true},
		{Name: "Joined", Value: fmt.Sprintf("<t:%d:R>", member.JoinedAt.Unix()), Inline: true},
		{Name: "Roles", Value: fmt.Sprintf("%d", len(member.Roles)), Inline: true},
	}

	if user, err := b.Store.GetUser(target.ID); err == nil && user != nil {
		fields = append(fields,
			&discordgo.MessageEmbedField{Name: "Warnings", Value: fmt.Sprintf("%d", user.Warnings), Inline: true},
			&discordgo.MessageEmbedField{Name: "XP", Value: fmt.Sprintf("%d", user.XPPoints), Inline: true})
	}
	if b.Cache != nil {
		if lastSeen, ok, err := b.Cache.LastSeen(context.Background(), target.ID); err == nil && ok {
			fields = append(fields, &discordgo.MessageEmbedField{
				Name: "Last Seen", Value: fmt.Sprintf("<t:%d:R>", lastSeen.Unix()), Inline: true,
			})
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:     target.Username,
		Color:     utils.ColorBlue,
		Fields:    fields,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if avatar := target.AvatarURL("256"); avatar != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatar}
	}
	utils.SendEmbedResponse(s, i, embed)
}
