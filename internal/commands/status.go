package commands

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

var startedAt = time.Now()

// handleStatus reports gateway latency, uptime and host load.
func (h *Handler) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	uptime := time.Since(startedAt).Round(time.Second)
	wsLatency := s.HeartbeatLatency()

	memValue := "n/a"
	if vm, err := mem.VirtualMemory(); err == nil {
		memValue = fmt.Sprintf("%.1f%% of %d MB", vm.UsedPercent, vm.Total/1024/1024)
	}

	cpuValue := "n/a"
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		cpuValue = fmt.Sprintf("%.1f%%", percents[0])
	}

	embed := &discordgo.MessageEmbed{
		Title: "🛡️ Guardian Status",
		Color: 0x2B2D31,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "⏱️ Uptime", Value: fmt.Sprintf("`%s`", uptime), Inline: true},
			{Name: "⚡ Gateway", Value: fmt.Sprintf("`%dms`", wsLatency.Milliseconds()), Inline: true},
			{Name: "🖥️ CPU", Value: fmt.Sprintf("`%s`", cpuValue), Inline: true},
			{Name: "🧠 Memory", Value: fmt.Sprintf("`%s`", memValue), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}
