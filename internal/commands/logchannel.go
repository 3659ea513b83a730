package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// handleSetLog binds the guild's security log channel, owner only.
func (h *Handler) handleSetLog(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if interactionUserID(i) != h.trust.OwnerID() {
		return respondDenied(s, i)
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return fmt.Errorf("no channel specified")
	}

	channel := options[0].ChannelValue(s)
	if channel == nil {
		return fmt.Errorf("channel not found")
	}

	if err := h.notifier.Bind(i.GuildID, channel.ID); err != nil {
		return fmt.Errorf("failed to save log channel: %w", err)
	}

	return respondContent(s, i, fmt.Sprintf("✅ Log channel set to <#%s>", channel.ID))
}

// handleShowLog reports the channel records currently resolve to.
func (h *Handler) handleShowLog(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	channelID := h.notifier.Resolve(i.GuildID)
	if channelID == "" {
		return respondContent(s, i, "⚠️ No log channel found.")
	}
	return respondContent(s, i, fmt.Sprintf("📑 Current log channel is <#%s>", channelID))
}
