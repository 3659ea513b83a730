package commands

import (
	"errors"
	"fmt"
	"strings"

	"go-guardian/internal/guard"

	"github.com/bwmarrin/discordgo"
)

func (h *Handler) handleTrustAdd(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	user := subcommandUser(s, i, "add")
	if user == nil {
		return fmt.Errorf("no user specified")
	}

	err := h.trust.AddTrusted(interactionUserID(i), i.GuildID, user.ID)
	if errors.Is(err, guard.ErrUnauthorized) {
		return respondDenied(s, i)
	}
	if err != nil {
		return fmt.Errorf("failed to add trusted user: %w", err)
	}

	return respondContent(s, i, fmt.Sprintf("✅ <@%s> has been added to the trusted list.", user.ID))
}

func (h *Handler) handleTrustRemove(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	user := subcommandUser(s, i, "remove")
	if user == nil {
		return fmt.Errorf("no user specified")
	}

	err := h.trust.RemoveTrusted(interactionUserID(i), i.GuildID, user.ID)
	if errors.Is(err, guard.ErrUnauthorized) {
		return respondDenied(s, i)
	}
	if err != nil {
		return fmt.Errorf("failed to remove trusted user: %w", err)
	}

	return respondContent(s, i, fmt.Sprintf("✅ <@%s> has been removed from the trusted list.", user.ID))
}

func (h *Handler) handleTrustView(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ids := h.trust.Trusted(i.GuildID)
	if len(ids) == 0 {
		return respondContent(s, i, "👥 No users are explicitly trusted in this server.")
	}

	mentions := make([]string, 0, len(ids))
	for _, id := range ids {
		mentions = append(mentions, fmt.Sprintf("<@%s> (`%s`)", id, id))
	}
	return respondContent(s, i, "👥 Trusted users: "+strings.Join(mentions, ", "))
}

// subcommandUser extracts the user option from a /trust subcommand.
func subcommandUser(s *discordgo.Session, i *discordgo.InteractionCreate, name string) *discordgo.User {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name != name {
			continue
		}
		for _, sub := range opt.Options {
			if sub.Name == "user" {
				return sub.UserValue(s)
			}
		}
	}
	return nil
}
