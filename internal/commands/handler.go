package commands

import (
	"fmt"

	"go-guardian/internal/bot"
	"go-guardian/internal/guard"
	"go-guardian/internal/logging"
	"go-guardian/internal/notifier"

	"github.com/bwmarrin/discordgo"
)

// Handler routes slash command interactions to their handlers.
type Handler struct {
	session  *bot.Session
	trust    *guard.TrustRegistry
	notifier *notifier.Notifier
}

var globalHandler *Handler

// Initialize wires the command handler and registers all commands.
func Initialize(session *bot.Session, trust *guard.TrustRegistry, n *notifier.Notifier) error {
	globalHandler = &Handler{
		session:  session,
		trust:    trust,
		notifier: n,
	}

	session.AddHandler(globalHandler.handleInteraction)

	commands := GetAllCommands()
	if err := session.RegisterCommands(commands); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	logging.Info("Command handler initialized with %d commands", len(commands))
	return nil
}

func (h *Handler) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()

	var err error
	switch data.Name {
	case "setlog":
		err = h.handleSetLog(s, i)
	case "showlog":
		err = h.handleShowLog(s, i)
	case "trust":
		if len(data.Options) > 0 {
			switch data.Options[0].Name {
			case "add":
				err = h.handleTrustAdd(s, i)
			case "remove":
				err = h.handleTrustRemove(s, i)
			case "view":
				err = h.handleTrustView(s, i)
			}
		}
	case "status":
		err = h.handleStatus(s, i)
	default:
		err = fmt.Errorf("unknown command: %s", data.Name)
	}

	if err != nil {
		logging.Error("Command error [%s]: %v", data.Name, err)
		respondError(s, i, err.Error())
	}
}

// interactionUserID returns the id of the invoking principal.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ Error: %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func respondDenied(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "❌ You are not allowed to use this command.",
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func respondContent(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
}
