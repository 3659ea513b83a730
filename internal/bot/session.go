package bot

import (
	"fmt"

	"go-guardian/internal/logging"

	"github.com/bwmarrin/discordgo"
)

type Session struct {
	discord *discordgo.Session
	token   string
	BotID   string
}

var globalSession *Session

// Initialize creates the Discord session. The connection is opened later,
// after event handlers are registered.
func Initialize(token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentsAll
	dg.State.TrackMembers = true
	dg.State.TrackRoles = true
	dg.State.TrackChannels = true

	globalSession = &Session{
		discord: dg,
		token:   token,
	}
	return nil
}

// GetSession returns the global session.
func GetSession() *Session {
	return globalSession
}

// GetDiscord returns the underlying discordgo session.
func (s *Session) GetDiscord() *discordgo.Session {
	return s.discord
}

// Connect opens the gateway connection.
func (s *Session) Connect() error {
	if err := s.discord.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if s.discord.State.User != nil {
		s.BotID = s.discord.State.User.ID
		logging.Info("Connected as %s (%s)", s.discord.State.User.Username, s.BotID)
	}
	return nil
}

func (s *Session) Close() error {
	if s.discord != nil {
		return s.discord.Close()
	}
	return nil
}

// RegisterCommands registers all slash commands with Discord.
func (s *Session) RegisterCommands(commands []*discordgo.ApplicationCommand) error {
	logging.Info("Registering %d slash commands...", len(commands))

	for _, cmd := range commands {
		_, err := s.discord.ApplicationCommandCreate(s.discord.State.User.ID, "", cmd)
		if err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
		logging.Info("Registered command: /%s", cmd.Name)
	}
	return nil
}

// AddHandler adds an event handler to the Discord session.
func (s *Session) AddHandler(handler interface{}) {
	s.discord.AddHandler(handler)
}
