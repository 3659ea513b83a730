package bot

import (
	"context"

	"go-guardian/internal/guard"
	"go-guardian/internal/logging"

	"github.com/bwmarrin/discordgo"
)

// SetupEventHandlers wires gateway events into the punishment engine and the
// content guard. discordgo invokes each handler on its own goroutine; the
// core's state is internally synchronized.
func (s *Session) SetupEventHandlers(engine *guard.Engine, contentGuard *guard.ContentGuard) {
	logging.Info("Setting up Discord event handlers...")

	s.discord.AddHandler(func(sess *discordgo.Session, r *discordgo.Ready) {
		logging.Info("Ready: serving %d guilds", len(r.Guilds))
	})

	s.discord.AddHandler(func(sess *discordgo.Session, g *discordgo.GuildCreate) {
		logging.Info("Guild available: %s (%s)", g.Name, g.ID)
	})

	// Member banned. Attribution decides whether the ban itself was an
	// unauthorized action by some guild staffer.
	s.discord.AddHandler(func(sess *discordgo.Session, b *discordgo.GuildBanAdd) {
		if b.GuildID == "" {
			return
		}
		engine.Handle(context.Background(), guard.ChangeEvent{
			Kind:       guard.EventBan,
			GuildID:    b.GuildID,
			TargetID:   b.User.ID,
			TargetName: b.User.Username,
		})
	})

	// Member left. The audit query for a kick entry distinguishes a kick
	// from a voluntary leave: no matching entry means no attribution and
	// the event is dropped.
	s.discord.AddHandler(func(sess *discordgo.Session, m *discordgo.GuildMemberRemove) {
		if m.GuildID == "" {
			return
		}
		engine.Handle(context.Background(), guard.ChangeEvent{
			Kind:       guard.EventKick,
			GuildID:    m.GuildID,
			TargetID:   m.User.ID,
			TargetName: m.User.Username,
		})
	})

	s.discord.AddHandler(func(sess *discordgo.Session, c *discordgo.ChannelCreate) {
		if c.GuildID == "" {
			return
		}
		engine.Handle(context.Background(), guard.ChangeEvent{
			Kind:       guard.EventChannelCreate,
			GuildID:    c.GuildID,
			TargetID:   c.ID,
			TargetName: c.Name,
		})
	})

	s.discord.AddHandler(func(sess *discordgo.Session, c *discordgo.ChannelDelete) {
		if c.GuildID == "" {
			return
		}
		engine.Handle(context.Background(), guard.ChangeEvent{
			Kind:       guard.EventChannelDelete,
			GuildID:    c.GuildID,
			TargetID:   c.ID,
			TargetName: c.Name,
		})
	})

	s.discord.AddHandler(func(sess *discordgo.Session, r *discordgo.GuildRoleDelete) {
		if r.GuildID == "" {
			return
		}
		engine.Handle(context.Background(), guard.ChangeEvent{
			Kind:     guard.EventRoleDelete,
			GuildID:  r.GuildID,
			TargetID: r.RoleID,
		})
	})

	s.discord.AddHandler(func(sess *discordgo.Session, r *discordgo.GuildRoleUpdate) {
		if r.GuildID == "" {
			return
		}
		// Managed roles are edited by Discord integrations, not people.
		if r.Role.Managed {
			return
		}
		engine.Handle(context.Background(), guard.ChangeEvent{
			Kind:       guard.EventRoleUpdate,
			GuildID:    r.GuildID,
			TargetID:   r.Role.ID,
			TargetName: r.Role.Name,
		})
	})

	if contentGuard != nil {
		s.discord.AddHandler(func(sess *discordgo.Session, m *discordgo.MessageCreate) {
			if m.GuildID == "" || m.Author == nil {
				return
			}
			contentGuard.Inspect(context.Background(), guard.Message{
				ID:        m.ID,
				ChannelID: m.ChannelID,
				GuildID:   m.GuildID,
				AuthorID:  m.Author.ID,
				AuthorBot: m.Author.Bot,
				Content:   m.Content,
			})
		})
	}

	logging.Info("Discord event handlers configured")
}
