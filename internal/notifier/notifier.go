package notifier

import (
	"sync"
	"time"

	"go-guardian/internal/logging"

	"github.com/bwmarrin/discordgo"
)

// DefaultLogChannelName is the fallback channel located or created when the
// guild has no explicit binding.
const DefaultLogChannelName = "security-logs"

// ChannelAPI is the slice of the Discord API the notifier needs. Implemented
// by *discordgo.Session.
type ChannelAPI interface {
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	GuildChannelCreate(guildID, name string, ctype discordgo.ChannelType, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// BindingStore persists log channel bindings. A nil store keeps bindings
// memory-only.
type BindingStore interface {
	SetLogChannel(guildID, channelID string) error
}

// Notifier delivers audit records to a per-guild log channel. Delivery is
// best-effort throughout; a guild where no channel can be resolved or
// created simply gets no records.
type Notifier struct {
	mu       sync.RWMutex
	bindings map[string]string // guildID -> channelID

	api   ChannelAPI
	store BindingStore
}

func New(api ChannelAPI, store BindingStore) *Notifier {
	return &Notifier{
		bindings: make(map[string]string),
		api:      api,
		store:    store,
	}
}

// Bind sets the explicit log channel for a guild and persists the binding.
func (n *Notifier) Bind(guildID, channelID string) error {
	n.mu.Lock()
	n.bindings[guildID] = channelID
	n.mu.Unlock()

	if n.store != nil {
		return n.store.SetLogChannel(guildID, channelID)
	}
	return nil
}

// Seed loads a persisted binding without touching the store.
func (n *Notifier) Seed(guildID, channelID string) {
	n.mu.Lock()
	n.bindings[guildID] = channelID
	n.mu.Unlock()
}

// Binding returns the explicit binding for a guild, "" if none.
func (n *Notifier) Binding(guildID string) string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.bindings[guildID]
}

// Resolve returns the channel id records for guildID should go to: the
// explicit binding if set, otherwise an existing channel named
// security-logs, otherwise a lazily created one. Returns "" when nothing
// can be resolved.
func (n *Notifier) Resolve(guildID string) string {
	if bound := n.Binding(guildID); bound != "" {
		return bound
	}

	channels, err := n.api.GuildChannels(guildID)
	if err != nil {
		logging.Warn("Failed to list channels for guild %s: %v", guildID, err)
		return ""
	}
	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildText && ch.Name == DefaultLogChannelName {
			return ch.ID
		}
	}

	created, err := n.api.GuildChannelCreate(guildID, DefaultLogChannelName, discordgo.ChannelTypeGuildText)
	if err != nil {
		logging.Warn("Failed to create log channel in guild %s: %v", guildID, err)
		return ""
	}
	return created.ID
}

// Record implements guard.LogSink.
func (n *Notifier) Record(guildID, message string) {
	channelID := n.Resolve(guildID)
	if channelID == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Description: message,
		Color:       0xED4245,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Guardian Security",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if _, err := n.api.ChannelMessageSendEmbed(channelID, embed); err != nil {
		logging.Warn("Failed to deliver log record to channel %s: %v", channelID, err)
	}
}
