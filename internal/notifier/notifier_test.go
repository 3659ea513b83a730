package notifier

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannelAPI struct {
	channels    []*discordgo.Channel
	listErr     error
	createErr   error
	created     []string
	sent        map[string][]*discordgo.MessageEmbed
	sendErr     error
	nextChannel string
}

func newFakeChannelAPI() *fakeChannelAPI {
	return &fakeChannelAPI{sent: make(map[string][]*discordgo.MessageEmbed), nextChannel: "c-created"}
}

func (f *fakeChannelAPI) GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.channels, nil
}

func (f *fakeChannelAPI) GuildChannelCreate(guildID, name string, ctype discordgo.ChannelType, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, guildID+"/"+name)
	return &discordgo.Channel{ID: f.nextChannel, Name: name, Type: ctype}, nil
}

func (f *fakeChannelAPI) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent[channelID] = append(f.sent[channelID], embed)
	return &discordgo.Message{}, nil
}

func TestExplicitBindingWins(t *testing.T) {
	api := newFakeChannelAPI()
	api.channels = []*discordgo.Channel{
		{ID: "c-default", Name: DefaultLogChannelName, Type: discordgo.ChannelTypeGuildText},
	}
	n := New(api, nil)
	require.NoError(t, n.Bind("g1", "c-bound"))

	assert.Equal(t, "c-bound", n.Resolve("g1"))
}

func TestFallbackToExistingNamedChannel(t *testing.T) {
	api := newFakeChannelAPI()
	api.channels = []*discordgo.Channel{
		{ID: "c-voice", Name: DefaultLogChannelName, Type: discordgo.ChannelTypeGuildVoice},
		{ID: "c-logs", Name: DefaultLogChannelName, Type: discordgo.ChannelTypeGuildText},
	}
	n := New(api, nil)

	assert.Equal(t, "c-logs", n.Resolve("g1"))
	assert.Empty(t, api.created, "existing channel must not be recreated")
}

func TestLazyChannelCreation(t *testing.T) {
	api := newFakeChannelAPI()
	n := New(api, nil)

	assert.Equal(t, "c-created", n.Resolve("g1"))
	assert.Equal(t, []string{"g1/" + DefaultLogChannelName}, api.created)
}

func TestResolveFailureYieldsEmpty(t *testing.T) {
	api := newFakeChannelAPI()
	api.listErr = errors.New("missing access")
	n := New(api, nil)

	assert.Equal(t, "", n.Resolve("g1"))
}

func TestCreateFailureYieldsEmpty(t *testing.T) {
	api := newFakeChannelAPI()
	api.createErr = errors.New("missing MANAGE_CHANNELS")
	n := New(api, nil)

	assert.Equal(t, "", n.Resolve("g1"))
}

func TestRecordDeliversEmbed(t *testing.T) {
	api := newFakeChannelAPI()
	n := New(api, nil)
	n.Seed("g1", "c1")

	n.Record("g1", "🚨 **Auto-ban** → <@U1>")

	require.Len(t, api.sent["c1"], 1)
	assert.Contains(t, api.sent["c1"][0].Description, "Auto-ban")
}

func TestRecordSwallowsDeliveryFailure(t *testing.T) {
	api := newFakeChannelAPI()
	api.sendErr = errors.New("missing SEND_MESSAGES")
	n := New(api, nil)
	n.Seed("g1", "c1")

	assert.NotPanics(t, func() { n.Record("g1", "hello") })
}

func TestRecordDroppedWhenUnresolvable(t *testing.T) {
	api := newFakeChannelAPI()
	api.listErr = errors.New("missing access")
	n := New(api, nil)

	n.Record("g1", "hello")

	assert.Empty(t, api.sent)
}

type fakeBindingStore struct {
	saved map[string]string
	err   error
}

func (f *fakeBindingStore) SetLogChannel(guildID, channelID string) error {
	if f.err != nil {
		return f.err
	}
	if f.saved == nil {
		f.saved = make(map[string]string)
	}
	f.saved[guildID] = channelID
	return nil
}

func TestBindPersists(t *testing.T) {
	store := &fakeBindingStore{}
	n := New(newFakeChannelAPI(), store)

	require.NoError(t, n.Bind("g1", "c1"))

	assert.Equal(t, "c1", store.saved["g1"])
	assert.Equal(t, "c1", n.Binding("g1"))
}

func TestSeedDoesNotPersist(t *testing.T) {
	store := &fakeBindingStore{}
	n := New(newFakeChannelAPI(), store)

	n.Seed("g1", "c1")

	assert.Empty(t, store.saved)
	assert.Equal(t, "c1", n.Binding("g1"))
}
