package discord

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// fakeSession records what the handlers send to Discord
type fakeSession struct {
	mu        sync.Mutex
	messages  map[string][]string
	channels  []*discordgo.Channel
	created   []discordgo.GuildChannelCreateData
	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit
	sendErr   error
}

func newFakeSession() *fakeSession {
	return &fakeSession{messages: make(map[string][]string)}
}

func (f *fakeSession) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.messages[channelID] = append(f.messages[channelID], content)
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func (f *fakeSession) GuildChannels(string, ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*discordgo.Channel(nil), f.channels...), nil
}

func (f *fakeSession) GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, data)
	ch := &discordgo.Channel{
		ID:       fmt.Sprintf("created-%d", len(f.created)),
		GuildID:  guildID,
		Name:     data.Name,
		ParentID: data.ParentID,
		Type:     data.Type,
	}
	f.channels = append(f.channels, ch)
	return ch, nil
}

func (f *fakeSession) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeSession) InteractionResponseEdit(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, edit)
	return &discordgo.Message{}, nil
}

// lastEdit returns the text of the final deferred answer
func (f *fakeSession) lastEdit() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.edits) == 0 {
		return ""
	}
	e := f.edits[len(f.edits)-1]
	if e.Content != nil {
		return *e.Content
	}
	if e.Embeds != nil && len(*e.Embeds) > 0 {
		return (*e.Embeds)[0].Description
	}
	return ""
}
