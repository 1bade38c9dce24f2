package core

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// FakeSession records everything sent through it. Safe for concurrent use.
type FakeSession struct {
	mu sync.Mutex

	Responses []*discordgo.InteractionResponse
	Edits     []*discordgo.WebhookEdit
	FollowUps []*discordgo.WebhookParams
	Sent      []*discordgo.MessageSend
	SentTo    []string

	// SendErr is returned from ChannelMessageSendComplex when set
	SendErr error
	// OnSend is called after a channel message is recorded
	OnSend func(channelID string, data *discordgo.MessageSend)
}

// NewFakeSession creates an empty FakeSession
func NewFakeSession() *FakeSession {
	return &FakeSession{}
}

func (f *FakeSession) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Responses = append(f.Responses, resp)
	return nil
}

func (f *FakeSession) InteractionResponseEdit(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Edits = append(f.Edits, edit)
	return &discordgo.Message{}, nil
}

func (f *FakeSession) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FollowUps = append(f.FollowUps, data)
	return &discordgo.Message{}, nil
}

func (f *FakeSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	if f.SendErr != nil {
		err := f.SendErr
		f.mu.Unlock()
		return nil, err
	}
	f.Sent = append(f.Sent, data)
	f.SentTo = append(f.SentTo, channelID)
	id := fmt.Sprintf("msg-%d", len(f.Sent))
	hook := f.OnSend
	f.mu.Unlock()

	if hook != nil {
		hook(channelID, data)
	}
	return &discordgo.Message{ID: id, ChannelID: channelID}, nil
}

// SentMessages returns a copy of the channel messages sent so far
func (f *FakeSession) SentMessages() []*discordgo.MessageSend {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*discordgo.MessageSend(nil), f.Sent...)
}

// LastEdit returns the most recent interaction response edit
func (f *FakeSession) LastEdit() *discordgo.WebhookEdit {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Edits) == 0 {
		return nil
	}
	return f.Edits[len(f.Edits)-1]
}

// LastResponse returns the most recent interaction response
func (f *FakeSession) LastResponse() *discordgo.InteractionResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Responses) == 0 {
		return nil
	}
	return f.Responses[len(f.Responses)-1]
}

var _ Session = (*FakeSession)(nil)
