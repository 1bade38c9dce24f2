package core

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Response is a Discord-agnostic reply
type Response struct {
	Content    string
	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent
	// Ephemeral responses are only visible to the user
	Ephemeral bool
}

// NewResponse creates a new response with the given content
func NewResponse(content string) *Response {
	return &Response{Content: content}
}

// NewEphemeralResponse creates a new ephemeral response
func NewEphemeralResponse(content string) *Response {
	return &Response{Content: content, Ephemeral: true}
}

// NewEmbedResponse creates a response with an embed
func NewEmbedResponse(embed *discordgo.MessageEmbed) *Response {
	return &Response{Embeds: []*discordgo.MessageEmbed{embed}}
}

// WithComponents adds components to the response
func (r *Response) WithComponents(components ...discordgo.MessageComponent) *Response {
	r.Components = components
	return r
}

// AsEphemeral sets the response to be ephemeral
func (r *Response) AsEphemeral() *Response {
	r.Ephemeral = true
	return r
}

// Responder replies to one interaction
type Responder struct {
	session     Session
	interaction *discordgo.Interaction
	responded   bool
	deferred    bool
}

// NewResponder creates a responder for an interaction
func NewResponder(s Session, i *discordgo.Interaction) *Responder {
	return &Responder{
		session:     s,
		interaction: i,
	}
}

// Defer acknowledges the interaction so the reply can come later
func (r *Responder) Defer(ephemeral bool) error {
	if r.responded || r.deferred {
		return fmt.Errorf("interaction already responded to")
	}

	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	err := r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: flags,
		},
	})

	if err == nil {
		r.deferred = true
		r.responded = true
	}

	return err
}

// Respond sends an immediate response, or edits if already responded
func (r *Responder) Respond(response *Response) error {
	if r.responded {
		return r.Edit(response)
	}

	err := r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: buildResponseData(response),
	})

	if err == nil {
		r.responded = true
	}

	return err
}

// Update replaces the message a component was clicked on
func (r *Responder) Update(response *Response) error {
	if r.responded {
		return fmt.Errorf("interaction already responded to")
	}

	err := r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: buildResponseData(response),
	})

	if err == nil {
		r.responded = true
	}

	return err
}

// Edit updates a previous response
func (r *Responder) Edit(response *Response) error {
	if !r.responded {
		return fmt.Errorf("cannot edit before responding")
	}

	_, err := r.session.InteractionResponseEdit(r.interaction, &discordgo.WebhookEdit{
		Content:    &response.Content,
		Embeds:     &response.Embeds,
		Components: &response.Components,
	})
	return err
}

// FollowUp sends an additional message after the initial response
func (r *Responder) FollowUp(response *Response) (*discordgo.Message, error) {
	if !r.responded {
		return nil, fmt.Errorf("cannot follow up before responding")
	}

	params := &discordgo.WebhookParams{
		Content:    response.Content,
		Embeds:     response.Embeds,
		Components: response.Components,
	}
	if response.Ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}

	return r.session.FollowupMessageCreate(r.interaction, true, params)
}

// HasResponded returns whether this responder has already sent a response
func (r *Responder) HasResponded() bool {
	return r.responded
}

func buildResponseData(response *Response) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Content:    response.Content,
		Embeds:     response.Embeds,
		Components: response.Components,
	}

	if response.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return data
}
