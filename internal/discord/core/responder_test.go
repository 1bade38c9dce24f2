package core

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponder_DeferThenRespondEdits(t *testing.T) {
	session := NewFakeSession()
	r := NewResponder(session, &discordgo.Interaction{ID: "i-1"})

	require.NoError(t, r.Defer(true))
	assert.Error(t, r.Defer(false))

	require.NoError(t, r.Respond(NewResponse("done")))

	require.Len(t, session.Responses, 1)
	assert.Equal(t, discordgo.InteractionResponseDeferredChannelMessageWithSource, session.Responses[0].Type)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, session.Responses[0].Data.Flags)
	require.NotNil(t, session.LastEdit())
	assert.Equal(t, "done", *session.LastEdit().Content)
}

func TestResponder_RespondAndUpdate(t *testing.T) {
	session := NewFakeSession()
	r := NewResponder(session, &discordgo.Interaction{ID: "i-1"})

	assert.Error(t, r.Edit(NewResponse("early")))
	_, err := r.FollowUp(NewResponse("early"))
	assert.Error(t, err)

	require.NoError(t, r.Update(NewEphemeralResponse("picked")))
	assert.True(t, r.HasResponded())
	assert.Equal(t, discordgo.InteractionResponseUpdateMessage, session.LastResponse().Type)
	assert.Error(t, r.Update(NewResponse("twice")))

	_, err = r.FollowUp(NewEphemeralResponse("more"))
	require.NoError(t, err)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, session.FollowUps[0].Flags)
}

func TestInteractionUserID(t *testing.T) {
	assert.Equal(t, "m", InteractionUserID(&discordgo.Interaction{Member: &discordgo.Member{User: &discordgo.User{ID: "m"}}}))
	assert.Equal(t, "u", InteractionUserID(&discordgo.Interaction{User: &discordgo.User{ID: "u"}}))
	assert.Equal(t, "", InteractionUserID(&discordgo.Interaction{}))
}
