package prompt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/discord/core"
	dnderr "github.com/KirkDiggler/dnd-fizzle-bot/internal/errors"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/services/spellcheck"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func click(customID, userID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:   discordgo.InteractionMessageComponent,
		Data:   discordgo.MessageComponentInteractionData{CustomID: customID},
		Member: &discordgo.Member{User: &discordgo.User{ID: userID}},
	}}
}

func buttonID(t *testing.T, msg *discordgo.MessageSend, index int) string {
	t.Helper()
	require.NotEmpty(t, msg.Components)
	row, ok := msg.Components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Greater(t, len(row.Components), index)
	button, ok := row.Components[index].(discordgo.Button)
	require.True(t, ok)
	return button.CustomID
}

func gritRequest() *spellcheck.ChoiceRequest {
	return &spellcheck.ChoiceRequest{
		AttemptID: "attempt-1",
		ChannelID: "chan-1",
		UserID:    "user-1",
		Title:     "Use Grit?",
		Choices: []*spellcheck.Choice{
			{ID: "grit:1", Label: "+10 (1 exhaustion)"},
			{ID: "grit:2", Label: "+20 (2 exhaustion)"},
			{ID: "grit:none", Label: "No Grit"},
		},
	}
}

func TestPrompter_ChooseReturnsClickedChoice(t *testing.T) {
	session := core.NewFakeSession()
	p := NewPrompter(session, 0)

	session.OnSend = func(_ string, msg *discordgo.MessageSend) {
		assert.NoError(t, p.HandleComponent(session, click(buttonID(t, msg, 1), "user-1")))
	}

	choice, err := p.Choose(context.Background(), gritRequest())
	require.NoError(t, err)
	require.NotNil(t, choice)
	assert.Equal(t, "grit:2", choice.ID)
	assert.Equal(t, 0, p.Pending())

	sent := session.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "<@user-1>", sent[0].Content)
	assert.Equal(t, "chan-1", session.SentTo[0])

	resp := session.LastResponse()
	require.NotNil(t, resp)
	assert.Equal(t, discordgo.InteractionResponseUpdateMessage, resp.Type)
	assert.Empty(t, resp.Data.Components)
	assert.Contains(t, resp.Data.Embeds[0].Description, "+20 (2 exhaustion)")
}

func TestPrompter_ConfirmYesAndNo(t *testing.T) {
	for _, tc := range []struct {
		name   string
		button int
		want   bool
	}{
		{name: "yes", button: 0, want: true},
		{name: "no", button: 1, want: false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			session := core.NewFakeSession()
			p := NewPrompter(session, 0)
			session.OnSend = func(_ string, msg *discordgo.MessageSend) {
				assert.NoError(t, p.HandleComponent(session, click(buttonID(t, msg, tc.button), "user-1")))
			}

			ok, err := p.Confirm(context.Background(), &spellcheck.ConfirmRequest{
				AttemptID: "attempt-1",
				ChannelID: "chan-1",
				UserID:    "user-1",
				Title:     "Desperation?",
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestPrompter_OtherUserCannotAnswer(t *testing.T) {
	session := core.NewFakeSession()
	p := NewPrompter(session, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session.OnSend = func(_ string, msg *discordgo.MessageSend) {
		assert.NoError(t, p.HandleComponent(session, click(buttonID(t, msg, 0), "someone-else")))
		resp := session.LastResponse()
		assert.Equal(t, discordgo.MessageFlagsEphemeral, resp.Data.Flags)
		assert.Equal(t, 1, p.Pending())
		cancel()
	}

	_, err := p.Choose(ctx, gritRequest())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, p.Pending())
}

func TestPrompter_ContextTimeout(t *testing.T) {
	session := core.NewFakeSession()
	p := NewPrompter(session, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Confirm(ctx, &spellcheck.ConfirmRequest{AttemptID: "attempt-1", ChannelID: "chan-1"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, p.Pending())
}

func TestPrompter_UnansweredPromptCountsAsDismissed(t *testing.T) {
	session := core.NewFakeSession()
	p := NewPrompter(session, 20*time.Millisecond)

	ok, err := p.Confirm(context.Background(), &spellcheck.ConfirmRequest{AttemptID: "attempt-1", ChannelID: "chan-1"})
	require.NoError(t, err)
	assert.False(t, ok)

	choice, err := p.Choose(context.Background(), gritRequest())
	require.NoError(t, err)
	assert.Nil(t, choice)
	assert.Equal(t, 0, p.Pending())

	// a late click finds no open prompt
	require.NoError(t, p.HandleComponent(session, click("fizzle:confirm:attempt-1:yes", "user-1")))
	assert.Equal(t, discordgo.MessageFlagsEphemeral, session.LastResponse().Data.Flags)
}

func TestPrompter_StaleButton(t *testing.T) {
	session := core.NewFakeSession()
	p := NewPrompter(session, 0)

	err := p.HandleComponent(session, click("fizzle:confirm:gone:yes", "user-1"))
	require.NoError(t, err)
	resp := session.LastResponse()
	require.NotNil(t, resp)
	assert.Equal(t, "This prompt is no longer active.", resp.Data.Content)
}

func TestPrompter_Validation(t *testing.T) {
	session := core.NewFakeSession()
	p := NewPrompter(session, 0)
	ctx := context.Background()

	req := gritRequest()
	req.ChannelID = ""
	_, err := p.Choose(ctx, req)
	assert.True(t, dnderr.IsInvalidArgument(err))

	_, err = p.Choose(ctx, &spellcheck.ChoiceRequest{AttemptID: "a", ChannelID: "c"})
	assert.True(t, dnderr.IsInvalidArgument(err))

	_, err = p.Confirm(ctx, nil)
	assert.True(t, dnderr.IsInvalidArgument(err))

	assert.Empty(t, session.SentMessages())
}

func TestPrompter_SendFailure(t *testing.T) {
	session := core.NewFakeSession()
	session.SendErr = errors.New("discord down")
	p := NewPrompter(session, 0)

	_, err := p.Choose(context.Background(), gritRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send prompt")
	assert.Equal(t, 0, p.Pending())
}

func TestPrompter_Owns(t *testing.T) {
	p := NewPrompter(core.NewFakeSession(), 0)
	assert.True(t, p.Owns("fizzle:choose:attempt-1:0"))
	assert.False(t, p.Owns("combat:attack:enc-1"))
}
