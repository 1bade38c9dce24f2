package narration

import (
	"context"
	"strings"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/discord/builders"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/discord/core"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/logger"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/services/spellcheck"
	"github.com/bwmarrin/discordgo"
)

// Narrator posts attempt narrations as channel embeds
type Narrator struct {
	session core.Session
}

var _ spellcheck.Narrator = (*Narrator)(nil)

// NewNarrator creates a channel narrator
func NewNarrator(session core.Session) *Narrator {
	if session == nil {
		panic("session is required")
	}
	return &Narrator{session: session}
}

// Narrate sends the narration. Send failures are logged and dropped.
func (n *Narrator) Narrate(ctx context.Context, narration *spellcheck.Narration) {
	if narration == nil {
		return
	}
	log := logger.FromContext(ctx)
	if narration.ChannelID == "" {
		log.Debug("narration has no channel, dropping", "title", narration.Title)
		return
	}

	_, err := n.session.ChannelMessageSendComplex(narration.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{BuildEmbed(narration)},
	})
	if err != nil {
		log.Warn("failed to send narration", "channel_id", narration.ChannelID, "error", err)
	}
}

// BuildEmbed renders a narration
func BuildEmbed(narration *spellcheck.Narration) *discordgo.MessageEmbed {
	rolls := make([]string, 0, len(narration.Rolls))
	for _, roll := range narration.Rolls {
		rolls = append(rolls, roll.String())
	}

	embed := builders.NewEmbed().
		Title(narration.Title).
		Description(strings.Join(narration.Messages, "\n")).
		Color(colorFor(narration)).
		Field("Rolls", strings.Join(rolls, "\n"), false)

	if narration.AttemptID != "" {
		embed.Footer("Attempt " + narration.AttemptID)
	}
	return embed.Build()
}

func colorFor(narration *spellcheck.Narration) int {
	if !narration.Final {
		return builders.ColorWarning
	}
	switch narration.Outcome {
	case spellcheck.OutcomeSuccess, spellcheck.OutcomeRerollSuccess:
		return builders.ColorSuccess
	case spellcheck.OutcomeFizzle, spellcheck.OutcomeRerollFizzle:
		return builders.ColorError
	default:
		return builders.ColorInfo
	}
}
