package discord

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/discord/core"
	dnderr "github.com/KirkDiggler/dnd-fizzle-bot/internal/errors"
	"github.com/bwmarrin/discordgo"
)

// RecoverMiddleware wraps handler functions to recover from panics
func RecoverMiddleware(handlerName string, handler func(core.Session, *discordgo.InteractionCreate)) func(*discordgo.Session, *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("panic in handler", "handler", handlerName, "panic", r, "stack", string(debug.Stack()))
				respondWithError(s, i, fmt.Sprintf("An unexpected error occurred: %v", r))
			}
		}()

		handler(s, i)
	}
}

// respondWithError attempts to send an error message to the user
func respondWithError(s core.Session, i *discordgo.InteractionCreate, message string) {
	content := "❌ " + message

	// Try responding, then editing a deferred response, then a followup
	responses := []func() error{
		func() error {
			return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: content,
					Flags:   discordgo.MessageFlagsEphemeral,
				},
			})
		},
		func() error {
			_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
				Content: &content,
			})
			return err
		},
		func() error {
			_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
				Content: content,
				Flags:   discordgo.MessageFlagsEphemeral,
			})
			return err
		},
	}

	for _, respond := range responses {
		if err := respond(); err == nil {
			return
		}
	}

	slog.Error("failed to send error response", "message", message)
}

// userMessage turns an error into something safe to show a player
func userMessage(err error) string {
	switch dnderr.GetCode(err) {
	case dnderr.CodeInvalidArgument, dnderr.CodeNotFound, dnderr.CodeFailedPrecondition,
		dnderr.CodeUnsupported, dnderr.CodeAlreadyExists, dnderr.CodePermissionDenied,
		dnderr.CodeResourceExhausted:
		return err.Error()
	case dnderr.CodeConflict:
		return "That caster was updated by someone else at the same time. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}
