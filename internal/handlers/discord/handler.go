package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/clients/dnd5e"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/discord/builders"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/discord/core"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/domain/spellcasting"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/services"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/services/spellcheck"
	"github.com/bwmarrin/discordgo"
)

// CommandName is the top-level slash command
const CommandName = "fizzle"

// AdminCommandName holds the GM-only subcommands
const AdminCommandName = "fizzle-admin"

// gmPermission is what Discord requires to see and run the admin command
const gmPermission = int64(discordgo.PermissionManageServer)

const defaultCastTimeout = 10 * time.Minute

// CasterFinder loads casters to check who plays them
type CasterFinder interface {
	Get(ctx context.Context, id string) (*spellcasting.Caster, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*spellcasting.Caster, error)
}

// ComponentHandler answers button clicks for open prompts
type ComponentHandler interface {
	Owns(customID string) bool
	HandleComponent(s core.Session, i *discordgo.InteractionCreate) error
}

// CommandRegistrar creates application commands
type CommandRegistrar interface {
	ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
}

// Handler handles all Discord interactions
type Handler struct {
	spellCheck    spellcheck.Service
	spells        dnd5e.Client
	casters       CasterFinder
	components    ComponentHandler
	castTimeout   time.Duration
}

// HandlerConfig holds configuration for the Discord handler
type HandlerConfig struct {
	ServiceProvider *services.Provider // Required
	Components      ComponentHandler   // Required, usually the button prompter
	// CastTimeout bounds a whole cast including prompts. Discord tokens expire after 15 minutes.
	CastTimeout time.Duration
}

// NewHandler creates a new Discord handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg == nil || cfg.ServiceProvider == nil {
		panic("service provider is required")
	}
	if cfg.Components == nil {
		panic("component handler is required")
	}

	h := &Handler{
		spellCheck:    cfg.ServiceProvider.SpellCheckService,
		spells:        cfg.ServiceProvider.DNDClient,
		casters:       cfg.ServiceProvider.CasterRepository,
		components:    cfg.Components,
		castTimeout:   cfg.CastTimeout,
	}
	if h.castTimeout <= 0 {
		h.castTimeout = defaultCastTimeout
	}
	return h
}

// Commands returns the slash commands this handler serves
func Commands() []*discordgo.ApplicationCommand {
	minBonus := float64(-100)
	minLevel := float64(0)
	gm := gmPermission

	casterOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "caster",
		Description: "Caster ID (defaults to your only caster)",
		Required:    false,
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandName,
			Description: "Spell fizzle checks",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "cast",
					Description: "Roll the fizzle check for a spell",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "spell",
							Description: "Spell name or key, e.g. fireball",
							Required:    true,
						},
						casterOption,
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "mode",
							Description: "How the spell is prepared",
							Required:    false,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "Prepared", Value: string(spellcasting.PreparationStandard)},
								{Name: "Pact Magic", Value: string(spellcasting.PreparationPact)},
								{Name: "Innate", Value: string(spellcasting.PreparationInnate)},
								{Name: "At Will", Value: string(spellcasting.PreparationAtWill)},
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "runestone",
							Description: "Cast from a runestone (cannot fizzle)",
							Required:    false,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "level",
							Description: "Spell level, for homebrew spells or upcasting",
							Required:    false,
							MinValue:    &minLevel,
							MaxValue:    spellcasting.MaxSpellLevel,
						},
					},
				},
				{
					Name:        "status",
					Description: "Show exhaustion, bonuses and thresholds",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options:     []*discordgo.ApplicationCommandOption{casterOption},
				},
			},
		},
		{
			Name:                     AdminCommandName,
			Description:              "[GM] Spell fizzle settings",
			DefaultMemberPermissions: &gm,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "bonus",
					Description: "Set a caster's persistent spell success bonus",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "caster",
							Description: "Caster ID",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "value",
							Description: "Bonus added to every fizzle roll",
							Required:    true,
							MinValue:    &minBonus,
							MaxValue:    100,
						},
					},
				},
			},
		},
	}
}

// RegisterCommands registers the slash commands with Discord
func (h *Handler) RegisterCommands(s CommandRegistrar, appID, guildID string) error {
	for _, cmd := range Commands() {
		if _, err := s.ApplicationCommandCreate(appID, guildID, cmd); err != nil {
			return fmt.Errorf("failed to create command %s: %w", cmd.Name, err)
		}
		slog.Info("registered command", "command", cmd.Name, "guild_id", guildID)
	}
	return nil
}

// HandleInteraction is the discordgo event handler
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	RecoverMiddleware("interaction", h.Handle)(s, i)
}

// Handle routes an interaction
func (h *Handler) Handle(s core.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h.handleCommand(s, i)
	case discordgo.InteractionMessageComponent:
		h.handleComponent(s, i)
	}
}

func (h *Handler) handleCommand(s core.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}

	sub := data.Options[0]
	responder := core.NewResponder(s, i.Interaction)

	var err error
	switch data.Name + "/" + sub.Name {
	case CommandName + "/cast":
		err = h.handleCast(responder, i, sub.Options)
	case CommandName + "/status":
		err = h.handleStatus(responder, i, sub.Options)
	case AdminCommandName + "/bonus":
		err = h.handleBonus(responder, i, sub.Options)
	default:
		return
	}

	if err == nil {
		return
	}

	slog.Error("command failed", "subcommand", sub.Name, "user_id", core.InteractionUserID(i.Interaction), "error", err)
	if responder.HasResponded() {
		// Deferred responses can only be edited
		embed := builders.ErrorEmbed("Command failed", userMessage(err)).Build()
		if editErr := responder.Edit(core.NewEmbedResponse(embed)); editErr == nil {
			return
		}
	}
	respondWithError(s, i, userMessage(err))
}

func (h *Handler) handleComponent(s core.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	if !h.components.Owns(customID) {
		slog.Debug("ignoring unknown component", "custom_id", customID)
		return
	}

	if err := h.components.HandleComponent(s, i); err != nil {
		slog.Warn("component failed", "custom_id", customID, "error", err)
		respondWithError(s, i, userMessage(err))
	}
}
