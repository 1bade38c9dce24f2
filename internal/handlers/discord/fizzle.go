package discord

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/discord/builders"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/discord/core"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/domain/spellcasting"
	dnderr "github.com/KirkDiggler/dnd-fizzle-bot/internal/errors"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/logger"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/services/spellcheck"
	"github.com/bwmarrin/discordgo"
)

const lookupTimeout = 10 * time.Second

type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) options {
	m := make(options, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

func (o options) str(name string) string {
	if opt, ok := o[name]; ok {
		return strings.TrimSpace(opt.StringValue())
	}
	return ""
}

func (o options) integer(name string) (int, bool) {
	if opt, ok := o[name]; ok {
		return int(opt.IntValue()), true
	}
	return 0, false
}

func (o options) boolean(name string) bool {
	if opt, ok := o[name]; ok {
		return opt.BoolValue()
	}
	return false
}

// handleCast runs the fizzle check. The response is deferred because prompts can take minutes.
func (h *Handler) handleCast(r *core.Responder, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	args := optionMap(opts)
	userID := core.InteractionUserID(i.Interaction)

	if err := r.Defer(false); err != nil {
		return dnderr.Wrap(err, "failed to defer cast response")
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.castTimeout)
	defer cancel()
	ctx = logger.WithAttemptID(ctx, logger.NewAttemptID())

	casterID, err := h.resolveCaster(ctx, userID, args.str("caster"))
	if err != nil {
		return err
	}

	spell, err := h.resolveSpell(ctx, args)
	if err != nil {
		return err
	}

	source := spellcasting.SourceSpellbook
	if args.boolean("runestone") {
		source = spellcasting.SourceRunestone
	}

	result, err := h.spellCheck.AttemptCast(ctx, &spellcheck.AttemptCastInput{
		CasterID: casterID,
		Spell:    spell,
		Context: spellcasting.CastContext{
			Source:    source,
			ChannelID: i.ChannelID,
			UserID:    userID,
		},
	})
	if err != nil {
		return err
	}

	return r.Edit(core.NewEmbedResponse(castResultEmbed(spell, result)))
}

func (h *Handler) handleStatus(r *core.Responder, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	casterID, err := h.resolveCaster(ctx, core.InteractionUserID(i.Interaction), optionMap(opts).str("caster"))
	if err != nil {
		return err
	}

	status, err := h.spellCheck.Status(ctx, casterID)
	if err != nil {
		return err
	}

	return r.Respond(core.NewEmbedResponse(statusEmbed(status)).AsEphemeral())
}

// handleBonus sets a GM-granted bonus on any caster
func (h *Handler) handleBonus(r *core.Responder, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	// Discord hides the command from non-GMs, but a server can override that per role
	if !isGM(i.Interaction) {
		return dnderr.PermissionDenied("only GMs (Manage Server) can set spell bonuses")
	}

	args := optionMap(opts)
	value, ok := args.integer("value")
	if !ok {
		return dnderr.InvalidArgument("a bonus value is required")
	}
	casterID := args.str("caster")
	if casterID == "" {
		return dnderr.InvalidArgument("a caster ID is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	caster, err := h.spellCheck.SetPersistentBonus(ctx, casterID, value)
	if err != nil {
		return err
	}

	embed := builders.SuccessEmbed("Bonus updated",
		fmt.Sprintf("**%s** now adds **%+d** to every spell success roll.", caster.Name, value)).Build()
	return r.Respond(core.NewEmbedResponse(embed).AsEphemeral())
}

// resolveCaster picks the explicit caster, or the user's only caster.
// Players can only act as casters they own.
func (h *Handler) resolveCaster(ctx context.Context, userID, explicit string) (string, error) {
	if h.casters == nil {
		return "", dnderr.InvalidArgument("caster lookup is unavailable")
	}

	if explicit != "" {
		caster, err := h.casters.Get(ctx, explicit)
		if err != nil {
			return "", dnderr.Wrapf(err, "failed to load caster '%s'", explicit)
		}
		if caster.OwnerID != userID {
			return "", dnderr.PermissionDenied("that caster belongs to another player")
		}
		return caster.ID, nil
	}

	list, err := h.casters.ListByOwner(ctx, userID)
	if err != nil {
		return "", dnderr.Wrap(err, "failed to list your casters")
	}

	switch len(list) {
	case 0:
		return "", dnderr.NotFound("you have no casters. Ask your GM to seed one.")
	case 1:
		return list[0].ID, nil
	}

	names := make([]string, 0, len(list))
	for _, c := range list {
		names = append(names, fmt.Sprintf("%s (`%s`)", c.Name, c.ID))
	}
	return "", dnderr.InvalidArgumentf("you have several casters, pick one with the caster option: %s", strings.Join(names, ", "))
}

// resolveSpell looks up the spell level unless one was given
func (h *Handler) resolveSpell(ctx context.Context, args options) (*spellcasting.Spell, error) {
	key := args.str("spell")
	if key == "" {
		return nil, dnderr.InvalidArgument("spell is required")
	}

	var spell *spellcasting.Spell
	if level, ok := args.integer("level"); ok {
		spell = &spellcasting.Spell{Key: key, Name: key, Level: level}
	} else {
		if h.spells == nil {
			return nil, dnderr.InvalidArgument("spell lookup is unavailable, pass the level option")
		}
		found, err := h.spells.GetSpell(ctx, key)
		if err != nil {
			return nil, dnderr.Wrapf(err, "failed to look up spell '%s'", key)
		}
		spell = found
	}

	spell.PreparationMode = spellcasting.ParsePreparationMode(args.str("mode"))
	return spell, nil
}

func isGM(i *discordgo.Interaction) bool {
	return i.Member != nil && i.Member.Permissions&gmPermission != 0
}

func castResultEmbed(spell *spellcasting.Spell, result *spellcheck.AttemptCastResult) *discordgo.MessageEmbed {
	name := spell.Name
	if name == "" {
		name = spell.Key
	}

	var embed *builders.EmbedBuilder
	if result.Allowed {
		embed = builders.SuccessEmbed(name+" goes off", outcomeText(result.Outcome))
	} else {
		embed = builders.ErrorEmbed(name+" fizzles", outcomeText(result.Outcome))
	}

	if attempt := result.Attempt; attempt != nil {
		rolls := make([]string, 0, len(attempt.Rolls))
		for _, roll := range attempt.Rolls {
			rolls = append(rolls, roll.String())
		}
		embed.Field("Rolls", strings.Join(rolls, "\n"), false)
		if attempt.SlotConsumed != nil {
			embed.Field("Slot spent", attempt.SlotConsumed.String(), true)
		}
		embed.Footer("Attempt " + attempt.ID)
	}
	return embed.Build()
}

func outcomeText(outcome spellcheck.Outcome) string {
	switch outcome {
	case spellcheck.OutcomeSuccess:
		return "The spell takes hold."
	case spellcheck.OutcomeRerollSuccess:
		return "Desperation paid off. The spell takes hold."
	case spellcheck.OutcomeFizzle:
		return "The magic slips away."
	case spellcheck.OutcomeRerollFizzle:
		return "Even desperation could not save it."
	case spellcheck.OutcomeBypassed:
		return "Runestone casts cannot fizzle."
	case spellcheck.OutcomeUnsupported:
		return "No threshold for this level, the check was skipped."
	case spellcheck.OutcomeUngated:
		return "Not a player caster, no check needed."
	}
	return string(outcome)
}

func statusEmbed(status *spellcheck.CasterStatus) *discordgo.MessageEmbed {
	caster := status.Caster

	bonus := fmt.Sprintf("**%+d**", status.Bonus)
	for _, line := range status.Breakdown {
		bonus += "\n" + line.String()
	}

	levels := make([]int, 0, len(caster.SpellSlots))
	for level := range caster.SpellSlots {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	slots := make([]string, 0, len(levels)+1)
	for _, level := range levels {
		if slot := caster.SpellSlots[level]; slot != nil {
			slots = append(slots, fmt.Sprintf("Level %d: %d/%d", level, slot.Remaining, slot.Max))
		}
	}
	if caster.Pact != nil {
		slots = append(slots, fmt.Sprintf("Pact (level %d): %d/%d", caster.Pact.Level, caster.Pact.Remaining, caster.Pact.Max))
	}

	thresholds := make([]string, 0, len(status.Thresholds))
	for _, t := range status.Thresholds {
		thresholds = append(thresholds, fmt.Sprintf("%d: %d", t.Level, t.Threshold))
	}

	grit := "None, too exhausted"
	if len(status.GritTiers) > 0 {
		tiers := make([]string, 0, len(status.GritTiers))
		for _, tier := range status.GritTiers {
			tiers = append(tiers, fmt.Sprintf("%+d for %d exhaustion", tier.Bonus, tier.Cost))
		}
		grit = strings.Join(tiers, "\n")
	}

	desperation := "Unavailable"
	if status.DesperationAvailable {
		desperation = "Available"
	}

	return builders.InfoEmbed(caster.Name, "Spell fizzle status").
		Field("Exhaustion", fmt.Sprintf("%d / %d", caster.Exhaustion, spellcasting.MaxExhaustion), true).
		Field("Bonus", bonus, true).
		Field("Slots", strings.Join(slots, "\n"), false).
		Field("Thresholds (level: roll needed)", strings.Join(thresholds, " · "), false).
		Field("Grit", grit, true).
		Field("Desperation", desperation, true).
		Build()
}
