package spellcheck

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/domain/spellcasting"
	dnderr "github.com/KirkDiggler/dnd-fizzle-bot/internal/errors"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/logger"
)

const gritDeclineID = "grit:none"

// availableGritTiers filters the configured tiers to those whose cost keeps
// exhaustion at or under the ceiling
func availableGritTiers(rules *spellcasting.Rules, exhaustion int) []spellcasting.GritTier {
	var tiers []spellcasting.GritTier
	for _, tier := range rules.GritTiers() {
		if exhaustion+tier.Cost <= rules.ExhaustionCeiling() {
			tiers = append(tiers, tier)
		}
	}
	return tiers
}

// negotiateGrit offers the pre-roll bonus. The exhaustion cost is only
// recorded here and paid by the outcome engine.
func (s *service) negotiateGrit(ctx context.Context, attempt *CastAttempt, castCtx spellcasting.CastContext) error {
	tiers := availableGritTiers(s.rules, attempt.ExhaustionAtStart)
	if len(tiers) == 0 {
		return nil
	}

	choices := make([]*Choice, 0, len(tiers)+1)
	for _, tier := range tiers {
		choices = append(choices, &Choice{
			ID:    fmt.Sprintf("grit:%d", tier.Cost),
			Label: fmt.Sprintf("+%d (%d exhaustion)", tier.Bonus, tier.Cost),
			Value: tier,
		})
	}
	choices = append(choices, &Choice{ID: gritDeclineID, Label: "No Grit"})

	choice, err := s.prompter.Choose(ctx, &ChoiceRequest{
		AttemptID: attempt.ID,
		ChannelID: castCtx.ChannelID,
		UserID:    castCtx.UserID,
		Title:     fmt.Sprintf("Grit: %s", attempt.SpellName),
		Description: fmt.Sprintf("Threshold %d, bonus %+d, exhaustion %d. Push harder before rolling?",
			attempt.Threshold, attempt.BaseBonus, attempt.ExhaustionAtStart),
		Choices: choices,
	})
	if err != nil {
		return dnderr.Wrap(err, "grit prompt failed")
	}

	tier, ok := gritTierFrom(choice)
	if !ok {
		return nil
	}

	if attempt.ExhaustionAtStart+tier.Cost > s.rules.ExhaustionCeiling() {
		logger.FromContext(ctx).Warn("grit tier rejected",
			"exhaustion", attempt.ExhaustionAtStart,
			"cost", tier.Cost,
			"ceiling", s.rules.ExhaustionCeiling(),
		)
		s.metrics.RecordGritRejected()

		msg := fmt.Sprintf("Grit +%d rejected: %d exhaustion would take %s past %d.",
			tier.Bonus, tier.Cost, attempt.CasterName, s.rules.ExhaustionCeiling())
		s.warn(ctx, attempt, castCtx, "Grit rejected", msg)
		return nil
	}

	attempt.GritUsed = true
	attempt.GritBonus = tier.Bonus
	attempt.GritExhaustionCost = tier.Cost
	attempt.say("Grit: %+d for %d exhaustion", tier.Bonus, tier.Cost)

	return nil
}

func gritTierFrom(choice *Choice) (spellcasting.GritTier, bool) {
	if choice == nil {
		return spellcasting.GritTier{}, false
	}
	tier, ok := choice.Value.(spellcasting.GritTier)
	return tier, ok
}
