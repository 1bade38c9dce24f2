package spellcheck

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/dice"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/domain/spellcasting"
	dnderr "github.com/KirkDiggler/dnd-fizzle-bot/internal/errors"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/logger"
)

// resolveOutcome rolls, pays costs and offers Desperation after a fizzle.
// At most two rolls are made.
func (s *service) resolveOutcome(ctx context.Context, attempt *CastAttempt, caster *spellcasting.Caster,
	spell *spellcasting.Spell, castCtx spellcasting.CastContext) (Outcome, error) {
	record, err := s.roll(attempt, "Roll", attempt.TotalBonus())
	if err != nil {
		return "", err
	}

	if record.Success && attempt.GritUsed {
		paid, err := s.payGrit(ctx, attempt, castCtx, nil)
		if err != nil {
			return "", err
		}
		if !paid {
			s.rescore(attempt, record)
		}
	}

	if record.Success {
		attempt.State = StateRolledSuccess
		return OutcomeSuccess, nil
	}

	attempt.State = StateRolledFail
	attempt.say("The spell fizzles.")

	var slot *spellcasting.SlotPool
	if pool, ok := s.slotToConsume(caster, spell, castCtx); ok {
		slot = &pool
	}

	if attempt.GritUsed {
		paid, err := s.payGrit(ctx, attempt, castCtx, slot)
		if err != nil {
			return "", err
		}
		if paid {
			return OutcomeFizzle, nil
		}
	}

	fresh := caster
	if slot != nil {
		fresh, err = s.apply(ctx, attempt, &spellcasting.CasterUpdate{SpendSlot: slot})
		if err != nil {
			return "", dnderr.Wrap(err, "failed to consume spell slot")
		}
	} else {
		fresh, err = s.store.Get(ctx, caster.ID)
		if err != nil {
			return "", dnderr.Wrapf(err, "failed to reload caster '%s'", caster.ID)
		}
	}

	if fresh.Exhaustion+s.rules.DesperationCost() > s.rules.ExhaustionCeiling() {
		attempt.say("Too exhausted for Desperation.")
		return OutcomeFizzle, nil
	}

	attempt.State = StateAwaitingDesperationChoice
	s.metrics.RecordDesperationOffered()

	accepted, err := s.prompter.Confirm(ctx, &ConfirmRequest{
		AttemptID: attempt.ID,
		ChannelID: castCtx.ChannelID,
		UserID:    castCtx.UserID,
		Title:     fmt.Sprintf("Desperation: %s", attempt.SpellName),
		Description: fmt.Sprintf("Reroll for %d exhaustion (currently %d)? The cost is paid whatever the reroll shows.",
			s.rules.DesperationCost(), fresh.Exhaustion),
	})
	if err != nil {
		return "", dnderr.Wrap(err, "desperation prompt failed")
	}
	if !accepted {
		attempt.State = StateRolledFail
		attempt.say("Desperation declined.")
		return OutcomeFizzle, nil
	}

	// Exhaustion may have moved while the prompt was open; the store checks the ceiling
	_, err = s.apply(ctx, attempt, &spellcasting.CasterUpdate{
		ExhaustionDelta:   s.rules.DesperationCost(),
		ExhaustionCeiling: s.rules.ExhaustionCeiling(),
	})
	if dnderr.IsResourceExhausted(err) {
		logger.FromContext(ctx).Warn("desperation cost refused", "caster_id", attempt.CasterID, "error", err)
		attempt.State = StateRolledFail
		s.warn(ctx, attempt, castCtx, "Desperation refused",
			fmt.Sprintf("Desperation refused: %s is now too exhausted to pay %d.", attempt.CasterName, s.rules.DesperationCost()))
		return OutcomeFizzle, nil
	}
	if err != nil {
		return "", dnderr.Wrap(err, "failed to apply desperation cost")
	}
	attempt.DesperationUsed = true
	attempt.say("Desperation: %+d exhaustion, rerolling.", s.rules.DesperationCost())

	// Grit and Desperation never combine, so the reroll only gets the base bonus
	reroll, err := s.roll(attempt, "Reroll", attempt.BaseBonus)
	if err != nil {
		return "", err
	}

	if reroll.Success {
		attempt.State = StateRerolledSuccess
		s.metrics.RecordDesperationTaken("success")
		return OutcomeRerollSuccess, nil
	}

	attempt.State = StateRerolledFail
	attempt.say("The spell fizzles again.")
	s.metrics.RecordDesperationTaken("fizzle")
	return OutcomeRerollFizzle, nil
}

// rescore re-judges a roll once its Grit bonus could not be paid
func (s *service) rescore(attempt *CastAttempt, record *RollRecord) {
	record.Bonus = attempt.BaseBonus
	record.Total = record.Roll + record.Bonus
	record.Success = record.Total >= record.Threshold
	attempt.say("Without Grit: %s", record)
}

func (s *service) roll(attempt *CastAttempt, label string, bonus int) (*RollRecord, error) {
	value, err := dice.RollPercentile(s.roller)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to roll spell check")
	}

	total := value + bonus
	record := &RollRecord{
		Label:     label,
		Roll:      value,
		Bonus:     bonus,
		Total:     total,
		Threshold: attempt.Threshold,
		Success:   total >= attempt.Threshold,
	}
	attempt.Rolls = append(attempt.Rolls, record)
	attempt.say("%s", record)

	return record, nil
}

// slotToConsume returns the pool a fizzle draws from. Cantrips, suppressed
// consumption, poolless preparation modes and empty pools consume nothing.
func (s *service) slotToConsume(caster *spellcasting.Caster, spell *spellcasting.Spell,
	castCtx spellcasting.CastContext) (spellcasting.SlotPool, bool) {
	if spell.Level <= 0 || castCtx.SuppressSlotConsumption {
		return spellcasting.SlotPool{}, false
	}

	mode := spell.PreparationMode
	if mode == "" {
		mode = spellcasting.PreparationStandard
	}

	pool, ok := mode.SlotPool(spell.Level)
	if !ok {
		return spellcasting.SlotPool{}, false
	}
	if caster.RemainingSlots(pool) < 1 {
		return spellcasting.SlotPool{}, false
	}

	return pool, true
}

// payGrit applies the deferred Grit cost together with the slot spend, if any.
// When the store refuses the cost because exhaustion rose past the ceiling
// while prompts were open, Grit is dropped from the attempt and nothing is paid.
func (s *service) payGrit(ctx context.Context, attempt *CastAttempt, castCtx spellcasting.CastContext,
	slot *spellcasting.SlotPool) (bool, error) {
	cost := attempt.GritExhaustionCost
	_, err := s.apply(ctx, attempt, &spellcasting.CasterUpdate{
		ExhaustionDelta:   cost,
		SpendSlot:         slot,
		ExhaustionCeiling: s.rules.ExhaustionCeiling(),
	})
	if dnderr.IsResourceExhausted(err) {
		logger.FromContext(ctx).Warn("grit cost refused", "caster_id", attempt.CasterID, "cost", cost, "error", err)
		s.metrics.RecordGritRejected()

		attempt.GritUsed = false
		attempt.GritBonus = 0
		attempt.GritExhaustionCost = 0
		s.warn(ctx, attempt, castCtx, "Grit refused",
			fmt.Sprintf("Grit refused: %s is now too exhausted to pay %d. The roll stands without it.", attempt.CasterName, cost))
		return false, nil
	}
	if err != nil {
		return false, dnderr.Wrap(err, "failed to apply grit cost")
	}

	s.metrics.RecordGritSpent(cost)
	attempt.say("Grit cost paid: %+d exhaustion.", cost)
	return true, nil
}

// warn records a message on the attempt and narrates it right away
func (s *service) warn(ctx context.Context, attempt *CastAttempt, castCtx spellcasting.CastContext, title, msg string) {
	attempt.say("%s", msg)
	s.narrator.Narrate(ctx, &Narration{
		AttemptID: attempt.ID,
		ChannelID: castCtx.ChannelID,
		Title:     title,
		Messages:  []string{msg},
	})
}

func (s *service) apply(ctx context.Context, attempt *CastAttempt, update *spellcasting.CasterUpdate) (*spellcasting.Caster, error) {
	caster, err := s.store.Apply(ctx, attempt.CasterID, update)
	if err != nil {
		return nil, err
	}

	if update.SpendSlot != nil {
		pool := *update.SpendSlot
		attempt.SlotConsumed = &pool
		attempt.say("One %s slot consumed.", slotLabel(pool))
		s.metrics.RecordSlotConsumed(pool.String())
		logger.FromContext(ctx).Debug("spell slot consumed", "caster_id", attempt.CasterID, "pool", pool.String())
	}

	return caster, nil
}

func slotLabel(pool spellcasting.SlotPool) string {
	if pool.Kind == spellcasting.PoolKindPact {
		return "pact"
	}
	return fmt.Sprintf("level %d", pool.Level)
}
