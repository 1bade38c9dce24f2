package spellcheck

//go:generate mockgen -destination=mock/mock_service.go -package=mockspellcheck -source=service.go

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/dice"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/domain/spellcasting"
	dnderr "github.com/KirkDiggler/dnd-fizzle-bot/internal/errors"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/logger"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/metrics"
)

// Service resolves spell success checks
type Service interface {
	// AttemptCast runs the fizzle check for one cast and reports whether the spell goes off
	AttemptCast(ctx context.Context, input *AttemptCastInput) (*AttemptCastResult, error)

	// Status reports a caster's current bonus, exhaustion and available options
	Status(ctx context.Context, casterID string) (*CasterStatus, error)

	// SetPersistentBonus stores a GM-granted bonus on the caster
	SetPersistentBonus(ctx context.Context, casterID string, bonus int) (*spellcasting.Caster, error)
}

// CasterStore reads and updates caster records
type CasterStore interface {
	Get(ctx context.Context, id string) (*spellcasting.Caster, error)
	// Apply is all-or-nothing and returns the updated caster
	Apply(ctx context.Context, id string, update *spellcasting.CasterUpdate) (*spellcasting.Caster, error)
}

// Prompter asks the player a question and blocks until answered or dismissed
type Prompter interface {
	// Choose returns the picked choice, or nil if the prompt was dismissed
	Choose(ctx context.Context, req *ChoiceRequest) (*Choice, error)
	// Confirm returns false if the prompt was declined or dismissed
	Confirm(ctx context.Context, req *ConfirmRequest) (bool, error)
}

// Narrator displays attempt results. Delivery errors are not reported back.
type Narrator interface {
	Narrate(ctx context.Context, narration *Narration)
}

// Choice is one option in a ChoiceRequest
type Choice struct {
	ID    string
	Label string
	Value any
}

// ChoiceRequest asks the player to pick one of several options
type ChoiceRequest struct {
	AttemptID   string
	ChannelID   string
	UserID      string
	Title       string
	Description string
	Choices     []*Choice
}

// ConfirmRequest asks the player a yes/no question
type ConfirmRequest struct {
	AttemptID   string
	ChannelID   string
	UserID      string
	Title       string
	Description string
}

// AttemptCastInput identifies the cast being checked
type AttemptCastInput struct {
	CasterID string
	Spell    *spellcasting.Spell
	Context  spellcasting.CastContext
}

// AttemptCastResult is the decision plus the trail that produced it.
// Attempt is nil when no check was run.
type AttemptCastResult struct {
	Allowed bool
	Outcome Outcome
	Attempt *CastAttempt
}

// LevelThreshold is one row of the threshold table
type LevelThreshold struct {
	Level     int
	Threshold int
}

// CasterStatus is a read-only view of a caster's fizzle state
type CasterStatus struct {
	Caster               *spellcasting.Caster
	Bonus                int
	Breakdown            []BonusLine
	Thresholds           []LevelThreshold
	GritTiers            []spellcasting.GritTier
	DesperationAvailable bool
}

type service struct {
	store    CasterStore
	rules    *spellcasting.Rules
	roller   dice.Roller
	prompter Prompter
	narrator Narrator
	metrics  *metrics.Metrics
}

// ServiceConfig holds configuration for the spell check service
type ServiceConfig struct {
	Store    CasterStore         // Required
	Prompter Prompter            // Required
	Narrator Narrator            // Optional, results are dropped if nil
	Rules    *spellcasting.Rules // Optional, defaults to the house rules
	Roller   dice.Roller         // Optional, defaults to a random roller
	Metrics  *metrics.Metrics    // Optional
}

// NewService creates a new spell check service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Store == nil {
		panic("caster store is required")
	}
	if cfg.Prompter == nil {
		panic("prompter is required")
	}

	svc := &service{
		store:    cfg.Store,
		rules:    cfg.Rules,
		roller:   cfg.Roller,
		prompter: cfg.Prompter,
		narrator: cfg.Narrator,
		metrics:  cfg.Metrics,
	}

	if svc.rules == nil {
		svc.rules = spellcasting.DefaultRules()
	}
	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	if svc.narrator == nil {
		svc.narrator = nopNarrator{}
	}

	return svc
}

type nopNarrator struct{}

func (nopNarrator) Narrate(context.Context, *Narration) {}

// AttemptCast runs the check in order: bonus, threshold, Grit, roll, Desperation
func (s *service) AttemptCast(ctx context.Context, input *AttemptCastInput) (*AttemptCastResult, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}
	if input.CasterID == "" {
		return nil, dnderr.InvalidArgument("caster ID is required")
	}
	if input.Spell == nil {
		return nil, dnderr.InvalidArgument("spell cannot be nil")
	}

	attemptID, ok := logger.AttemptIDFromContext(ctx)
	if !ok {
		attemptID = logger.NewAttemptID()
		ctx = logger.WithAttemptID(ctx, attemptID)
	}
	log := logger.FromContext(ctx).With("caster_id", input.CasterID, "spell", input.Spell.Key)

	if input.Context.Source == spellcasting.SourceRunestone {
		log.Info("runestone cast bypasses fizzle check")
		s.narrator.Narrate(ctx, &Narration{
			AttemptID: attemptID,
			ChannelID: input.Context.ChannelID,
			Title:     fmt.Sprintf("%s: automatic success", spellName(input.Spell)),
			Messages:  []string{"Cast from a runestone. The spell cannot fizzle."},
			Outcome:   OutcomeBypassed,
			Allowed:   true,
			Final:     true,
		})
		s.metrics.RecordOutcome(string(OutcomeBypassed))
		return &AttemptCastResult{Allowed: true, Outcome: OutcomeBypassed}, nil
	}

	caster, err := s.store.Get(ctx, input.CasterID)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get caster '%s'", input.CasterID)
	}

	if !caster.PlayerOwned {
		log.Debug("caster is not player owned, skipping fizzle check")
		s.metrics.RecordOutcome(string(OutcomeUngated))
		return &AttemptCastResult{Allowed: true, Outcome: OutcomeUngated}, nil
	}

	bonus, breakdown := AggregateBonus(s.rules, caster)

	threshold, supported, err := resolveThreshold(s.rules, input.Spell.Level)
	if err != nil {
		return nil, err
	}
	if !supported {
		log.Warn("no fizzle threshold for spell level, allowing cast", "spell_level", input.Spell.Level)
		s.narrator.Narrate(ctx, &Narration{
			AttemptID: attemptID,
			ChannelID: input.Context.ChannelID,
			Title:     fmt.Sprintf("%s: check skipped", spellName(input.Spell)),
			Messages:  []string{fmt.Sprintf("No success threshold for level %d spells. The cast goes ahead.", input.Spell.Level)},
			Outcome:   OutcomeUnsupported,
			Allowed:   true,
			Final:     true,
		})
		s.metrics.RecordOutcome(string(OutcomeUnsupported))
		return &AttemptCastResult{Allowed: true, Outcome: OutcomeUnsupported}, nil
	}

	attempt := &CastAttempt{
		ID:                attemptID,
		CasterID:          caster.ID,
		CasterName:        caster.Name,
		SpellName:         spellName(input.Spell),
		SpellLevel:        input.Spell.Level,
		BaseBonus:         bonus,
		Breakdown:         breakdown,
		Threshold:         threshold,
		ExhaustionAtStart: caster.Exhaustion,
		State:             StateAwaitingRoll,
	}
	attempt.say("Success threshold for a level %d spell: %d", attempt.SpellLevel, threshold)
	if len(breakdown) > 0 {
		attempt.say("Bonuses: %s", formatBreakdown(breakdown))
	}

	if err := s.negotiateGrit(ctx, attempt, input.Context); err != nil {
		return nil, err
	}

	outcome, err := s.resolveOutcome(ctx, attempt, caster, input.Spell, input.Context)
	if err != nil {
		return nil, err
	}

	log.Info("fizzle check resolved",
		"outcome", outcome,
		"threshold", attempt.Threshold,
		"bonus", attempt.TotalBonus(),
		"grit", attempt.GritUsed,
		"desperation", attempt.DesperationUsed,
	)

	s.narrator.Narrate(ctx, &Narration{
		AttemptID: attempt.ID,
		ChannelID: input.Context.ChannelID,
		Title:     narrationTitle(attempt, outcome),
		Messages:  append([]string(nil), attempt.Messages...),
		Rolls:     append([]*RollRecord(nil), attempt.Rolls...),
		Outcome:   outcome,
		Allowed:   outcome.Allowed(),
		Final:     true,
	})
	s.metrics.RecordOutcome(string(outcome))

	return &AttemptCastResult{
		Allowed: outcome.Allowed(),
		Outcome: outcome,
		Attempt: attempt,
	}, nil
}

// Status returns the caster's current bonus and options
func (s *service) Status(ctx context.Context, casterID string) (*CasterStatus, error) {
	if casterID == "" {
		return nil, dnderr.InvalidArgument("caster ID is required")
	}

	caster, err := s.store.Get(ctx, casterID)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get caster '%s'", casterID)
	}

	bonus, breakdown := AggregateBonus(s.rules, caster)

	var thresholds []LevelThreshold
	for level := 0; level <= spellcasting.MaxSpellLevel; level++ {
		if value, err := s.rules.Threshold(level); err == nil {
			thresholds = append(thresholds, LevelThreshold{Level: level, Threshold: value})
		}
	}

	return &CasterStatus{
		Caster:               caster,
		Bonus:                bonus,
		Breakdown:            breakdown,
		Thresholds:           thresholds,
		GritTiers:            availableGritTiers(s.rules, caster.Exhaustion),
		DesperationAvailable: caster.Exhaustion+s.rules.DesperationCost() <= s.rules.ExhaustionCeiling(),
	}, nil
}

// SetPersistentBonus writes the bonus flag through the store
func (s *service) SetPersistentBonus(ctx context.Context, casterID string, bonus int) (*spellcasting.Caster, error) {
	if casterID == "" {
		return nil, dnderr.InvalidArgument("caster ID is required")
	}

	caster, err := s.store.Apply(ctx, casterID, &spellcasting.CasterUpdate{
		SetFlags: map[string]any{s.rules.PersistentBonusKey(): bonus},
	})
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to set bonus on caster '%s'", casterID)
	}

	logger.FromContext(ctx).Info("persistent spell bonus updated", "caster_id", casterID, "bonus", bonus)
	return caster, nil
}

func spellName(spell *spellcasting.Spell) string {
	if spell.Name != "" {
		return spell.Name
	}
	return spell.Key
}

func formatBreakdown(lines []BonusLine) string {
	out := ""
	for i, line := range lines {
		if i > 0 {
			out += ", "
		}
		out += line.String()
	}
	return out
}

func narrationTitle(attempt *CastAttempt, outcome Outcome) string {
	switch outcome {
	case OutcomeSuccess:
		return fmt.Sprintf("%s casts %s", attempt.CasterName, attempt.SpellName)
	case OutcomeRerollSuccess:
		return fmt.Sprintf("%s pushes through and casts %s", attempt.CasterName, attempt.SpellName)
	default:
		return fmt.Sprintf("%s's %s fizzles", attempt.CasterName, attempt.SpellName)
	}
}
