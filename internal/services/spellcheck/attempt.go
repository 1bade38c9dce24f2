package spellcheck

import (
	"fmt"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/domain/spellcasting"
)

// State is a step of the outcome engine
type State string

const (
	StateAwaitingRoll              State = "awaiting_roll"
	StateRolledSuccess             State = "rolled_success"
	StateRolledFail                State = "rolled_fail"
	StateAwaitingDesperationChoice State = "awaiting_desperation_choice"
	StateRerolledSuccess           State = "rerolled_success"
	StateRerolledFail              State = "rerolled_fail"
)

// Outcome is how an attempt ended, used for narration and metrics
type Outcome string

const (
	OutcomeSuccess       Outcome = "success"
	OutcomeFizzle        Outcome = "fizzle"
	OutcomeRerollSuccess Outcome = "reroll_success"
	OutcomeRerollFizzle  Outcome = "reroll_fizzle"
	OutcomeBypassed      Outcome = "bypassed"
	OutcomeUnsupported   Outcome = "unsupported"
	OutcomeUngated       Outcome = "ungated"
)

// Allowed reports whether the outcome lets the spell resolve
func (o Outcome) Allowed() bool {
	switch o {
	case OutcomeFizzle, OutcomeRerollFizzle:
		return false
	default:
		return true
	}
}

// BonusLine is one labeled contribution to the roll bonus
type BonusLine struct {
	Label string
	Value int
}

func (b BonusLine) String() string {
	return fmt.Sprintf("%s %+d", b.Label, b.Value)
}

// RollRecord is one percentile roll and its comparison
type RollRecord struct {
	Label     string
	Roll      int
	Bonus     int
	Total     int
	Threshold int
	Success   bool
}

func (r *RollRecord) String() string {
	verdict := "fizzle"
	if r.Success {
		verdict = "success"
	}
	return fmt.Sprintf("%s: %d %+d = %d vs %d (%s)", r.Label, r.Roll, r.Bonus, r.Total, r.Threshold, verdict)
}

// CastAttempt is the working state of one resolution run. It is never persisted.
type CastAttempt struct {
	ID                 string
	CasterID           string
	CasterName         string
	SpellName          string
	SpellLevel         int
	BaseBonus          int
	Breakdown          []BonusLine
	Threshold          int
	ExhaustionAtStart  int
	GritUsed           bool
	GritBonus          int
	GritExhaustionCost int
	DesperationUsed    bool
	SlotConsumed       *spellcasting.SlotPool
	Rolls              []*RollRecord
	State              State
	Messages           []string
}

// TotalBonus is the bonus applied to the first roll
func (a *CastAttempt) TotalBonus() int {
	return a.BaseBonus + a.GritBonus
}

func (a *CastAttempt) say(format string, args ...any) {
	a.Messages = append(a.Messages, fmt.Sprintf(format, args...))
}

// Narration is a display record sent to the narration sink
type Narration struct {
	AttemptID string
	ChannelID string
	Title     string
	// Messages accumulate across the attempt; the final record has all of them
	Messages []string
	Rolls    []*RollRecord
	Outcome  Outcome
	Allowed  bool
	// Final is false for mid-attempt warnings
	Final bool
}
