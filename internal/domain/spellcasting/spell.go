package spellcasting

import (
	"fmt"
	"strings"
)

// PreparationMode is how the caster has the spell available
type PreparationMode string

const (
	PreparationStandard PreparationMode = "standard"
	PreparationPact     PreparationMode = "pact"
	PreparationInnate   PreparationMode = "innate"
	PreparationAtWill   PreparationMode = "atwill"
	PreparationOther    PreparationMode = "other"
)

// PoolKind identifies a slot pool
type PoolKind string

const (
	PoolKindSpell PoolKind = "spell"
	PoolKindPact  PoolKind = "pact"
)

// SlotPool addresses one consumable slot pool on a caster
type SlotPool struct {
	Kind  PoolKind
	Level int
}

func (p SlotPool) String() string {
	if p.Kind == PoolKindPact {
		return "pact"
	}
	return fmt.Sprintf("spell%d", p.Level)
}

// ParsePreparationMode maps user input to a mode; unknown values are PreparationOther
func ParsePreparationMode(s string) PreparationMode {
	switch PreparationMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", PreparationStandard, "prepared", "always":
		return PreparationStandard
	case PreparationPact:
		return PreparationPact
	case PreparationInnate:
		return PreparationInnate
	case PreparationAtWill, "at-will":
		return PreparationAtWill
	default:
		return PreparationOther
	}
}

// SlotPool returns the pool a spell of the given level draws from.
// Innate, at-will and other spells have no pool.
func (m PreparationMode) SlotPool(level int) (SlotPool, bool) {
	switch m {
	case PreparationStandard:
		return SlotPool{Kind: PoolKindSpell, Level: level}, true
	case PreparationPact:
		return SlotPool{Kind: PoolKindPact, Level: level}, true
	default:
		return SlotPool{}, false
	}
}

// Spell is the spell being cast
type Spell struct {
	Key             string
	Name            string
	Level           int
	PreparationMode PreparationMode
}

// CastSource says where the cast came from
type CastSource string

const (
	SourceSpellbook CastSource = "spellbook"
	// SourceRunestone casts always succeed and skip the fizzle check entirely
	SourceRunestone CastSource = "runestone"
)

// CastContext carries flags from the calling workflow
type CastContext struct {
	Source CastSource
	// SuppressSlotConsumption is set when the caller already handled slot usage
	SuppressSlotConsumption bool
	// ChannelID is where prompts and narration go
	ChannelID string
	// UserID is the human answering prompts
	UserID string
}
