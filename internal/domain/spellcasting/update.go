package spellcasting

import (
	dnderr "github.com/KirkDiggler/dnd-fizzle-bot/internal/errors"
)

// CasterUpdate is a set of changes applied to a caster as one unit
type CasterUpdate struct {
	ExhaustionDelta int
	// SpendSlot consumes one slot from the pool when set
	SpendSlot *SlotPool
	SetFlags  map[string]any
	// ExhaustionCeiling, when positive, refuses an increase that would end above it.
	// It is checked against the stored value at apply time.
	ExhaustionCeiling int
}

// IsEmpty reports whether the update changes nothing
func (u *CasterUpdate) IsEmpty() bool {
	return u == nil || (u.ExhaustionDelta == 0 && u.SpendSlot == nil && len(u.SetFlags) == 0)
}

// ApplyTo mutates the caster. Either every change is applied or none is.
func (u *CasterUpdate) ApplyTo(c *Caster) error {
	if c == nil {
		return dnderr.InvalidArgument("caster cannot be nil")
	}
	if u.IsEmpty() {
		return nil
	}

	exhaustion := c.Exhaustion + u.ExhaustionDelta
	if exhaustion < 0 || exhaustion > MaxExhaustion {
		return dnderr.FailedPreconditionf("exhaustion %d out of range 0-%d", exhaustion, MaxExhaustion).
			WithMeta("caster_id", c.ID)
	}

	if u.ExhaustionCeiling > 0 && u.ExhaustionDelta > 0 && exhaustion > u.ExhaustionCeiling {
		return dnderr.ResourceExhaustedf("exhaustion %d would pass the ceiling of %d", exhaustion, u.ExhaustionCeiling).
			WithMeta("caster_id", c.ID).
			WithMeta("exhaustion", c.Exhaustion)
	}

	if u.SpendSlot != nil && c.RemainingSlots(*u.SpendSlot) < 1 {
		return dnderr.FailedPreconditionf("no %s slots remaining", u.SpendSlot).
			WithMeta("caster_id", c.ID)
	}

	c.Exhaustion = exhaustion

	if u.SpendSlot != nil {
		switch u.SpendSlot.Kind {
		case PoolKindPact:
			c.Pact.Remaining--
		default:
			c.SpellSlots[u.SpendSlot.Level].Remaining--
		}
	}

	if len(u.SetFlags) > 0 {
		if c.Flags == nil {
			c.Flags = make(map[string]any, len(u.SetFlags))
		}
		for k, v := range u.SetFlags {
			c.Flags[k] = v
		}
	}

	return nil
}
