package spellcasting

import (
	"strconv"
	"strings"
	"time"
)

const (
	// MaxExhaustion is the terminal exhaustion level (death). Nothing in the
	// fizzle workflow may push a caster here.
	MaxExhaustion = 6

	// TagFocus marks an item usable as a spellcasting focus
	TagFocus = "focus"
)

// ItemType is the coarse item category used by the host inventory
type ItemType string

const (
	ItemTypeEquipment ItemType = "equipment"
	ItemTypeWeapon    ItemType = "weapon"
	ItemTypeFeat      ItemType = "feat"
	ItemTypeSpell     ItemType = "spell"
	ItemTypeLoot      ItemType = "loot"
)

// Item is an owned inventory entry or feat
type Item struct {
	Key       string   `json:"key"`
	Name      string   `json:"name"`
	Type      ItemType `json:"type"`
	FocusType string   `json:"focus_type,omitempty"` // declared focus kind, e.g. "wand"
	Equipped  bool     `json:"equipped"`
	Tags      []string `json:"tags,omitempty"`
}

// HasTag reports whether the item carries the capability tag
func (i *Item) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// IsEquippedFocus reports whether the item counts toward the focus bonus
func (i *Item) IsEquippedFocus() bool {
	return i.Equipped && i.HasTag(TagFocus)
}

// SlotInfo tracks spell slots at a specific level
type SlotInfo struct {
	Max       int `json:"max"`
	Remaining int `json:"remaining"`
}

// PactSlots is the warlock pool; all pact slots share one level
type PactSlots struct {
	Level     int `json:"level"`
	Max       int `json:"max"`
	Remaining int `json:"remaining"`
}

// Caster is the persisted actor record the fizzle rules read and update
type Caster struct {
	ID          string            `json:"id"`
	OwnerID     string            `json:"owner_id"`
	Name        string            `json:"name"`
	PlayerOwned bool              `json:"player_owned"`
	Exhaustion  int               `json:"exhaustion"`
	Flags       map[string]any    `json:"flags,omitempty"`
	Items       []*Item           `json:"items,omitempty"`
	SpellSlots  map[int]*SlotInfo `json:"spell_slots,omitempty"`
	Pact        *PactSlots        `json:"pact,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Flag returns a stored flag value
func (c *Caster) Flag(key string) (any, bool) {
	if c.Flags == nil {
		return nil, false
	}
	v, ok := c.Flags[key]
	return v, ok
}

// IntFlag reads a flag as an integer. Missing or non-numeric values read as 0.
func (c *Caster) IntFlag(key string) int {
	v, ok := c.Flag(key)
	if !ok {
		return 0
	}

	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// RemainingSlots returns how many slots are left in the pool
func (c *Caster) RemainingSlots(pool SlotPool) int {
	switch pool.Kind {
	case PoolKindPact:
		if c.Pact == nil {
			return 0
		}
		return c.Pact.Remaining
	case PoolKindSpell:
		if slot, ok := c.SpellSlots[pool.Level]; ok && slot != nil {
			return slot.Remaining
		}
	}
	return 0
}

// Clone returns a deep copy so stores can hand out records without sharing state
func (c *Caster) Clone() *Caster {
	if c == nil {
		return nil
	}

	out := *c
	if c.Flags != nil {
		out.Flags = make(map[string]any, len(c.Flags))
		for k, v := range c.Flags {
			out.Flags[k] = v
		}
	}
	if c.Items != nil {
		out.Items = make([]*Item, len(c.Items))
		for i, item := range c.Items {
			cp := *item
			cp.Tags = append([]string(nil), item.Tags...)
			out.Items[i] = &cp
		}
	}
	if c.SpellSlots != nil {
		out.SpellSlots = make(map[int]*SlotInfo, len(c.SpellSlots))
		for lvl, slot := range c.SpellSlots {
			cp := *slot
			out.SpellSlots[lvl] = &cp
		}
	}
	if c.Pact != nil {
		cp := *c.Pact
		out.Pact = &cp
	}
	return &out
}
