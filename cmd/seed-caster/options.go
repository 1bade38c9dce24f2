package main

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/domain/spellcasting"
	dnderr "github.com/KirkDiggler/dnd-fizzle-bot/internal/errors"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/uuid"
)

type multiFlag []string

func (m *multiFlag) String() string {
	return strings.Join(*m, ",")
}

func (m *multiFlag) Set(value string) error {
	*m = append(*m, value)
	return nil
}

// seedOptions describes a caster to create, or the fields to patch on an existing one.
// Zero values leave existing fields alone.
type seedOptions struct {
	ID         string
	OwnerID    string
	Name       string
	NPC        bool
	Exhaustion int // -1 keeps the current value
	Slots      string
	Pact       string
	Focus      string
	Feats      []string
	Bonus      int
	BonusSet   bool
}

// withID fills in a generated ID when none was given
func (o seedOptions) withID(ids uuid.Generator) seedOptions {
	if o.ID == "" {
		o.ID = ids.New()
	}
	return o
}

func (o seedOptions) apply(existing *spellcasting.Caster) (*spellcasting.Caster, error) {
	var caster *spellcasting.Caster
	if existing != nil {
		caster = existing.Clone()
	} else {
		if o.OwnerID == "" || o.Name == "" {
			return nil, dnderr.InvalidArgument("-owner and -name are required for a new caster")
		}
		caster = &spellcasting.Caster{ID: o.ID, Flags: map[string]any{}, PlayerOwned: true}
	}

	if o.OwnerID != "" {
		caster.OwnerID = o.OwnerID
	}
	if o.Name != "" {
		caster.Name = o.Name
	}
	if o.NPC {
		caster.PlayerOwned = false
	}

	if o.Exhaustion >= 0 {
		if o.Exhaustion > spellcasting.MaxExhaustion {
			return nil, dnderr.InvalidArgumentf("exhaustion must be between 0 and %d", spellcasting.MaxExhaustion)
		}
		caster.Exhaustion = o.Exhaustion
	}

	if o.Slots != "" {
		slots, err := parseSlots(o.Slots)
		if err != nil {
			return nil, err
		}
		caster.SpellSlots = slots
	}

	if o.Pact != "" {
		level, count, err := parsePair(o.Pact)
		if err != nil {
			return nil, err
		}
		caster.Pact = &spellcasting.PactSlots{Level: level, Max: count, Remaining: count}
	}

	if o.Focus != "" {
		focusType, name, ok := strings.Cut(o.Focus, ":")
		if !ok || name == "" {
			return nil, dnderr.InvalidArgumentf("focus '%s' must be type:name", o.Focus)
		}
		caster.Items = append(caster.Items, &spellcasting.Item{
			Key:       strings.ToLower(strings.ReplaceAll(name, " ", "-")),
			Name:      name,
			Type:      spellcasting.ItemTypeEquipment,
			FocusType: strings.ToLower(focusType),
			Equipped:  true,
			Tags:      []string{spellcasting.TagFocus},
		})
	}

	for _, feat := range o.Feats {
		caster.Items = append(caster.Items, &spellcasting.Item{
			Key:  feat,
			Name: feat,
			Type: spellcasting.ItemTypeFeat,
		})
	}

	if o.BonusSet {
		if caster.Flags == nil {
			caster.Flags = map[string]any{}
		}
		caster.Flags[spellcasting.DefaultRules().PersistentBonusKey()] = o.Bonus
	}

	return caster, nil
}

func parseSlots(s string) (map[int]*spellcasting.SlotInfo, error) {
	slots := make(map[int]*spellcasting.SlotInfo)
	for _, part := range strings.Split(s, ",") {
		level, count, err := parsePair(part)
		if err != nil {
			return nil, err
		}
		if level < 1 || level > spellcasting.MaxSpellLevel {
			return nil, dnderr.InvalidArgumentf("slot level %d out of range", level)
		}
		slots[level] = &spellcasting.SlotInfo{Max: count, Remaining: count}
	}
	return slots, nil
}

func parsePair(s string) (int, int, error) {
	left, right, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, dnderr.InvalidArgumentf("'%s' must be level:max", s)
	}
	level, err := strconv.Atoi(left)
	if err != nil {
		return 0, 0, dnderr.InvalidArgumentf("invalid level in '%s'", s)
	}
	count, err := strconv.Atoi(right)
	if err != nil || count < 0 {
		return 0, 0, dnderr.InvalidArgumentf("invalid slot count in '%s'", s)
	}
	return level, count, nil
}
