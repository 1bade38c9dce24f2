package testutils

import (
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/domain/spellcasting"
)

// CreateTestCaster creates a player-owned caster with full slots for levels 1-3
func CreateTestCaster(id, ownerID, name string) *spellcasting.Caster {
	return &spellcasting.Caster{
		ID:          id,
		OwnerID:     ownerID,
		Name:        name,
		PlayerOwned: true,
		Flags:       map[string]any{},
		SpellSlots: map[int]*spellcasting.SlotInfo{
			1: {Max: 4, Remaining: 4},
			2: {Max: 3, Remaining: 3},
			3: {Max: 2, Remaining: 2},
		},
	}
}

// CreateTestNPC creates a caster not owned by a player
func CreateTestNPC(id, name string) *spellcasting.Caster {
	c := CreateTestCaster(id, "dm", name)
	c.PlayerOwned = false
	return c
}

// CreateTestFocus creates an equipped item carrying the focus tag
func CreateTestFocus(key, name, focusType string) *spellcasting.Item {
	return &spellcasting.Item{
		Key:       key,
		Name:      name,
		Type:      spellcasting.ItemTypeEquipment,
		FocusType: focusType,
		Equipped:  true,
		Tags:      []string{spellcasting.TagFocus},
	}
}

// CreateTestFeat creates a feat item
func CreateTestFeat(name string) *spellcasting.Item {
	return &spellcasting.Item{
		Key:  name,
		Name: name,
		Type: spellcasting.ItemTypeFeat,
	}
}

// CreateTestSpell creates a standard-prepared spell
func CreateTestSpell(key string, level int) *spellcasting.Spell {
	return &spellcasting.Spell{
		Key:             key,
		Name:            key,
		Level:           level,
		PreparationMode: spellcasting.PreparationStandard,
	}
}
