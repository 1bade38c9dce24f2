package main

import (
	"testing"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/domain/spellcasting"
	dnderr "github.com/KirkDiggler/dnd-fizzle-bot/internal/errors"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedOptions_NewCaster(t *testing.T) {
	opts := seedOptions{
		ID:         "c1",
		OwnerID:    "user-1",
		Name:       "Elara",
		Exhaustion: 2,
		Slots:      "1:4, 3:2",
		Pact:       "3:2",
		Focus:      "staff:Staff of Embers",
		Feats:      []string{"Arcane Prodigy"},
		Bonus:      5,
		BonusSet:   true,
	}

	caster, err := opts.apply(nil)
	require.NoError(t, err)

	assert.True(t, caster.PlayerOwned)
	assert.Equal(t, 2, caster.Exhaustion)
	assert.Equal(t, &spellcasting.SlotInfo{Max: 4, Remaining: 4}, caster.SpellSlots[1])
	assert.Equal(t, 2, caster.SpellSlots[3].Remaining)
	assert.Equal(t, &spellcasting.PactSlots{Level: 3, Max: 2, Remaining: 2}, caster.Pact)
	require.Len(t, caster.Items, 2)
	assert.True(t, caster.Items[0].IsEquippedFocus())
	assert.Equal(t, "staff", caster.Items[0].FocusType)
	assert.Equal(t, spellcasting.ItemTypeFeat, caster.Items[1].Type)
	assert.Equal(t, 5, caster.IntFlag("spellSuccessBonus"))
}

func TestSeedOptions_PatchKeepsUnsetFields(t *testing.T) {
	existing := &spellcasting.Caster{
		ID:          "c1",
		OwnerID:     "user-1",
		Name:        "Elara",
		PlayerOwned: true,
		Exhaustion:  4,
		SpellSlots:  map[int]*spellcasting.SlotInfo{1: {Max: 4, Remaining: 1}},
	}

	caster, err := seedOptions{ID: "c1", Exhaustion: 0}.apply(existing)
	require.NoError(t, err)

	assert.Equal(t, 0, caster.Exhaustion)
	assert.Equal(t, "Elara", caster.Name)
	assert.Equal(t, 1, caster.SpellSlots[1].Remaining)
	assert.Equal(t, 4, existing.Exhaustion, "existing record is not mutated")
}

func TestSeedOptions_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts seedOptions
	}{
		{name: "missing owner", opts: seedOptions{ID: "c1", Name: "x", Exhaustion: -1}},
		{name: "exhaustion too high", opts: seedOptions{ID: "c1", OwnerID: "u", Name: "x", Exhaustion: 7}},
		{name: "bad slots", opts: seedOptions{ID: "c1", OwnerID: "u", Name: "x", Exhaustion: -1, Slots: "1-4"}},
		{name: "slot level out of range", opts: seedOptions{ID: "c1", OwnerID: "u", Name: "x", Exhaustion: -1, Slots: "10:1"}},
		{name: "bad focus", opts: seedOptions{ID: "c1", OwnerID: "u", Name: "x", Exhaustion: -1, Focus: "wand"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.apply(nil)
			assert.True(t, dnderr.IsInvalidArgument(err))
		})
	}
}

func TestSeedOptions_WithID(t *testing.T) {
	ids := &uuid.Sequence{Prefix: "caster"}

	assert.Equal(t, "caster-1", seedOptions{}.withID(ids).ID)
	assert.Equal(t, "fixed", seedOptions{ID: "fixed"}.withID(ids).ID)
}
