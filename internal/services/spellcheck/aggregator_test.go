package spellcheck

import (
	"testing"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/domain/spellcasting"
	"github.com/stretchr/testify/assert"
)

func focus(name, focusType string, equipped bool) *spellcasting.Item {
	return &spellcasting.Item{
		Key:       name,
		Name:      name,
		Type:      spellcasting.ItemTypeEquipment,
		FocusType: focusType,
		Equipped:  equipped,
		Tags:      []string{spellcasting.TagFocus},
	}
}

func TestAggregateBonus(t *testing.T) {
	rules := spellcasting.DefaultRules()

	tests := []struct {
		name      string
		caster    *spellcasting.Caster
		wantTotal int
		wantLines []BonusLine
	}{
		{
			name:      "no sources",
			caster:    &spellcasting.Caster{},
			wantTotal: 0,
		},
		{
			name: "foci are not additive",
			caster: &spellcasting.Caster{Items: []*spellcasting.Item{
				focus("Oak Wand", "", true),
				focus("Quarterstaff", "", true),
			}},
			wantTotal: 7,
			wantLines: []BonusLine{{Label: "Focus (Staff)", Value: 7}},
		},
		{
			name: "unequipped focus ignored",
			caster: &spellcasting.Caster{Items: []*spellcasting.Item{
				focus("Crystal Orb", "", false),
				focus("Wand", "", true),
			}},
			wantTotal: 3,
			wantLines: []BonusLine{{Label: "Focus (Wand)", Value: 3}},
		},
		{
			name: "declared type beats name",
			caster: &spellcasting.Caster{Items: []*spellcasting.Item{
				focus("Staff-shaped Wand", "orb", true),
			}},
			wantTotal: 5,
			wantLines: []BonusLine{{Label: "Focus (Orb)", Value: 5}},
		},
		{
			name: "untagged equipment is not a focus",
			caster: &spellcasting.Caster{Items: []*spellcasting.Item{
				{Name: "Staff of Walking", Type: spellcasting.ItemTypeWeapon, Equipped: true},
			}},
			wantTotal: 0,
		},
		{
			name: "malformed persistent bonus is zero",
			caster: &spellcasting.Caster{
				Flags: map[string]any{spellcasting.DefaultPersistentBonusKey: "lots"},
			},
			wantTotal: 0,
		},
		{
			name: "all sources in order",
			caster: &spellcasting.Caster{
				Flags: map[string]any{spellcasting.DefaultPersistentBonusKey: -2},
				Items: []*spellcasting.Item{
					{Name: "arcane prodigy", Type: spellcasting.ItemTypeFeat},
					focus("Orb of Dusk", "", true),
				},
			},
			wantTotal: 8,
			wantLines: []BonusLine{
				{Label: "Persistent bonus", Value: -2},
				{Label: "Focus (Orb)", Value: 5},
				{Label: "Feat (Arcane Prodigy)", Value: 5},
			},
		},
		{
			name: "feat name must match exactly",
			caster: &spellcasting.Caster{Items: []*spellcasting.Item{
				{Name: "Arcane Prodigy II", Type: spellcasting.ItemTypeFeat},
			}},
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, lines := AggregateBonus(rules, tt.caster)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.wantLines, lines)
		})
	}
}

func TestAvailableGritTiers(t *testing.T) {
	rules := spellcasting.DefaultRules()

	assert.Len(t, availableGritTiers(rules, 0), 2)
	assert.Len(t, availableGritTiers(rules, 3), 2)
	assert.Equal(t, []spellcasting.GritTier{{Cost: 1, Bonus: 10}}, availableGritTiers(rules, 4))
	assert.Empty(t, availableGritTiers(rules, 5))
	assert.Empty(t, availableGritTiers(rules, 6))
}

func TestResolveThreshold(t *testing.T) {
	rules := spellcasting.DefaultRules()

	threshold, ok, err := resolveThreshold(rules, 5)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 50, threshold)

	_, ok, err = resolveThreshold(rules, 10)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestOutcome_Allowed(t *testing.T) {
	assert.False(t, OutcomeFizzle.Allowed())
	assert.False(t, OutcomeRerollFizzle.Allowed())
	for _, o := range []Outcome{OutcomeSuccess, OutcomeRerollSuccess, OutcomeBypassed, OutcomeUnsupported, OutcomeUngated} {
		assert.True(t, o.Allowed(), o)
	}
}
