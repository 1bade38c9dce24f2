package spellcasting_test

import (
	"testing"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/domain/spellcasting"
	dnderr "github.com/KirkDiggler/dnd-fizzle-bot/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules_ThresholdsNonDecreasing(t *testing.T) {
	rules := spellcasting.DefaultRules()

	prev := 0
	for level := 0; level <= spellcasting.MaxSpellLevel; level++ {
		got, err := rules.Threshold(level)
		require.NoError(t, err, "level %d", level)
		assert.GreaterOrEqual(t, got, prev, "level %d", level)
		prev = got
	}
}

func TestRules_ThresholdValues(t *testing.T) {
	rules := spellcasting.DefaultRules()

	for level, want := range map[int]int{0: 5, 3: 30, 5: 50, 9: 90} {
		got, err := rules.Threshold(level)
		require.NoError(t, err)
		assert.Equal(t, want, got, "level %d", level)
	}
}

func TestRules_UnknownLevel(t *testing.T) {
	rules := spellcasting.DefaultRules()

	for _, level := range []int{-1, 10, 42} {
		_, err := rules.Threshold(level)
		require.Error(t, err)
		assert.True(t, dnderr.IsUnsupported(err))
		var dndErr *dnderr.Error
		require.ErrorAs(t, err, &dndErr)
		assert.Equal(t, level, dndErr.Meta["spell_level"])
	}
}

func TestRules_ClassifyFocus(t *testing.T) {
	rules := spellcasting.DefaultRules()

	tests := []struct {
		name      string
		item      *spellcasting.Item
		wantLabel string
		wantBonus int
		wantFound bool
	}{
		{
			name:      "declared type",
			item:      &spellcasting.Item{Name: "Crystal", FocusType: "orb"},
			wantLabel: "Orb",
			wantBonus: 5,
			wantFound: true,
		},
		{
			name:      "declared type case insensitive",
			item:      &spellcasting.Item{Name: "Gnarled Stick", FocusType: "STAFF"},
			wantLabel: "Staff",
			wantBonus: 7,
			wantFound: true,
		},
		{
			name:      "declared type beats name",
			item:      &spellcasting.Item{Name: "Staff-shaped Wand", FocusType: "wand"},
			wantLabel: "Wand",
			wantBonus: 3,
			wantFound: true,
		},
		{
			name:      "name substring",
			item:      &spellcasting.Item{Name: "Wand of Magic Missiles"},
			wantLabel: "Wand",
			wantBonus: 3,
			wantFound: true,
		},
		{
			name:      "unknown declared type falls back to name",
			item:      &spellcasting.Item{Name: "Quarterstaff", FocusType: "rod"},
			wantLabel: "Staff",
			wantBonus: 7,
			wantFound: true,
		},
		{
			name:      "name matching two rules picks highest",
			item:      &spellcasting.Item{Name: "Staff of the Orb"},
			wantLabel: "Staff",
			wantBonus: 7,
			wantFound: true,
		},
		{
			name:      "no match",
			item:      &spellcasting.Item{Name: "Holy Symbol"},
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, found := rules.ClassifyFocus(tt.item)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.wantLabel, rule.Label)
				assert.Equal(t, tt.wantBonus, rule.Bonus)
			}
		})
	}
}

func TestNewRules_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*spellcasting.RulesConfig)
	}{
		{
			name:   "threshold out of range",
			mutate: func(c *spellcasting.RulesConfig) { c.Thresholds[4] = 120 },
		},
		{
			name:   "thresholds decrease",
			mutate: func(c *spellcasting.RulesConfig) { c.Thresholds[6] = 15 },
		},
		{
			name:   "ceiling at death",
			mutate: func(c *spellcasting.RulesConfig) { c.ExhaustionCeiling = spellcasting.MaxExhaustion },
		},
		{
			name:   "free desperation",
			mutate: func(c *spellcasting.RulesConfig) { c.DesperationCost = 0 },
		},
		{
			name:   "missing flag key",
			mutate: func(c *spellcasting.RulesConfig) { c.PersistentBonusKey = "" },
		},
		{
			name:   "zero cost grit",
			mutate: func(c *spellcasting.RulesConfig) { c.GritTiers = []spellcasting.GritTier{{Cost: 0, Bonus: 10}} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := spellcasting.DefaultRulesConfig()
			tt.mutate(&cfg)

			_, err := spellcasting.NewRules(cfg)
			require.Error(t, err)
			assert.True(t, dnderr.IsInvalidArgument(err))
		})
	}
}

func TestRules_AccessorsReturnCopies(t *testing.T) {
	rules := spellcasting.DefaultRules()

	tiers := rules.GritTiers()
	tiers[0].Bonus = 99
	assert.Equal(t, 10, rules.GritTiers()[0].Bonus)

	feats := rules.FeatBonuses()
	feats[0].Bonus = 99
	assert.Equal(t, 5, rules.FeatBonuses()[0].Bonus)
}
