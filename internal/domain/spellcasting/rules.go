package spellcasting

import (
	"strings"

	dnderr "github.com/KirkDiggler/dnd-fizzle-bot/internal/errors"
)

const (
	// DefaultPersistentBonusKey is the caster flag holding a GM-granted bonus
	DefaultPersistentBonusKey = "spellSuccessBonus"

	// DefaultExhaustionCeiling is the highest exhaustion a Grit or Desperation cost may reach
	DefaultExhaustionCeiling = 5

	// MaxSpellLevel is the highest spell level the rules describe
	MaxSpellLevel = 9
)

// FocusRule grants a bonus to a class of spellcasting foci
type FocusRule struct {
	Name  string // matched against the declared focus type, then the item name
	Label string
	Bonus int
}

func (r FocusRule) matchesType(item *Item) bool {
	return item.FocusType != "" && strings.EqualFold(item.FocusType, r.Name)
}

func (r FocusRule) matchesName(item *Item) bool {
	return strings.Contains(strings.ToLower(item.Name), strings.ToLower(r.Name))
}

// FeatBonus grants a bonus to casters owning a feat with this exact name
type FeatBonus struct {
	Name  string
	Bonus int
}

// GritTier is one pre-roll bonus option
type GritTier struct {
	Cost  int // exhaustion levels
	Bonus int
}

// RulesConfig is the input for NewRules
type RulesConfig struct {
	Thresholds         map[int]int
	FocusRules         []FocusRule
	FeatBonuses        []FeatBonus
	PersistentBonusKey string
	GritTiers          []GritTier
	DesperationCost    int
	ExhaustionCeiling  int
}

// Rules is the immutable fizzle configuration. Accessors return copies.
type Rules struct {
	thresholds         map[int]int
	focusRules         []FocusRule
	featBonuses        []FeatBonus
	persistentBonusKey string
	gritTiers          []GritTier
	desperationCost    int
	exhaustionCeiling  int
}

// DefaultRulesConfig is the house rule as played at the table
func DefaultRulesConfig() RulesConfig {
	return RulesConfig{
		Thresholds: map[int]int{
			0: 5,
			1: 10,
			2: 20,
			3: 30,
			4: 40,
			5: 50,
			6: 60,
			7: 70,
			8: 80,
			9: 90,
		},
		FocusRules: []FocusRule{
			{Name: "wand", Label: "Wand", Bonus: 3},
			{Name: "orb", Label: "Orb", Bonus: 5},
			{Name: "staff", Label: "Staff", Bonus: 7},
		},
		FeatBonuses: []FeatBonus{
			{Name: "Arcane Prodigy", Bonus: 5},
		},
		PersistentBonusKey: DefaultPersistentBonusKey,
		GritTiers: []GritTier{
			{Cost: 1, Bonus: 10},
			{Cost: 2, Bonus: 20},
		},
		DesperationCost:   1,
		ExhaustionCeiling: DefaultExhaustionCeiling,
	}
}

// DefaultRules returns the default configuration
func DefaultRules() *Rules {
	rules, err := NewRules(DefaultRulesConfig())
	if err != nil {
		panic(err)
	}
	return rules
}

// NewRules validates and freezes a configuration
func NewRules(cfg RulesConfig) (*Rules, error) {
	if cfg.ExhaustionCeiling < 0 || cfg.ExhaustionCeiling >= MaxExhaustion {
		return nil, dnderr.InvalidArgumentf("exhaustion ceiling must be in 0-%d", MaxExhaustion-1)
	}
	if cfg.DesperationCost < 1 {
		return nil, dnderr.InvalidArgument("desperation cost must be positive")
	}
	if cfg.PersistentBonusKey == "" {
		return nil, dnderr.InvalidArgument("persistent bonus key is required")
	}

	thresholds := make(map[int]int, len(cfg.Thresholds))
	prev := 0
	for level := 0; level <= MaxSpellLevel; level++ {
		value, ok := cfg.Thresholds[level]
		if !ok {
			continue
		}
		if value < 1 || value > 100 {
			return nil, dnderr.InvalidArgumentf("threshold for level %d must be 1-100, got %d", level, value)
		}
		if value < prev {
			return nil, dnderr.InvalidArgumentf("threshold for level %d is lower than a lower level", level)
		}
		thresholds[level] = value
		prev = value
	}

	for _, tier := range cfg.GritTiers {
		if tier.Cost < 1 || tier.Bonus < 1 {
			return nil, dnderr.InvalidArgumentf("grit tier cost %d bonus %d must be positive", tier.Cost, tier.Bonus)
		}
	}

	return &Rules{
		thresholds:         thresholds,
		focusRules:         append([]FocusRule(nil), cfg.FocusRules...),
		featBonuses:        append([]FeatBonus(nil), cfg.FeatBonuses...),
		persistentBonusKey: cfg.PersistentBonusKey,
		gritTiers:          append([]GritTier(nil), cfg.GritTiers...),
		desperationCost:    cfg.DesperationCost,
		exhaustionCeiling:  cfg.ExhaustionCeiling,
	}, nil
}

// Threshold returns the percentile a roll plus bonus must meet for the spell level
func (r *Rules) Threshold(level int) (int, error) {
	value, ok := r.thresholds[level]
	if !ok {
		return 0, dnderr.Unsupportedf("no fizzle threshold for spell level %d", level).
			WithMeta("spell_level", level)
	}
	return value, nil
}

// ClassifyFocus finds the best rule for one item: the declared focus type
// wins, otherwise the highest rule whose name appears in the item name.
func (r *Rules) ClassifyFocus(item *Item) (FocusRule, bool) {
	for _, rule := range r.focusRules {
		if rule.matchesType(item) {
			return rule, true
		}
	}

	var best FocusRule
	found := false
	for _, rule := range r.focusRules {
		if rule.matchesName(item) && (!found || rule.Bonus > best.Bonus) {
			best = rule
			found = true
		}
	}
	return best, found
}

// FeatBonuses returns the configured feat bonuses
func (r *Rules) FeatBonuses() []FeatBonus {
	return append([]FeatBonus(nil), r.featBonuses...)
}

// PersistentBonusKey is the caster flag holding the stored bonus
func (r *Rules) PersistentBonusKey() string {
	return r.persistentBonusKey
}

// GritTiers returns the pre-roll options in configured order
func (r *Rules) GritTiers() []GritTier {
	return append([]GritTier(nil), r.gritTiers...)
}

// DesperationCost is the exhaustion paid for a reroll
func (r *Rules) DesperationCost() int {
	return r.desperationCost
}

// ExhaustionCeiling is the highest exhaustion a paid option may reach
func (r *Rules) ExhaustionCeiling() int {
	return r.exhaustionCeiling
}
