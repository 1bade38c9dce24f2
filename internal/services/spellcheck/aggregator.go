package spellcheck

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/domain/spellcasting"
)

// AggregateBonus sums the persistent, focus and feat bonuses for a caster.
// Sources that contribute nothing are left out of the breakdown.
func AggregateBonus(rules *spellcasting.Rules, caster *spellcasting.Caster) (int, []BonusLine) {
	if caster == nil {
		return 0, nil
	}

	var breakdown []BonusLine

	if persistent := caster.IntFlag(rules.PersistentBonusKey()); persistent != 0 {
		breakdown = append(breakdown, BonusLine{Label: "Persistent bonus", Value: persistent})
	}

	if focus, ok := bestFocus(rules, caster.Items); ok {
		breakdown = append(breakdown, BonusLine{
			Label: fmt.Sprintf("Focus (%s)", focus.Label),
			Value: focus.Bonus,
		})
	}

	for _, feat := range rules.FeatBonuses() {
		if hasFeat(caster.Items, feat.Name) {
			breakdown = append(breakdown, BonusLine{
				Label: fmt.Sprintf("Feat (%s)", feat.Name),
				Value: feat.Bonus,
			})
		}
	}

	total := 0
	for _, line := range breakdown {
		total += line.Value
	}

	return total, breakdown
}

// bestFocus returns the single highest focus rule among equipped foci
func bestFocus(rules *spellcasting.Rules, items []*spellcasting.Item) (spellcasting.FocusRule, bool) {
	var best spellcasting.FocusRule
	found := false

	for _, item := range items {
		if item == nil || !item.IsEquippedFocus() {
			continue
		}
		rule, ok := rules.ClassifyFocus(item)
		if !ok {
			continue
		}
		if !found || rule.Bonus > best.Bonus {
			best = rule
			found = true
		}
	}

	return best, found
}

func hasFeat(items []*spellcasting.Item, name string) bool {
	for _, item := range items {
		if item != nil && item.Type == spellcasting.ItemTypeFeat && strings.EqualFold(item.Name, name) {
			return true
		}
	}
	return false
}
