package spellcheck

import (
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/domain/spellcasting"
	dnderr "github.com/KirkDiggler/dnd-fizzle-bot/internal/errors"
)

// resolveThreshold looks up the target for a spell level. The bool is false
// when the level has no entry and the check should be skipped.
func resolveThreshold(rules *spellcasting.Rules, level int) (int, bool, error) {
	threshold, err := rules.Threshold(level)
	if dnderr.IsUnsupported(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return threshold, true, nil
}
