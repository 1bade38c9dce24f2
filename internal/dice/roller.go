package dice

import "fmt"

// PercentileSides is the die used for spell success checks
const PercentileSides = 100

// Roller provides an interface for rolling dice
// This allows us to inject different implementations for testing
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)
}

// RollResult holds the outcome of a single Roll call
type RollResult struct {
	Total    int   // Sum of all dice plus bonus
	Rolls    []int // Individual die results
	Bonus    int
	Count    int
	Sides    int
	RawTotal int // Sum of dice without bonus
}

// String renders the roll the way it shows up in chat, e.g. "1d100+5 [37] = 42"
func (r *RollResult) String() string {
	expr := fmt.Sprintf("%dd%d", r.Count, r.Sides)
	if r.Bonus != 0 {
		expr += fmt.Sprintf("%+d", r.Bonus)
	}
	return fmt.Sprintf("%s %v = %d", expr, r.Rolls, r.Total)
}

// RollPercentile draws a single uniformly distributed value in [1,100]
func RollPercentile(r Roller) (int, error) {
	result, err := r.Roll(1, PercentileSides, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to roll d%d: %w", PercentileSides, err)
	}
	return result.RawTotal, nil
}
