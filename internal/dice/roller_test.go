package dice_test

import (
	"testing"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/dice"
	mockdice "github.com/KirkDiggler/dnd-fizzle-bot/internal/dice/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockRoller_Roll(t *testing.T) {
	tests := []struct {
		name       string
		setupRolls []int
		count      int
		sides      int
		bonus      int
		wantTotal  int
		wantRolls  []int
		wantErr    bool
	}{
		{
			name:       "single d100 roll",
			setupRolls: []int{35},
			count:      1,
			sides:      100,
			wantTotal:  35,
			wantRolls:  []int{35},
		},
		{
			name:       "2d6+3",
			setupRolls: []int{4, 5},
			count:      2,
			sides:      6,
			bonus:      3,
			wantTotal:  12, // 4+5+3
			wantRolls:  []int{4, 5},
		},
		{
			name:       "not enough rolls",
			setupRolls: []int{10},
			count:      2,
			sides:      6,
			wantErr:    true,
		},
		{
			name:       "invalid roll for die size",
			setupRolls: []int{101},
			count:      1,
			sides:      100,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := mockdice.NewManualMockRoller()
			roller.SetRolls(tt.setupRolls)

			result, err := roller.Roll(tt.count, tt.sides, tt.bonus)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, result.Total)
			assert.Equal(t, tt.wantRolls, result.Rolls)
		})
	}
}

func TestRollPercentile(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{1, 100, 57})

	for _, want := range []int{1, 100, 57} {
		got, err := dice.RollPercentile(roller)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := dice.RollPercentile(roller)
	assert.Error(t, err)
	assert.Equal(t, 3, roller.Used())
}

func TestRandomRoller_PercentileRange(t *testing.T) {
	roller := dice.NewRandomRoller()

	for i := 0; i < 1000; i++ {
		got, err := dice.RollPercentile(roller)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 1)
		assert.LessOrEqual(t, got, 100)
	}
}

func TestRandomRoller_BasicFunctionality(t *testing.T) {
	roller := dice.NewRandomRoller()

	result, err := roller.Roll(2, 6, 3)
	require.NoError(t, err)
	assert.Len(t, result.Rolls, 2)
	assert.GreaterOrEqual(t, result.Total, 5) // minimum: 1+1+3
	assert.LessOrEqual(t, result.Total, 15)   // maximum: 6+6+3
	assert.Equal(t, result.RawTotal+3, result.Total)

	_, err = roller.Roll(0, 6, 0)
	assert.Error(t, err)
	_, err = roller.Roll(1, 0, 0)
	assert.Error(t, err)
}

func TestSeededRoller_Deterministic(t *testing.T) {
	a := dice.NewSeededRoller(42, 7)
	b := dice.NewSeededRoller(42, 7)

	for i := 0; i < 20; i++ {
		ra, err := a.Roll(1, 100, 0)
		require.NoError(t, err)
		rb, err := b.Roll(1, 100, 0)
		require.NoError(t, err)
		assert.Equal(t, ra.Rolls, rb.Rolls)
	}
}

func TestRollResult_String(t *testing.T) {
	r := &dice.RollResult{Total: 42, Rolls: []int{37}, Bonus: 5, Count: 1, Sides: 100, RawTotal: 37}
	assert.Equal(t, "1d100+5 [37] = 42", r.String())

	r = &dice.RollResult{Total: 12, Rolls: []int{12}, Count: 1, Sides: 100, RawTotal: 12}
	assert.Equal(t, "1d100 [12] = 12", r.String())
}
