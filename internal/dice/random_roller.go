package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"math/rand/v2"
	"sync"
)

// randomRoller implements Roller on a crypto-seeded PCG source
type randomRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomRoller creates a new random dice roller
func NewRandomRoller() Roller {
	var seed [16]byte
	if _, err := crand.Read(seed[:]); err != nil {
		// crypto/rand only fails on broken platforms; fall back to the global source
		return &randomRoller{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
	}

	return NewSeededRoller(binary.LittleEndian.Uint64(seed[:8]), binary.LittleEndian.Uint64(seed[8:]))
}

// NewSeededRoller creates a deterministic roller, useful for replaying a session
func NewSeededRoller(seed1, seed2 uint64) Roller {
	return &randomRoller{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}
	if sides < 1 {
		return nil, errors.New("invalid dice size")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rolls := make([]int, count)
	rawTotal := 0
	for i := range rolls {
		rolls[i] = r.rng.IntN(sides) + 1
		rawTotal += rolls[i]
	}

	return &RollResult{
		Total:    rawTotal + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: rawTotal,
	}, nil
}
