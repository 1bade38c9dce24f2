// Package uuid generates record IDs behind an interface so tests can pin them
package uuid

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator is an interface for generating IDs
type Generator interface {
	New() string
}

type randomGenerator struct{}

// NewGenerator returns a generator of random v4 UUIDs
func NewGenerator() Generator {
	return randomGenerator{}
}

func (randomGenerator) New() string {
	return uuid.NewString()
}

// Sequence yields Prefix-1, Prefix-2, ... in order
type Sequence struct {
	Prefix string

	mu sync.Mutex
	n  int
}

func (s *Sequence) New() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", s.Prefix, s.n)
}
