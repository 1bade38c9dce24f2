package casters

//go:generate mockgen -destination=mocks/mock_time_provider.go -package=mocks github.com/KirkDiggler/dnd-fizzle-bot/internal/repositories/casters TimeProvider

import (
	"context"
	"time"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/domain/spellcasting"
)

// Repository defines the interface for caster persistence
type Repository interface {
	// Create stores a new caster
	Create(ctx context.Context, caster *spellcasting.Caster) error

	// Get retrieves a caster by ID
	Get(ctx context.Context, id string) (*spellcasting.Caster, error)

	// ListByOwner retrieves all casters for a specific owner
	ListByOwner(ctx context.Context, ownerID string) ([]*spellcasting.Caster, error)

	// Update replaces an existing caster
	Update(ctx context.Context, caster *spellcasting.Caster) error

	// Apply applies an update atomically and returns the updated caster.
	// The stored record is unchanged if any part of the update is invalid.
	Apply(ctx context.Context, id string, update *spellcasting.CasterUpdate) (*spellcasting.Caster, error)

	// Delete removes a caster
	Delete(ctx context.Context, id string) error
}

// TimeProvider stamps CreatedAt/UpdatedAt
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider uses the wall clock in UTC
type RealTimeProvider struct{}

// Now returns the current UTC time
func (RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
