package casters

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/domain/spellcasting"
	dnderr "github.com/KirkDiggler/dnd-fizzle-bot/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the caster repository
// Useful for testing and development
type InMemoryRepository struct {
	mu           sync.RWMutex
	casters      map[string]*spellcasting.Caster
	timeProvider TimeProvider
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		casters:      make(map[string]*spellcasting.Caster),
		timeProvider: RealTimeProvider{},
	}
}

// Create stores a new caster
func (r *InMemoryRepository) Create(_ context.Context, caster *spellcasting.Caster) error {
	if caster == nil {
		return dnderr.InvalidArgument("caster cannot be nil")
	}
	if caster.ID == "" {
		return dnderr.InvalidArgument("caster ID is required")
	}
	if caster.OwnerID == "" {
		return dnderr.InvalidArgument("caster owner ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.casters[caster.ID]; exists {
		return dnderr.AlreadyExistsf("caster with ID '%s' already exists", caster.ID).
			WithMeta("caster_id", caster.ID)
	}

	caster.CreatedAt = r.timeProvider.Now()
	caster.UpdatedAt = caster.CreatedAt
	r.casters[caster.ID] = caster.Clone()

	return nil
}

// Get retrieves a caster by ID
func (r *InMemoryRepository) Get(_ context.Context, id string) (*spellcasting.Caster, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("caster ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	caster, exists := r.casters[id]
	if !exists {
		return nil, dnderr.NotFoundf("caster with ID '%s' not found", id).
			WithMeta("caster_id", id)
	}

	return caster.Clone(), nil
}

// ListByOwner retrieves all casters for a specific owner, ordered by name
func (r *InMemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]*spellcasting.Caster, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*spellcasting.Caster
	for _, caster := range r.casters {
		if caster.OwnerID == ownerID {
			result = append(result, caster.Clone())
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result, nil
}

// Update replaces an existing caster
func (r *InMemoryRepository) Update(_ context.Context, caster *spellcasting.Caster) error {
	if caster == nil {
		return dnderr.InvalidArgument("caster cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.casters[caster.ID]
	if !exists {
		return dnderr.NotFoundf("caster with ID '%s' not found", caster.ID).
			WithMeta("caster_id", caster.ID)
	}

	stored := caster.Clone()
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = r.timeProvider.Now()
	r.casters[caster.ID] = stored

	return nil
}

// Apply applies an update to a copy and swaps it in only when it succeeds
func (r *InMemoryRepository) Apply(_ context.Context, id string, update *spellcasting.CasterUpdate) (*spellcasting.Caster, error) {
	if update == nil {
		return nil, dnderr.InvalidArgument("update cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.casters[id]
	if !exists {
		return nil, dnderr.NotFoundf("caster with ID '%s' not found", id).
			WithMeta("caster_id", id)
	}

	next := existing.Clone()
	if err := update.ApplyTo(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = r.timeProvider.Now()
	r.casters[id] = next

	return next.Clone(), nil
}

// Delete removes a caster
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.casters[id]; !exists {
		return dnderr.NotFoundf("caster with ID '%s' not found", id).
			WithMeta("caster_id", id)
	}

	delete(r.casters, id)
	return nil
}
