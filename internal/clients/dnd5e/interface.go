package dnd5e

//go:generate mockgen -destination=mock/mock_client.go -package=mockdnd5e . Client

import (
	"context"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/domain/spellcasting"
	"github.com/fadedpez/dnd5e-api/entities"
)

// Client looks up rules data from the D&D 5e API
type Client interface {
	// GetSpell returns the spell with its level. PreparationMode is left for the caller.
	GetSpell(ctx context.Context, key string) (*spellcasting.Spell, error)
}

// SpellAPI is the part of the upstream API client this package uses
type SpellAPI interface {
	GetSpell(key string) (*entities.Spell, error)
}
