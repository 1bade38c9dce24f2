package services

import (
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/clients/dnd5e"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/dice"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/metrics"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/repositories/casters"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/services/spellcheck"
)

// Provider holds all service instances
type Provider struct {
	SpellCheckService spellcheck.Service
	CasterRepository  casters.Repository
	DNDClient         dnd5e.Client
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	DNDClient        dnd5e.Client
	CasterRepository casters.Repository
	Prompter         spellcheck.Prompter
	Narrator         spellcheck.Narrator
	Roller           dice.Roller
	Metrics          *metrics.Metrics
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	// Use in-memory repository if none provided
	casterRepo := cfg.CasterRepository
	if casterRepo == nil {
		casterRepo = casters.NewInMemoryRepository()
	}

	spellCheckService := spellcheck.NewService(&spellcheck.ServiceConfig{
		Store:    casterRepo,
		Prompter: cfg.Prompter,
		Narrator: cfg.Narrator,
		Roller:   cfg.Roller,
		Metrics:  cfg.Metrics,
	})

	return &Provider{
		SpellCheckService: spellCheckService,
		CasterRepository:  casterRepo,
		DNDClient:         cfg.DNDClient,
	}
}
