package dnd5e

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/domain/spellcasting"
	dnderr "github.com/KirkDiggler/dnd-fizzle-bot/internal/errors"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/logger"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/metrics"
	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	defaultCacheSize = 512
	defaultCacheTTL  = 24 * time.Hour
)

// TODO: pass ctx through once the upstream client accepts one
type client struct {
	api     SpellAPI
	spells  *expirable.LRU[string, *spellcasting.Spell]
	metrics *metrics.Metrics
}

type Config struct {
	HttpClient *http.Client
	// API overrides the upstream client, mainly for tests
	API       SpellAPI
	CacheSize int
	CacheTTL  time.Duration
	Metrics   *metrics.Metrics
}

func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("dnd5e config is required")
	}

	api := cfg.API
	if api == nil {
		dndClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
			Client: cfg.HttpClient,
		})
		if err != nil {
			return nil, err
		}
		api = dndClient
	}

	size := cfg.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &client{
		api:     api,
		spells:  expirable.NewLRU[string, *spellcasting.Spell](size, nil, ttl),
		metrics: cfg.Metrics,
	}, nil
}

func (c *client) GetSpell(ctx context.Context, key string) (*spellcasting.Spell, error) {
	key = normalizeKey(key)
	if key == "" {
		return nil, dnderr.InvalidArgument("spell key is required")
	}

	if spell, ok := c.spells.Get(key); ok {
		c.metrics.RecordSpellLookup(metrics.CacheHit)
		copied := *spell
		return &copied, nil
	}
	c.metrics.RecordSpellLookup(metrics.CacheMiss)

	apiSpell, err := c.api.GetSpell(key)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get spell %s", key)
	}
	if apiSpell == nil {
		return nil, dnderr.NotFoundf("spell '%s' not found", key).WithMeta("spell_key", key)
	}

	spell := convertSpell(apiSpell)
	c.spells.Add(key, spell)
	logger.FromContext(ctx).Debug("spell cached", "spell", key, "level", spell.Level)

	copied := *spell
	return &copied, nil
}

// normalizeKey turns "Magic Missile" into the API index "magic-missile"
func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.Join(strings.Fields(key), "-")
}

func convertSpell(apiSpell *entities.Spell) *spellcasting.Spell {
	return &spellcasting.Spell{
		Key:   apiSpell.Key,
		Name:  apiSpell.Name,
		Level: apiSpell.SpellLevel,
	}
}
