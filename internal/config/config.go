package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Discord DiscordConfig
	Redis   RedisConfig
	DND5E   DND5EConfig
	Log     LogConfig
	Metrics MetricsConfig
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token   string `env:"DISCORD_TOKEN" validate:"required"`
	AppID   string `env:"DISCORD_APP_ID" validate:"required"`
	GuildID string `env:"DISCORD_GUILD_ID"` // Optional: for guild-specific commands
	// PromptTimeout is how long a Grit or Desperation prompt waits before counting as dismissed
	PromptTimeout time.Duration `env:"DISCORD_PROMPT_TIMEOUT" envDefault:"4m" validate:"gt=0"`
	// CastTimeout bounds a whole cast. Interaction tokens expire after 15 minutes.
	CastTimeout time.Duration `env:"DISCORD_CAST_TIMEOUT" envDefault:"10m" validate:"gt=0,lt=15m"`
}

// RedisConfig holds Redis-specific configuration.
// An empty URL means casters are kept in memory.
type RedisConfig struct {
	URL string `env:"REDIS_URL" validate:"omitempty,url"`
}

// DND5EConfig holds D&D 5e API configuration
type DND5EConfig struct {
	Timeout        time.Duration `env:"DND5E_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	SpellCacheSize int           `env:"DND5E_SPELL_CACHE_SIZE" envDefault:"512" validate:"gt=0"`
	SpellCacheTTL  time.Duration `env:"DND5E_SPELL_CACHE_TTL" envDefault:"24h" validate:"gt=0"`
}

// LogConfig controls the slog handler installed at startup
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
}

// MetricsConfig controls the prometheus endpoint. Empty Addr disables it.
type MetricsConfig struct {
	Addr string `env:"METRICS_ADDR" envDefault:":9090"`
}

// Load loads configuration from a .env file (if present) and environment variables
func Load() (*Config, error) {
	// Missing .env is fine, real env vars may be set
	_ = godotenv.Load()

	return Parse()
}

// Parse reads configuration from the current environment and validates it
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
