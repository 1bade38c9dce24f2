package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/clients/dnd5e"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/config"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/discord/narration"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/discord/prompt"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/handlers/discord"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/logger"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/metrics"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/repositories/casters"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/services"
)

func main() {
	if err := run(); err != nil {
		slog.Error("bot exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	log.Info("starting fizzle bot", "app_id", cfg.Discord.AppID, "guild_id", cfg.Discord.GuildID)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create Discord session
	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return err
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	// Create D&D 5e API client
	dndClient, err := dnd5e.New(&dnd5e.Config{
		HttpClient: &http.Client{
			Timeout: cfg.DND5E.Timeout,
		},
		CacheSize: cfg.DND5E.SpellCacheSize,
		CacheTTL:  cfg.DND5E.SpellCacheTTL,
		Metrics:   m,
	})
	if err != nil {
		return err
	}

	prompter := prompt.NewPrompter(dg, cfg.Discord.PromptTimeout)
	providerConfig := &services.ProviderConfig{
		DNDClient: dndClient,
		Prompter:  prompter,
		Narrator:  narration.NewNarrator(dg),
		Metrics:   m,
	}

	redisClient, err := connectRedis(ctx, cfg.Redis.URL)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Warn("error closing Redis connection", "error", err)
			}
		}()
		providerConfig.CasterRepository = casters.NewRedis(redisClient)
		log.Info("using Redis for caster persistence")
	} else {
		log.Warn("no REDIS_URL set, casters are kept in memory")
	}

	serviceProvider := services.NewProvider(providerConfig)

	handler := discord.NewHandler(&discord.HandlerConfig{
		ServiceProvider: serviceProvider,
		Components:      prompter,
		CastTimeout:     cfg.Discord.CastTimeout,
	})
	dg.AddHandler(handler.HandleInteraction)

	if err := dg.Open(); err != nil {
		return err
	}
	defer func() {
		if err := dg.Close(); err != nil {
			log.Warn("failed to close Discord connection", "error", err)
		}
	}()

	// Use empty guild ID for global commands
	if err := handler.RegisterCommands(dg, cfg.Discord.AppID, cfg.Discord.GuildID); err != nil {
		return err
	}
	if cfg.Discord.GuildID == "" {
		log.Info("registered global commands (may take up to 1 hour to propagate)")
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		g.Go(func() error {
			log.Info("serving metrics", "addr", cfg.Metrics.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		log.Info("bot is now running, press CTRL-C to exit")
		<-gctx.Done()
		log.Info("shutting down", "open_prompts", prompter.Pending())
		return nil
	})

	return g.Wait()
}

// connectRedis returns nil when no URL is configured
func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
