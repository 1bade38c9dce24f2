package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	dnderr "github.com/KirkDiggler/dnd-fizzle-bot/internal/errors"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/logger"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/repositories/casters"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/uuid"
)

func main() {
	logger.Setup(os.Stderr, "info", "text")

	var opts seedOptions
	var feats multiFlag
	flag.StringVar(&opts.ID, "id", "", "caster ID; a new one is generated when empty")
	flag.StringVar(&opts.OwnerID, "owner", "", "Discord user ID of the player")
	flag.StringVar(&opts.Name, "name", "", "caster name")
	flag.BoolVar(&opts.NPC, "npc", false, "caster is not player owned (no fizzle checks)")
	flag.IntVar(&opts.Exhaustion, "exhaustion", -1, "exhaustion level 0-6")
	flag.StringVar(&opts.Slots, "slots", "", "spell slots as level:max pairs, e.g. 1:4,2:3")
	flag.StringVar(&opts.Pact, "pact", "", "pact slots as level:max, e.g. 3:2")
	flag.StringVar(&opts.Focus, "focus", "", "equipped focus as type:name, e.g. wand:Wand of Sparks")
	flag.Var(&feats, "feat", "feat name, repeatable")
	flag.IntVar(&opts.Bonus, "bonus", 0, "persistent spell success bonus")
	flag.Parse()
	opts.Feats = feats
	opts.BonusSet = flagWasSet("bonus")

	if err := run(opts); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(opts seedOptions) error {
	_ = godotenv.Load()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(redisOpts)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	repo := casters.NewRedis(client)

	opts = opts.withID(uuid.NewGenerator())

	existing, err := repo.Get(ctx, opts.ID)
	if err != nil && !dnderr.IsNotFound(err) {
		return err
	}

	caster, err := opts.apply(existing)
	if err != nil {
		return err
	}

	if existing == nil {
		if err := repo.Create(ctx, caster); err != nil {
			return err
		}
		slog.Info("created caster", "id", caster.ID, "name", caster.Name, "owner_id", caster.OwnerID)
	} else {
		if err := repo.Update(ctx, caster); err != nil {
			return err
		}
		slog.Info("patched caster", "id", caster.ID, "name", caster.Name)
	}

	fmt.Println(caster.ID)
	return nil
}

func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
