package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"taskcup/internal/bot"
	"taskcup/internal/clickup"
	"taskcup/internal/config"
	"taskcup/internal/draft"
	"taskcup/internal/health"
	"taskcup/internal/logger"
	"taskcup/internal/routing"
)

const defaultConfigPath = "config.yaml"

func main() {
	if err := run(); err != nil {
		log.Fatalf("taskcup: %v", err)
	}
}

func run() error {
	startedAt := time.Now()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}

	log.Printf("loading config: %s", cfgPath)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg); err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}

	table := routing.NewTable(cfg.ClickUp.DefaultListID, cfg.ClickUp.ListRouting)
	tasks := clickup.NewClient(clickup.Config{
		Token:   cfg.ClickUp.Token,
		BaseURL: cfg.ClickUp.BaseURL,
	})

	if cfg.Health.Listen != "" {
		go func() {
			if err := health.Run(ctx, cfg.Health.Listen); err != nil {
				logger.APP.Error("health server failed",
					slog.String("event", "health.fail"),
					slog.String("err", err.Error()),
				)
			}
		}()
	}

	logger.APP.Info("app ready",
		slog.String("event", "ready"),
		slog.String("drafts_backend", cfg.Drafts.Backend),
		slog.Int("routing_keys", len(table.Keys())),
		slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
	)
	defer logger.APP.Info("shutting down...", slog.String("event", "shutdown"))

	return bot.Run(ctx, bot.RunOptions{
		Config: cfg,
		Store:  store,
		Table:  table,
		Tasks:  tasks,
	})
}

// buildStore selects the draft store backend from configuration.
func buildStore(ctx context.Context, cfg *config.Config) (draft.Store, error) {
	if cfg.Drafts.Backend != config.DraftsBackendRedis {
		return draft.NewMemoryStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Drafts.RedisAddr,
		DB:   cfg.Drafts.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	ttl := time.Duration(cfg.Drafts.TTLMinutes) * time.Minute
	return draft.NewRedisStore(client, ttl), nil
}
