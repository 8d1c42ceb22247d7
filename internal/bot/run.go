// Package bot wires the dispatcher to the Telegram transport.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"taskcup/internal/config"
	"taskcup/internal/dispatch"
	"taskcup/internal/draft"
	"taskcup/internal/logger"
	"taskcup/internal/routing"
)

// RunOptions controls the behaviour of Run.
type RunOptions struct {
	Config *config.Config

	Store draft.Store
	Table *routing.Table
	Tasks dispatch.TaskCreator

	// DuePolicy overrides the default due-date computation when set.
	DuePolicy draft.Policy
}

// Run composes and runs the Telegram bot until the provided context is done.
func Run(ctx context.Context, opts RunOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Config == nil {
		return fmt.Errorf("bot: nil config provided")
	}
	cfg := opts.Config

	poller := BuildPoller(PollerOptions{
		RunMode:                cfg.Telegram.RunMode,
		LongPollTimeoutSeconds: cfg.Telegram.LongPollTimeoutSeconds,
		Webhook: WebhookOptions{
			Listen: cfg.Webhook.Listen,
			Port:   cfg.Webhook.Port,
			URL:    cfg.Webhook.URL,
		},
	})

	settings := tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: poller,
		Client: BuildHTTPClient(),
	}

	buildStart := time.Now()
	b, err := tele.NewBot(settings)
	if err != nil {
		return fmt.Errorf("bot: initialization failed: %w", err)
	}
	buildTook := time.Since(buildStart)

	disp := dispatch.New(dispatch.Options{
		Store:     opts.Store,
		Table:     opts.Table,
		Tasks:     opts.Tasks,
		Messenger: &telebotMessenger{bot: b},
		DuePolicy: opts.DuePolicy,
	})
	registerRoutes(b, disp)
	setupCommands(b)

	switch p := poller.(type) {
	case *tele.Webhook:
		logger.TG.LogAttrs(ctx, slog.LevelInfo, "webhook mode",
			slog.String("event", "mode"),
			slog.String("mode", "webhook"),
			slog.String("listen", p.Listen),
			slog.String("public_url", p.Endpoint.PublicURL),
			slog.Duration("duration", logger.RoundMS(buildTook)),
		)
	default:
		timeoutSec := 10
		if cfg.Telegram.LongPollTimeoutSeconds > 0 {
			timeoutSec = cfg.Telegram.LongPollTimeoutSeconds
		}
		logger.TG.Info("polling mode",
			slog.String("event", "mode"),
			slog.String("mode", "polling"),
			slog.Int("timeout_seconds", timeoutSec),
			slog.Duration("duration", logger.RoundMS(buildTook)),
		)
	}

	runDone := make(chan struct{})
	go func() {
		b.Start()
		close(runDone)
	}()

	select {
	case <-ctx.Done():
		b.Stop()
		<-runDone
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil
		}
		return ctx.Err()
	case <-runDone:
	}
	return nil
}

// setupCommands publishes the bot command menu shown by Telegram clients.
func setupCommands(b *tele.Bot) {
	cmds := []tele.Command{
		{Text: "new", Description: "Start a new task draft"},
		{Text: "task", Description: "Start a new task draft"},
		{Text: "start", Description: "Show the task menu"},
	}
	if err := b.SetCommands(cmds); err != nil {
		logger.TG.Warn("failed to set bot commands",
			slog.String("event", "commands.set_failed"),
			slog.String("err", err.Error()),
		)
	}
}
