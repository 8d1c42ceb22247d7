package bot

import (
	"context"
	"log/slog"
	"strings"

	tele "gopkg.in/telebot.v4"

	"taskcup/internal/dispatch"
	"taskcup/internal/logger"
)

// startCommands all reset the chat to a fresh draft.
var startCommands = []string{"/start", "/new", "/task"}

// registerRoutes binds telebot endpoints to the dispatcher. Handlers always
// return nil so Telegram never sees a failure status and never redelivers.
func registerRoutes(b *tele.Bot, disp *dispatch.Dispatcher) {
	wrap := func(h tele.HandlerFunc) tele.HandlerFunc {
		return RecoverMiddleware(LoggerMiddleware(h))
	}

	start := func(c tele.Context) error {
		ctx := buildContext(c)
		logDropped(ctx, disp.HandleStart(ctx, c.Chat().ID))
		return nil
	}
	for _, cmd := range startCommands {
		b.Handle(cmd, wrap(start))
	}

	text := func(c tele.Context) error {
		ctx := buildContext(c)
		body := strings.TrimSpace(c.Text())
		if body == "" {
			return nil
		}
		logDropped(ctx, disp.HandleText(ctx, c.Chat().ID, body))
		return nil
	}
	b.Handle(tele.OnText, wrap(text))
	b.Handle(tele.OnEdited, wrap(text))

	b.Handle(tele.OnCallback, wrap(func(c tele.Context) error {
		cb := c.Callback()
		if cb == nil {
			return nil
		}
		ctx := buildContext(c)

		// Clear the sender's pending-action spinner regardless of how the
		// press is handled.
		if err := c.Respond(); err != nil {
			logger.Debug(ctx, "tg", "callback.ack",
				slog.String("err", logger.SanitizeLimit(err.Error(), 128)),
			)
		}

		if cb.Message == nil || c.Chat() == nil {
			return nil
		}
		token := strings.TrimSpace(strings.TrimPrefix(cb.Data, "\f"))
		logDropped(ctx, disp.HandleAction(ctx, c.Chat().ID, int64(cb.Message.ID), token))
		return nil
	}))
}

// logDropped records handler errors that are deliberately not returned to
// the transport, so Telegram never triggers a redelivery storm.
func logDropped(ctx context.Context, err error) {
	if err == nil {
		return
	}
	logger.Error(ctx, "tg", "handler.dropped",
		slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
	)
}
