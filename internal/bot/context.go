package bot

import (
	"context"

	tele "gopkg.in/telebot.v4"

	"taskcup/internal/logger"
)

const contextKey = "logger_ctx"

// storeContext attaches reusable context to tele.Context for downstream helpers.
func storeContext(c tele.Context, ctx context.Context) {
	if c == nil || ctx == nil {
		return
	}
	c.Set(contextKey, ctx)
}

func contextFrom(c tele.Context) (context.Context, bool) {
	if c == nil {
		return nil, false
	}
	if ctx, ok := c.Get(contextKey).(context.Context); ok && ctx != nil {
		return ctx, true
	}
	return nil, false
}

// buildContext constructs a context.Context from tele.Context, enriching it
// with rid and update/user/chat metadata for consistent logging.
func buildContext(c tele.Context) context.Context {
	if cached, ok := contextFrom(c); ok {
		return cached
	}

	upd := c.Update()
	user := c.Sender()
	chat := c.Chat()

	var chatID, userID int64
	if chat != nil {
		chatID = chat.ID
	}
	if user != nil {
		userID = user.ID
	}

	rid, _ := c.Get("rid").(string)
	if rid == "" {
		rid = logger.BuildRID(upd.ID, chatID, userID)
	}

	ctx := context.Background()
	ctx = logger.WithRID(ctx, rid)
	ctx = logger.WithUpdateMeta(ctx, upd.ID, userID, chatID)
	storeContext(c, ctx)
	return ctx
}
