package bot

import (
	"context"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"taskcup/internal/menu"
)

// telebotMessenger delivers dispatcher output through the Telegram Bot API.
type telebotMessenger struct {
	bot *tele.Bot
}

// Send creates a new chat message, optionally with an inline keyboard.
func (m *telebotMessenger) Send(_ context.Context, chatID int64, text string, rows [][]menu.Button) error {
	opts := markupOpts(rows)
	_, err := m.bot.Send(tele.ChatID(chatID), text, opts...)
	return err
}

// Edit rewrites an existing message in place.
func (m *telebotMessenger) Edit(_ context.Context, chatID, messageID int64, text string, rows [][]menu.Button) error {
	msg := tele.StoredMessage{
		MessageID: strconv.FormatInt(messageID, 10),
		ChatID:    chatID,
	}
	opts := markupOpts(rows)
	_, err := m.bot.Edit(msg, text, opts...)
	return err
}

func markupOpts(rows [][]menu.Button) []interface{} {
	markup := inlineMarkup(rows)
	if markup == nil {
		return nil
	}
	return []interface{}{markup}
}

// inlineMarkup converts menu rows into a Telegram inline keyboard. Tokens are
// set as raw callback data so they come back unchanged in callback queries.
func inlineMarkup(rows [][]menu.Button) *tele.ReplyMarkup {
	if len(rows) == 0 {
		return nil
	}
	kb := make([][]tele.InlineButton, len(rows))
	for i, row := range rows {
		r := make([]tele.InlineButton, len(row))
		for j, btn := range row {
			r[j] = tele.InlineButton{Text: btn.Text, Data: btn.Token}
		}
		kb[i] = r
	}
	return &tele.ReplyMarkup{InlineKeyboard: kb}
}
