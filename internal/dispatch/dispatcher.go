// Package dispatch drives the draft state machine for inbound chat events.
package dispatch

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"taskcup/internal/clickup"
	"taskcup/internal/draft"
	"taskcup/internal/logger"
	"taskcup/internal/menu"
	"taskcup/internal/routing"
)

// Messenger delivers menu views to the chat. Implementations are
// best-effort: delivery failures are logged by the dispatcher and never
// abort event handling.
type Messenger interface {
	Send(ctx context.Context, chatID int64, text string, rows [][]menu.Button) error
	Edit(ctx context.Context, chatID, messageID int64, text string, rows [][]menu.Button) error
}

// TaskCreator submits a finished draft to the task-tracking API.
type TaskCreator interface {
	CreateTask(ctx context.Context, req clickup.CreateTaskRequest) (clickup.Task, error)
}

// Options wires the dispatcher's collaborators.
type Options struct {
	Store     draft.Store
	Table     *routing.Table
	Tasks     TaskCreator
	Messenger Messenger
	// DuePolicy converts a due choice into a timestamp; nil -> draft.DueAt.
	DuePolicy draft.Policy
	// Now supplies submission time; nil -> time.Now.
	Now func() time.Time
}

// Dispatcher classifies inbound events, mutates the draft store, and drives
// the menu renderer and external clients. One instance serves all chats.
type Dispatcher struct {
	store draft.Store
	table *routing.Table
	tasks TaskCreator
	msg   Messenger

	duePolicy draft.Policy
	now       func() time.Time
}

// New builds a Dispatcher, filling optional collaborators with defaults.
func New(opts Options) *Dispatcher {
	d := &Dispatcher{
		store:     opts.Store,
		table:     opts.Table,
		tasks:     opts.Tasks,
		msg:       opts.Messenger,
		duePolicy: opts.DuePolicy,
		now:       opts.Now,
	}
	if d.duePolicy == nil {
		d.duePolicy = draft.DueAt
	}
	if d.now == nil {
		d.now = time.Now
	}
	return d
}

// HandleStart resets the chat to a fresh draft and sends the menu as a new
// message. It applies regardless of any prior state.
func (d *Dispatcher) HandleStart(ctx context.Context, chatID int64) error {
	return d.handle(ctx, "start", func() error {
		if err := d.store.Put(ctx, chatID, draft.New()); err != nil {
			return err
		}
		d.sendMenu(ctx, chatID)
		return nil
	})
}

// HandleText routes a plain text message. While a title is awaited the text
// becomes the draft title; otherwise it seeds a brand-new draft with both
// title and description set to the text.
func (d *Dispatcher) HandleText(ctx context.Context, chatID int64, text string) error {
	current, exists, err := d.store.Get(ctx, chatID)
	if err != nil {
		return err
	}

	if exists && current.AwaitingTitle {
		return d.handle(ctx, "title_reply", func() error {
			if _, err := d.store.Update(ctx, chatID, func(dr *draft.Draft) {
				dr.Title = text
				dr.AwaitingTitle = false
			}); err != nil {
				return err
			}
			d.sendMenu(ctx, chatID)
			return nil
		})
	}

	return d.handle(ctx, "seed_draft", func() error {
		fresh := draft.New()
		fresh.Title = text
		fresh.Description = text
		if err := d.store.Put(ctx, chatID, fresh); err != nil {
			return err
		}
		d.sendMenu(ctx, chatID)
		return nil
	})
}

// HandleAction routes a decoded button press against the menu message.
// Malformed or unknown tokens are ignored.
func (d *Dispatcher) HandleAction(ctx context.Context, chatID, messageID int64, token string) error {
	action, ok := menu.ParseAction(token)
	if !ok {
		logger.Debug(ctx, "dispatch", "action.unknown",
			slog.Int64("chat_id", chatID),
			slog.String("payload", logger.SanitizeLimit(token, 64)),
		)
		return nil
	}

	switch action.Kind {
	case menu.ActionAskTitle:
		return d.handle(ctx, "ask_title", func() error {
			if _, err := d.store.Update(ctx, chatID, func(dr *draft.Draft) {
				dr.AwaitingTitle = true
			}); err != nil {
				return err
			}
			d.edit(ctx, chatID, messageID, menu.TitlePrompt, nil)
			return nil
		})

	case menu.ActionSetProject:
		return d.setField(ctx, "set_project", chatID, messageID, func(dr *draft.Draft) {
			dr.Project = action.Project
		})

	case menu.ActionSetPriority:
		return d.setField(ctx, "set_priority", chatID, messageID, func(dr *draft.Draft) {
			dr.Priority = action.Priority
		})

	case menu.ActionSetDue:
		return d.setField(ctx, "set_due", chatID, messageID, func(dr *draft.Draft) {
			dr.Due = action.Due
		})

	case menu.ActionConfirm:
		return d.handle(ctx, "confirm_create", func() error {
			return d.submit(ctx, chatID, messageID)
		})

	case menu.ActionCancel:
		return d.handle(ctx, "cancel", func() error {
			if err := d.store.Remove(ctx, chatID); err != nil {
				return err
			}
			d.edit(ctx, chatID, messageID, menu.Cancelled, nil)
			return nil
		})
	}
	return nil
}

// setField applies one field mutation and re-renders the menu in place.
func (d *Dispatcher) setField(ctx context.Context, name string, chatID, messageID int64, fn func(*draft.Draft)) error {
	return d.handle(ctx, name, func() error {
		updated, err := d.store.Update(ctx, chatID, fn)
		if err != nil {
			return err
		}
		view := menu.Render(updated, d.table)
		d.edit(ctx, chatID, messageID, view.Text, view.Rows)
		return nil
	})
}

// submit validates the draft and issues the create-task call. The draft is
// destroyed only on success; any failure keeps it intact for a retry.
func (d *Dispatcher) submit(ctx context.Context, chatID, messageID int64) error {
	current, err := d.store.Update(ctx, chatID, func(*draft.Draft) {})
	if err != nil {
		return err
	}

	title := strings.TrimSpace(current.Title)
	if title == "" {
		d.edit(ctx, chatID, messageID, menu.EmptyTitle, nil)
		return nil
	}

	projectKey := current.Project
	if projectKey == draft.DefaultProject {
		projectKey = ""
	}

	req := clickup.CreateTaskRequest{
		ListID:      d.table.Resolve(projectKey),
		Name:        truncateRunes(title, draft.MaxTitleRunes),
		Description: current.Description,
		Priority:    intPtr(int(current.Priority)),
	}
	if ms, ok := d.duePolicy(current.Due, d.now()); ok {
		req.DueDateMS = &ms
	}

	task, err := d.tasks.CreateTask(ctx, req)
	if err != nil {
		d.edit(ctx, chatID, messageID, menu.CreateFailed(err.Error()), nil)
		return nil
	}

	d.edit(ctx, chatID, messageID, menu.Created(task.Name), nil)
	return d.store.Remove(ctx, chatID)
}

func (d *Dispatcher) sendMenu(ctx context.Context, chatID int64) {
	current, err := d.store.Update(ctx, chatID, func(*draft.Draft) {})
	if err != nil {
		logger.Error(ctx, "dispatch", "menu.load",
			slog.Int64("chat_id", chatID),
			slog.String("err", err.Error()),
		)
		return
	}
	view := menu.Render(current, d.table)
	if err := d.msg.Send(ctx, chatID, view.Text, view.Rows); err != nil {
		logger.Warn(ctx, "dispatch", "menu.send",
			slog.Int64("chat_id", chatID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
	}
}

// edit is best-effort: a failed message edit is logged and dropped so it
// never aborts the rest of the handling.
func (d *Dispatcher) edit(ctx context.Context, chatID, messageID int64, text string, rows [][]menu.Button) {
	if err := d.msg.Edit(ctx, chatID, messageID, text, rows); err != nil {
		logger.Warn(ctx, "dispatch", "menu.edit",
			slog.Int64("chat_id", chatID),
			slog.Int64("message_id", messageID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
	}
}

// handle wraps a transition with a single summary log line.
func (d *Dispatcher) handle(ctx context.Context, name string, fn func() error) error {
	ctx = logger.WithHandler(ctx, name)
	start := time.Now()
	err := fn()
	attrs := []slog.Attr{
		slog.String("status", logger.Status(err)),
		slog.String("handler", name),
		slog.Int64("duration_ms", logger.Took(start).Milliseconds()),
	}
	if err != nil {
		attrs = append(attrs, slog.String("err", logger.SanitizeLimit(err.Error(), 256)))
	}
	logger.Info(ctx, "dispatch", "handler.handled", attrs...)
	return err
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func intPtr(v int) *int { return &v }
