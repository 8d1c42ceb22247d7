// Package menu renders the draft summary text and inline button layout.
package menu

import (
	"fmt"

	"taskcup/internal/draft"
	"taskcup/internal/routing"
)

// Button is one inline button carrying its opaque action token.
type Button struct {
	Text  string
	Token string
}

// View is the rendered menu: summary text plus button rows.
// Empty Rows means the message carries no keyboard.
type View struct {
	Text string
	Rows [][]Button
}

// MaxProjectButtons caps configured project keys shown in the menu to
// respect Telegram keyboard limits.
const MaxProjectButtons = 6

// Render maps a draft to its menu view. It is pure: the same draft and
// routing table always produce the same view.
func Render(d draft.Draft, table *routing.Table) View {
	title := d.Title
	if title == "" {
		title = "(none)"
	}

	text := fmt.Sprintf(
		"🧾 Task Draft\n"+
			"• Title: %s\n"+
			"• Project/List: %s\n"+
			"• Priority: %s\n"+
			"• Due: %s\n\n"+
			"Choose what to set:",
		title, d.Project, d.Priority.Label(), d.Due.Label(),
	)

	rows := make([][]Button, 0, 4+MaxProjectButtons+len(draft.Priorities)+len(draft.DueChoices))
	rows = append(rows, []Button{{
		Text:  "✏️ Set/Change Title",
		Token: Action{Kind: ActionAskTitle}.Token(),
	}})

	keys := table.Keys()
	if len(keys) > MaxProjectButtons {
		keys = keys[:MaxProjectButtons]
	}
	for _, key := range keys {
		rows = append(rows, []Button{{
			Text:  "📁 " + key,
			Token: Action{Kind: ActionSetProject, Project: key}.Token(),
		}})
	}
	rows = append(rows, []Button{{
		Text:  "📁 Default list",
		Token: Action{Kind: ActionSetProject, Project: draft.DefaultProject}.Token(),
	}})

	for _, p := range draft.Priorities {
		rows = append(rows, []Button{{
			Text:  "⭐ " + p.Label(),
			Token: Action{Kind: ActionSetPriority, Priority: p}.Token(),
		}})
	}
	for _, due := range draft.DueChoices {
		rows = append(rows, []Button{{
			Text:  "🗓 " + due.Label(),
			Token: Action{Kind: ActionSetDue, Due: due}.Token(),
		}})
	}

	rows = append(rows,
		[]Button{{Text: "✅ Create Task", Token: Action{Kind: ActionConfirm}.Token()}},
		[]Button{{Text: "🗑 Cancel", Token: Action{Kind: ActionCancel}.Token()}},
	)

	return View{Text: text, Rows: rows}
}

// TitlePrompt is shown after the edit-title button removes the keyboard.
const TitlePrompt = "Reply with the task title (just send a message)."

// Cancelled is shown after a draft is discarded.
const Cancelled = "🗑 Cancelled."

// EmptyTitle is shown when submission is attempted without a title.
const EmptyTitle = "❌ Title is empty. Tap “Set/Change Title”."

// Created names the task confirmed by the task API.
func Created(name string) string {
	return fmt.Sprintf("✅ Created in ClickUp: %s", name)
}

// CreateFailed surfaces a submission failure; the draft stays intact.
func CreateFailed(reason string) string {
	return fmt.Sprintf("❌ Failed to create task: %s", reason)
}
