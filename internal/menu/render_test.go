package menu

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"taskcup/internal/draft"
	"taskcup/internal/routing"
)

func testTable() *routing.Table {
	return routing.NewTable("def", map[string]string{"backend": "1", "ops": "2"})
}

func TestRenderSummaryText(t *testing.T) {
	d := draft.New()
	view := Render(d, testTable())

	for _, want := range []string{
		"Task Draft",
		"Title: (none)",
		"Project/List: default",
		"Priority: Normal",
		"Due: No due date",
		"Choose what to set:",
	} {
		if !strings.Contains(view.Text, want) {
			t.Fatalf("text missing %q:\n%s", want, view.Text)
		}
	}

	d.Title = "Fix login bug"
	d.Project = "ops"
	d.Priority = draft.PriorityHigh
	d.Due = draft.DueTomorrow
	view = Render(d, testTable())
	for _, want := range []string{"Title: Fix login bug", "Project/List: ops", "Priority: High", "Due: Tomorrow"} {
		if !strings.Contains(view.Text, want) {
			t.Fatalf("text missing %q:\n%s", want, view.Text)
		}
	}
}

func TestRenderLayoutOrder(t *testing.T) {
	view := Render(draft.New(), testTable())

	// Title row, 2 project rows + default list, 4 priorities, 4 dues, confirm, cancel.
	wantRows := 1 + 2 + 1 + 4 + 4 + 1 + 1
	if len(view.Rows) != wantRows {
		t.Fatalf("rows = %d, want %d", len(view.Rows), wantRows)
	}

	tokens := make([]string, 0, wantRows)
	for i, row := range view.Rows {
		if len(row) != 1 {
			t.Fatalf("row %d has %d buttons, want 1", i, len(row))
		}
		tokens = append(tokens, row[0].Token)
	}
	want := []string{
		"ask_title",
		"set_project:backend",
		"set_project:ops",
		"set_project:default",
		"set_priority:1",
		"set_priority:2",
		"set_priority:3",
		"set_priority:4",
		"set_due:none",
		"set_due:today",
		"set_due:tomorrow",
		"set_due:thisweek",
		"confirm_create",
		"cancel",
	}
	if !reflect.DeepEqual(tokens, want) {
		t.Fatalf("token order = %v, want %v", tokens, want)
	}

	// Every token must decode back at the boundary.
	for _, token := range tokens {
		if _, ok := ParseAction(token); !ok {
			t.Fatalf("rendered token %q does not parse", token)
		}
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	d := draft.New()
	d.Title = "same"
	table := testTable()
	a := Render(d, table)
	b := Render(d, table)
	if a.Text != b.Text || !reflect.DeepEqual(a.Rows, b.Rows) {
		t.Fatal("render must be deterministic for the same draft and table")
	}
}

func TestRenderCapsProjectButtons(t *testing.T) {
	mapping := make(map[string]string, MaxProjectButtons+3)
	for i := 0; i < MaxProjectButtons+3; i++ {
		mapping[fmt.Sprintf("proj%02d", i)] = fmt.Sprintf("id%d", i)
	}
	view := Render(draft.New(), routing.NewTable("def", mapping))

	projects := 0
	for _, row := range view.Rows {
		if strings.HasPrefix(row[0].Token, "set_project:") && row[0].Token != "set_project:default" {
			projects++
		}
	}
	if projects != MaxProjectButtons {
		t.Fatalf("project buttons = %d, want %d", projects, MaxProjectButtons)
	}
}
