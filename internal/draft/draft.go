// Package draft holds the per-conversation task draft model and its stores.
package draft

// Priority mirrors ClickUp priority ranks.
type Priority int

const (
	PriorityUrgent Priority = 1
	PriorityHigh   Priority = 2
	PriorityNormal Priority = 3
	PriorityLow    Priority = 4
)

var priorityLabels = map[Priority]string{
	PriorityUrgent: "Urgent",
	PriorityHigh:   "High",
	PriorityNormal: "Normal",
	PriorityLow:    "Low",
}

// Priorities lists all ranks in menu order.
var Priorities = []Priority{PriorityUrgent, PriorityHigh, PriorityNormal, PriorityLow}

// Label returns the user-facing priority name.
func (p Priority) Label() string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return priorityLabels[PriorityNormal]
}

// Valid reports whether p is one of the four enumerated ranks.
func (p Priority) Valid() bool {
	_, ok := priorityLabels[p]
	return ok
}

// ParsePriority converts a numeric rank into a Priority.
func ParsePriority(rank int) (Priority, bool) {
	p := Priority(rank)
	return p, p.Valid()
}

// Due identifies a coarse due-date choice.
type Due string

const (
	DueNone     Due = "none"
	DueToday    Due = "today"
	DueTomorrow Due = "tomorrow"
	DueThisWeek Due = "thisweek"
)

var dueLabels = map[Due]string{
	DueNone:     "No due date",
	DueToday:    "Today",
	DueTomorrow: "Tomorrow",
	DueThisWeek: "This week",
}

// DueChoices lists all choices in menu order.
var DueChoices = []Due{DueNone, DueToday, DueTomorrow, DueThisWeek}

// Label returns the user-facing due-date name.
func (d Due) Label() string {
	if label, ok := dueLabels[d]; ok {
		return label
	}
	return dueLabels[DueNone]
}

// ParseDue converts a raw token value into a Due choice.
func ParseDue(value string) (Due, bool) {
	d := Due(value)
	_, ok := dueLabels[d]
	return d, ok
}

// DefaultProject is the marker routing to the configured default list.
const DefaultProject = "default"

// MaxTitleRunes bounds the task name sent to ClickUp.
const MaxTitleRunes = 200

// Draft is the in-progress, not-yet-submitted task for one conversation.
type Draft struct {
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Project       string   `json:"project"`
	Priority      Priority `json:"priority"`
	Due           Due      `json:"due"`
	AwaitingTitle bool     `json:"awaiting_title,omitempty"`
}

// New returns a fresh draft with all fields at their defaults.
func New() Draft {
	return Draft{
		Project:  DefaultProject,
		Priority: PriorityNormal,
		Due:      DueNone,
	}
}
