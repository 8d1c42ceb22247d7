package menu

import (
	"strconv"
	"strings"

	"taskcup/internal/draft"
)

// ActionKind tags the decoded button action.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionAskTitle
	ActionSetProject
	ActionSetPriority
	ActionSetDue
	ActionConfirm
	ActionCancel
)

const (
	tokenAskTitle    = "ask_title"
	tokenSetProject  = "set_project"
	tokenSetPriority = "set_priority"
	tokenSetDue      = "set_due"
	tokenConfirm     = "confirm_create"
	tokenCancel      = "cancel"
)

// Action is a button action decoded once at the transport boundary.
// Exactly one payload field is meaningful, selected by Kind.
type Action struct {
	Kind     ActionKind
	Project  string
	Priority draft.Priority
	Due      draft.Due
}

// ParseAction decodes an opaque button token. Unknown kinds and malformed
// payloads yield ok=false so the caller can treat the press as a no-op.
func ParseAction(token string) (Action, bool) {
	kind, payload, _ := strings.Cut(strings.TrimSpace(token), ":")
	switch kind {
	case tokenAskTitle:
		return Action{Kind: ActionAskTitle}, true
	case tokenConfirm:
		return Action{Kind: ActionConfirm}, true
	case tokenCancel:
		return Action{Kind: ActionCancel}, true
	case tokenSetProject:
		if payload == "" {
			return Action{}, false
		}
		return Action{Kind: ActionSetProject, Project: payload}, true
	case tokenSetPriority:
		rank, err := strconv.Atoi(payload)
		if err != nil {
			return Action{}, false
		}
		p, ok := draft.ParsePriority(rank)
		if !ok {
			return Action{}, false
		}
		return Action{Kind: ActionSetPriority, Priority: p}, true
	case tokenSetDue:
		d, ok := draft.ParseDue(payload)
		if !ok {
			return Action{}, false
		}
		return Action{Kind: ActionSetDue, Due: d}, true
	}
	return Action{}, false
}

// Token encodes the action back into its opaque button form.
func (a Action) Token() string {
	switch a.Kind {
	case ActionAskTitle:
		return tokenAskTitle
	case ActionConfirm:
		return tokenConfirm
	case ActionCancel:
		return tokenCancel
	case ActionSetProject:
		return tokenSetProject + ":" + a.Project
	case ActionSetPriority:
		return tokenSetPriority + ":" + strconv.Itoa(int(a.Priority))
	case ActionSetDue:
		return tokenSetDue + ":" + string(a.Due)
	}
	return ""
}
