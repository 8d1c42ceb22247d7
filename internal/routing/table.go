// Package routing maps user-facing project keys to ClickUp list ids.
package routing

import (
	"sort"
	"strings"
)

// Table is the static project-key to list-id mapping with a default fallback.
type Table struct {
	defaultID string
	lists     map[string]string
	keys      []string
}

// NewTable builds a routing table. Keys are lower-cased; the iteration order
// exposed by Keys is sorted so menu rendering stays deterministic.
func NewTable(defaultListID string, mapping map[string]string) *Table {
	lists := make(map[string]string, len(mapping))
	keys := make([]string, 0, len(mapping))
	for k, v := range mapping {
		key := strings.ToLower(strings.TrimSpace(k))
		if key == "" || v == "" {
			continue
		}
		if _, exists := lists[key]; !exists {
			keys = append(keys, key)
		}
		lists[key] = v
	}
	sort.Strings(keys)
	return &Table{
		defaultID: defaultListID,
		lists:     lists,
		keys:      keys,
	}
}

// Resolve returns the list id for a project key, falling back to the default
// list for empty, unknown, or explicit default keys. It never fails.
func (t *Table) Resolve(projectKey string) string {
	key := strings.ToLower(strings.TrimSpace(projectKey))
	if key == "" {
		return t.defaultID
	}
	if id, ok := t.lists[key]; ok {
		return id
	}
	return t.defaultID
}

// DefaultListID returns the fallback list id.
func (t *Table) DefaultListID() string {
	return t.defaultID
}

// Keys returns the configured project keys in sorted order.
func (t *Table) Keys() []string {
	return t.keys
}
