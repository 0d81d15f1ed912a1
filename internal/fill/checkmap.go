package fill

import (
	"fmt"

	"github.com/lorule/randomizer/internal/check"
	"github.com/lorule/randomizer/internal/item"
)

// CheckMap is the central mutable state of placement: a mapping from
// every check declared in the world graph to either an empty slot or an
// item bound exactly once (spec.md §3). It implements reach.Bindings so
// the search passes can read it without importing this package.
type CheckMap struct {
	order []string // declaration order, from the world graph
	slots map[string]item.Item
}

// NewCheckMap pre-fills a slot for every check the graph declares.
// Checks carrying a fixed quest item are bound immediately; everything
// else starts empty. Duplicate check names are already rejected by
// check.NewCatalog before this ever runs.
func NewCheckMap(checks []check.Check) *CheckMap {
	m := &CheckMap{
		order: make([]string, 0, len(checks)),
		slots: make(map[string]item.Item, len(checks)),
	}
	for _, c := range checks {
		m.order = append(m.order, c.Name)
		if c.HasQuest() {
			m.slots[c.Name] = c.Quest
		}
	}
	return m
}

// Get returns the item bound at name, if any.
func (m *CheckMap) Get(name string) (item.Item, bool) {
	it, ok := m.slots[name]
	return it, ok && it != ""
}

// IsEmpty reports whether name's slot has not yet been bound.
func (m *CheckMap) IsEmpty(name string) bool {
	_, bound := m.Get(name)
	return !bound
}

// Bind assigns it to name's slot. Binding an already-bound slot is a
// programming error — the monotone invariant of spec.md §3 — and panics
// rather than silently overwriting a placed item.
func (m *CheckMap) Bind(name string, it item.Item) {
	if existing, bound := m.Get(name); bound {
		panic(fmt.Sprintf("fill: check %q already bound to %s, refusing to overwrite with %s", name, existing, it))
	}
	m.slots[name] = it
}

// EmptyNames returns every still-empty check name, in graph declaration
// order.
func (m *CheckMap) EmptyNames() []string {
	var out []string
	for _, name := range m.order {
		if m.IsEmpty(name) {
			out = append(out, name)
		}
	}
	return out
}
