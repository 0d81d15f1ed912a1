// Package progress holds the accumulating inventory that guard predicates
// are evaluated against.
package progress

import (
	"strings"

	"github.com/lorule/randomizer/internal/item"
	"github.com/lorule/randomizer/internal/settings"
)

// Progress is a multiset over item tags plus a reference to the run's
// Settings. Because every duplicate of a semantically identical item
// (bottles, keys, rupees) is its own distinct tag, the multiset is
// represented as a plain set of held tags — "do I hold this specific
// copy" is all any guard ever needs to ask.
type Progress struct {
	held     map[item.Item]bool
	settings *settings.Settings
}

// New returns an empty Progress bound to s.
func New(s *settings.Settings) *Progress {
	return &Progress{held: make(map[item.Item]bool), settings: s}
}

// Add records it as held. Adding an already-held item is a no-op.
func (p *Progress) Add(it item.Item) {
	p.held[it] = true
}

// Has reports whether it is held.
func (p *Progress) Has(it item.Item) bool {
	return p.held[it]
}

// HasAny reports whether any of items is held.
func (p *Progress) HasAny(items ...item.Item) bool {
	for _, it := range items {
		if p.held[it] {
			return true
		}
	}
	return false
}

// Settings returns the Settings record this Progress was built against.
func (p *Progress) Settings() *settings.Settings {
	return p.settings
}

// CountPrefix returns how many held tags start with prefix — the
// mechanism guards use to ask "how many silver rupees" or "how many
// pieces of heart" without enumerating every duplicate tag by name.
func (p *Progress) CountPrefix(prefix string) int {
	n := 0
	for it := range p.held {
		if strings.HasPrefix(string(it), prefix) {
			n++
		}
	}
	return n
}

// Difference returns the items held in p but not in other — the "gained"
// set the assumed-search fixed point expands considered items by.
func (p *Progress) Difference(other *Progress) []item.Item {
	var diff []item.Item
	for it := range p.held {
		if !other.held[it] {
			diff = append(diff, it)
		}
	}
	return diff
}

// SwordLevel returns how many sword copies are held (0 if swordless or
// none yet placed).
func (p *Progress) SwordLevel() int {
	n := 0
	for _, sw := range []item.Item{item.Sword01, item.Sword02, item.Sword03, item.Sword04} {
		if p.held[sw] {
			n++
		}
	}
	return n
}

// PortraitCount returns how many sage portraits (dungeon prizes awarded
// to sages, as opposed to pendants) are held — what the Lorule Castle
// and Yuga Ganon requirements gate on.
func (p *Progress) PortraitCount() int {
	n := 0
	for _, sage := range []item.Item{
		item.SageGulley, item.SageOren, item.SageSeres, item.SageOsfala,
		item.SageImpa, item.SageIrene, item.SageRosso,
	} {
		if p.held[sage] {
			n++
		}
	}
	return n
}

// HasMerge reports whether Ravio's Bracelet (either copy) has been
// collected, granting the wall-merge ability guards gate Lorule traversal
// on.
func (p *Progress) HasMerge() bool {
	return p.HasAny(item.RaviosBracelet01, item.RaviosBracelet02)
}

// BottleCount returns how many of the five bottles are held.
func (p *Progress) BottleCount() int {
	return p.CountPrefix("Bottle")
}
