// Package check defines the closed catalog of in-game check locations.
package check

import (
	"fmt"

	"github.com/lorule/randomizer/internal/item"
	"github.com/lorule/randomizer/internal/logic"
)

// LocationInfo is the opaque handle the patcher uses to address a check
// inside the game's archives — the payload behind an @kind(args) entry in
// the region tables this package's Check values are compiled from.
type LocationInfo struct {
	Course string // archive/course the check's data lives in
	Scene  string // scene or indoor file name within the course
	Index  int    // index of the item-spawn object within that file
}

// A Check is a single slot that awards exactly one item. Name is globally
// unique; Quest, if set, is a fixed item the engine must never overwrite
// but whose presence counts toward reachability the moment the check
// itself becomes reachable. Guard gates whether the check can be reached
// given the caller's Progress — it says nothing about whether the check
// has been filled yet; that's check_map's job.
type Check struct {
	Name     string
	Quest    item.Item // zero value "" means no fixed quest item
	Guard    logic.Guard
	Location *LocationInfo // nil for checks the patcher doesn't address directly
}

// HasQuest reports whether the check carries a fixed, pre-assigned item.
func (c Check) HasQuest() bool {
	return c.Quest != ""
}

// Catalog is the full set of checks declared by the world graph, indexed
// by name for O(1) lookup and error reporting.
type Catalog struct {
	byName map[string]Check
}

// NewCatalog builds a Catalog from checks in declaration order, returning
// an error the instant two checks share a name (spec.md §3: "duplicate
// names are a fatal configuration error detected at graph build").
func NewCatalog(checks []Check) (*Catalog, error) {
	byName := make(map[string]Check, len(checks))
	for _, c := range checks {
		if _, dup := byName[c.Name]; dup {
			return nil, fmt.Errorf("check: duplicate check name %q", c.Name)
		}
		byName[c.Name] = c
	}
	return &Catalog{byName: byName}, nil
}

// Get looks up a check by name.
func (c *Catalog) Get(name string) (Check, bool) {
	ch, ok := c.byName[name]
	return ch, ok
}

// Len returns the number of distinct checks in the catalog.
func (c *Catalog) Len() int {
	return len(c.byName)
}
