// Package world models the world graph: a directed, generally cyclic
// structure of named locations connected by guarded paths, each location
// owning an ordered set of checks. Per spec.md §9, edges store destination
// identifiers rather than node pointers, so the graph is a flat
// map-of-value-type and trivially shareable between reachability passes.
package world

import (
	"fmt"

	"github.com/lorule/randomizer/internal/check"
	"github.com/lorule/randomizer/internal/logic"
	"github.com/lorule/randomizer/internal/prenode"
)

// LocationID names a node in the world graph.
type LocationID string

// Path is a single directed edge, gated by Guard.
type Path struct {
	To    LocationID
	Guard logic.Guard
}

// Node is a location: the checks it owns and the paths leading out of it,
// both in declaration order.
type Node struct {
	ID     LocationID
	Checks []check.Check
	Paths  []Path
}

// Graph is the full, immutable-after-build world graph.
type Graph struct {
	Start LocationID

	nodes map[LocationID]*Node
	order []LocationID // declaration order, for deterministic result emission
}

// Node looks up a location by ID.
func (g *Graph) Node(id LocationID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Locations returns every location ID in declaration order.
func (g *Graph) Locations() []LocationID {
	return g.order
}

// AllChecks returns every check declared anywhere in the graph, walked in
// the graph's declaration order — the order spec.md §4.11 result emission
// must use.
func (g *Graph) AllChecks() []check.Check {
	var out []check.Check
	for _, id := range g.order {
		out = append(out, g.nodes[id].Checks...)
	}
	return out
}

// Registry maps a prenode.Ref name to the Guard it resolves to. Builder
// uses it to compile prenode expressions into logic.Guard values.
type Registry map[string]logic.Guard

// Builder assembles a Graph one location at a time. Locations, their
// checks, and their paths are recorded in the order they're declared;
// that order becomes the graph's traversal and emission order.
type Builder struct {
	graph    *Graph
	registry Registry
}

// NewBuilder starts a graph build against the given prerequisite
// registry (item tags, setting flags, and any named milestones the
// region tables reference via prenode.Ref).
func NewBuilder(start LocationID, registry Registry) *Builder {
	return &Builder{
		graph: &Graph{
			Start: start,
			nodes: make(map[LocationID]*Node),
		},
		registry: registry,
	}
}

// Location declares a location, returning an error if it was already
// declared (a region-table authoring bug, not a user-facing one).
func (b *Builder) Location(id LocationID) error {
	if _, exists := b.graph.nodes[id]; exists {
		return fmt.Errorf("world: location %q declared twice", id)
	}
	n := &Node{ID: id}
	b.graph.nodes[id] = n
	b.graph.order = append(b.graph.order, id)
	return nil
}

// Check attaches a check to a previously declared location. The check's
// Guard field is compiled from expr now; pass nil for an ungated check.
func (b *Builder) Check(loc LocationID, name string, it check.Check, expr *prenode.Prenode) error {
	n, ok := b.graph.nodes[loc]
	if !ok {
		return fmt.Errorf("world: check %q references undeclared location %q", name, loc)
	}
	g, err := b.Compile(expr)
	if err != nil {
		return fmt.Errorf("world: check %q: %w", name, err)
	}
	it.Name = name
	it.Guard = g
	n.Checks = append(n.Checks, it)
	return nil
}

// Path declares a directed, guarded edge from one location to another.
func (b *Builder) Path(from, to LocationID, expr *prenode.Prenode) error {
	fn, ok := b.graph.nodes[from]
	if !ok {
		return fmt.Errorf("world: path references undeclared location %q", from)
	}
	if _, ok := b.graph.nodes[to]; !ok {
		return fmt.Errorf("world: path references undeclared destination %q", to)
	}
	g, err := b.Compile(expr)
	if err != nil {
		return fmt.Errorf("world: path %s -> %s: %w", from, to, err)
	}
	fn.Paths = append(fn.Paths, Path{To: to, Guard: g})
	return nil
}

// Compile resolves a prenode expression into a logic.Guard against the
// builder's registry. A nil expression compiles to an always-open guard.
func (b *Builder) Compile(expr *prenode.Prenode) (logic.Guard, error) {
	if expr == nil {
		return logic.Always(true), nil
	}

	resolve := func(parent interface{}) (logic.Guard, error) {
		switch v := parent.(type) {
		case string:
			g, ok := b.registry[v]
			if !ok {
				return nil, fmt.Errorf("unknown prerequisite %q", v)
			}
			return g, nil
		case *prenode.Prenode:
			return b.Compile(v)
		default:
			return nil, fmt.Errorf("prenode: unsupported parent type %T", parent)
		}
	}

	switch expr.Type {
	case prenode.RefType:
		return resolve(expr.Parents[0])
	case prenode.AndType:
		guards := make([]logic.Guard, 0, len(expr.Parents))
		for _, p := range expr.Parents {
			g, err := resolve(p)
			if err != nil {
				return nil, err
			}
			guards = append(guards, g)
		}
		return logic.And(guards...), nil
	case prenode.OrType:
		guards := make([]logic.Guard, 0, len(expr.Parents))
		for _, p := range expr.Parents {
			g, err := resolve(p)
			if err != nil {
				return nil, err
			}
			guards = append(guards, g)
		}
		return logic.Or(guards...), nil
	default:
		return nil, fmt.Errorf("prenode: unknown type %v", expr.Type)
	}
}

// Build finalizes and returns the Graph, validating that the start
// location was in fact declared.
func (b *Builder) Build() (*Graph, error) {
	if _, ok := b.graph.nodes[b.graph.Start]; !ok {
		return nil, fmt.Errorf("world: start location %q was never declared", b.graph.Start)
	}
	return b.graph, nil
}
