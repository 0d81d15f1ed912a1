// Package reach implements the two graph-search passes the placement
// engine is built on: plain reachability (spec.md §4.4) and the assumed
// search fixed point (spec.md §4.5).
package reach

import (
	"github.com/lorule/randomizer/internal/check"
	"github.com/lorule/randomizer/internal/item"
	"github.com/lorule/randomizer/internal/progress"
	"github.com/lorule/randomizer/internal/settings"
	"github.com/lorule/randomizer/internal/world"
)

// Bindings is the minimal read-only view the search passes need of the
// fill engine's check map: what item, if any, currently occupies a named
// check. It's an interface (rather than a direct dependency on the fill
// package's CheckMap type) so this package never imports the engine that
// calls it.
type Bindings interface {
	Get(name string) (item.Item, bool)
}

// FindReachableChecks runs a plain BFS from graph's start location under
// p, visiting a destination exactly once. A location's checks and a
// location's paths are both considered in declaration order, so two
// identical (graph, progress) pairs always yield the same check order —
// the reproducibility the candidate filter and RNG draws downstream
// depend on. Guard evaluation must not mutate p; this function never
// does.
func FindReachableChecks(g *world.Graph, p *progress.Progress) []check.Check {
	visited := map[world.LocationID]bool{g.Start: true}
	queue := []world.LocationID{g.Start}
	var reachable []check.Check

	for len(queue) > 0 {
		loc := queue[0]
		queue = queue[1:]

		node, ok := g.Node(loc)
		if !ok {
			continue
		}

		for _, c := range node.Checks {
			if c.Guard(p) {
				reachable = append(reachable, c)
			}
		}

		for _, path := range node.Paths {
			if !visited[path.To] && path.Guard(p) {
				visited[path.To] = true
				queue = append(queue, path.To)
			}
		}
	}

	return reachable
}

// AssumedSearch computes the checks reachable assuming every item still
// waiting in itemsToPlace is already held, expanding that assumption with
// whatever is actually bound at newly-reachable checks until no further
// items are gained (spec.md §4.5). Convergence is guaranteed in at most
// len(all graph items)+1 iterations, since considered only ever grows
// over a finite universe.
func AssumedSearch(g *world.Graph, itemsToPlace []item.Item, bindings Bindings, s *settings.Settings) []check.Check {
	considered := progress.New(s)
	for _, it := range itemsToPlace {
		considered.Add(it)
	}
	for _, c := range g.AllChecks() {
		if c.HasQuest() {
			considered.Add(c.Quest)
		}
	}

	var reachable []check.Check
	for {
		reachable = FindReachableChecks(g, considered)

		gainedProgress := progress.New(s)
		for _, c := range reachable {
			if bound, ok := bindings.Get(c.Name); ok {
				gainedProgress.Add(bound)
			}
			if c.HasQuest() {
				gainedProgress.Add(c.Quest)
			}
		}

		gained := gainedProgress.Difference(considered)
		if len(gained) == 0 {
			return reachable
		}
		for _, it := range gained {
			considered.Add(it)
		}
	}
}
