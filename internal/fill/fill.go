// Package fill implements the placement engine: pre-placement, the
// assumed-fill main loop, trash fill, and result emission (spec.md
// §4.6-§4.11). Everything upstream (world graph, reachability, guards,
// the item catalog) is pure and side-effect-free; this package is where
// the single RNG stream is actually drawn from and the check map is
// actually mutated.
package fill

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lorule/randomizer/internal/check"
	"github.com/lorule/randomizer/internal/item"
	"github.com/lorule/randomizer/internal/reach"
	"github.com/lorule/randomizer/internal/rng"
	"github.com/lorule/randomizer/internal/settings"
	"github.com/lorule/randomizer/internal/world"
)

// Result is one check's final, canonicalized placement, in graph
// declaration order (spec.md §4.11). Location is the opaque handle the
// patcher addresses this check by; it's nil only for a check the region
// tables never gave external location-info, which spec.md §4.11 excludes
// from emission entirely.
type Result struct {
	Check    string
	Location *check.LocationInfo
	Item     item.Item
}

// Run drives the full placement pipeline against graph under s, seeded
// deterministically from seed. log may be nil, in which case a
// standalone logrus logger is used.
func Run(graph *world.Graph, s *settings.Settings, seed uint64, log *logrus.Entry) ([]Result, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	log = log.WithFields(logrus.Fields{"seed": seed, "logic_mode": s.Mode.String()})

	allChecks := graph.AllChecks()
	if _, err := check.NewCatalog(allChecks); err != nil {
		return nil, fmt.Errorf("fill: %w", err)
	}

	source := rng.New(seed)

	pool := item.ProgressionPool(s)
	pool.Prizes = rng.Shuffle(source, pool.Prizes)
	pool.BigKeys = rng.Shuffle(source, pool.BigKeys)
	pool.SmallKeys = rng.Shuffle(source, pool.SmallKeys)
	pool.Compasses = rng.Shuffle(source, pool.Compasses)
	pool.Rest = rng.Shuffle(source, pool.Rest)
	trash := rng.Shuffle(source, item.TrashPool(s))

	log.Info("Verifying all locations accessible...")
	if err := verify(graph, &pool, s); err != nil {
		return nil, fmt.Errorf("fill: %w", err)
	}
	log.Infof("verification pass: all %d checks reachable with full progression pool held", len(allChecks))

	cm := NewCheckMap(allChecks)

	pp := &preplacer{cm: cm, pool: &pool, trash: trash, s: s, rng: source, log: log}
	if err := pp.run(); err != nil {
		return nil, fmt.Errorf("fill: pre-placement: %w", err)
	}
	log.Infof("pre-placement complete, %d checks still empty", len(cm.EmptyNames()))

	remaining := pool.Flatten()
	log.Info("Placing Progression Items...")
	if err := assumedFill(graph, cm, remaining, s, source, log); err != nil {
		return nil, fmt.Errorf("fill: assumed fill: %w", err)
	}

	log.Info("Placing Junk Items...")
	if err := fillTrash(cm, pp.trash, source); err != nil {
		return nil, fmt.Errorf("fill: trash fill: %w", err)
	}
	if left := cm.EmptyNames(); len(left) > 0 {
		return nil, fmt.Errorf("fill: %d checks left unplaced after trash fill, starting with %q", len(left), left[0])
	}
	log.Infof("placement complete: %d checks filled", len(cm.order))

	return emit(allChecks, cm), nil
}

// verify is spec.md §4.6: with every item of the progression pool
// assumed held and nothing yet bound, every declared check must be
// reachable. A graph that fails this is a configuration error in the
// region tables, not a condition a particular seed can trigger.
func verify(graph *world.Graph, pool *item.CategorizedPool, s *settings.Settings) error {
	empty := NewCheckMap(graph.AllChecks())
	reachable := reach.AssumedSearch(graph, pool.Flatten(), empty, s)
	total := len(graph.AllChecks())
	if len(reachable) != total {
		return fmt.Errorf("world graph unreachable: %d of %d checks reachable with full pool held", len(reachable), total)
	}
	return nil
}

// assumedFill places every remaining progression item one at a time, in
// its already-shuffled pool order. Placing item at index i assumes every
// item after it (not yet placed) is already held — the standard
// assumed-fill trick that keeps earlier placements from stranding later
// ones — while everything before i is read from cm, since it's already
// bound; item i itself is neither assumed nor bound. Category-restricted items (dungeon prizes, dungeon-local
// keys/compasses) are filtered to their eligible checks before a
// candidate is drawn.
func assumedFill(graph *world.Graph, cm *CheckMap, remaining []item.Item, s *settings.Settings, source *rng.Source, log logger) error {
	for i, it := range remaining {
		assumed := remaining[i+1:]
		reachable := reach.AssumedSearch(graph, assumed, cm, s)
		candidates := filterCandidates(reachable, cm, it)

		if len(candidates) == 0 {
			log.Warnf("no reachable candidate check for %s, falling back to any eligible empty check", it)
			candidates = fallbackCandidates(graph, cm, it)
			if len(candidates) == 0 {
				return fmt.Errorf("no eligible check of any kind for %s", it)
			}
		}

		idx := source.Intn(len(candidates))
		cm.Bind(candidates[idx].Name, it)
	}
	return nil
}

// filterCandidates narrows reachable to the empty checks eligible for
// it: any empty check for ordinary items, checks named "Prize" for
// dungeon prizes, and checks prefixed with the owning dungeon's bracket
// tag for dungeon-local items (spec.md §4.9).
func filterCandidates(reachable []check.Check, cm *CheckMap, it item.Item) []check.Check {
	var out []check.Check
	for _, c := range reachable {
		if !cm.IsEmpty(c.Name) {
			continue
		}
		if item.IsDungeonPrize(it) {
			if !strings.Contains(c.Name, "Prize") {
				continue
			}
		} else if d, local := item.IsDungeonLocal(it); local {
			if !strings.HasPrefix(c.Name, string(d)) {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// fallbackCandidates widens the search to every declared check (ignoring
// reachability) when the reachable set came up empty — a last resort
// that still respects category containment, logged so the anomaly is
// visible rather than silently masked.
func fallbackCandidates(graph *world.Graph, cm *CheckMap, it item.Item) []check.Check {
	return filterCandidates(graph.AllChecks(), cm, it)
}

// fillTrash binds one random remaining trash item to every still-empty
// check, in declaration order (spec.md §4.10).
func fillTrash(cm *CheckMap, trash []item.Item, source *rng.Source) error {
	empties := cm.EmptyNames()
	if len(empties) != len(trash) {
		return fmt.Errorf("empty checks (%d) and trash pool (%d) don't match", len(empties), len(trash))
	}
	remaining := trash
	for _, name := range empties {
		var it item.Item
		it, remaining = rng.RemoveRandom(source, remaining)
		cm.Bind(name, it)
	}
	return nil
}

// emit walks checks in graph declaration order, canonicalizing every
// placement tag to its real game item and carrying along each check's
// location-info for the patcher (spec.md §4.11). A check the region
// tables never gave location-info is skipped entirely, per §4.11's "for
// each check that carries external location-info".
func emit(checks []check.Check, cm *CheckMap) []Result {
	out := make([]Result, 0, len(checks))
	for _, c := range checks {
		if c.Location == nil {
			continue
		}
		it, _ := cm.Get(c.Name)
		out = append(out, Result{Check: c.Name, Location: c.Location, Item: item.Canonical(it)})
	}
	return out
}
