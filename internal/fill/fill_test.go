package fill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/lorule/randomizer/internal/check"
	"github.com/lorule/randomizer/internal/item"
	"github.com/lorule/randomizer/internal/regions"
	"github.com/lorule/randomizer/internal/settings"
	"github.com/lorule/randomizer/internal/world"
)

func mustGraph(t require.TestingT) *world.Graph {
	g, err := regions.Build()
	require.NoError(t, err)
	return g
}

func canonicalCounts(items []item.Item) map[item.Item]int {
	counts := make(map[item.Item]int, len(items))
	for _, it := range items {
		counts[item.Canonical(it)]++
	}
	return counts
}

func expectedUniverse(s *settings.Settings) map[item.Item]int {
	pool := item.ProgressionPool(s)
	universe := pool.Flatten()
	universe = append(universe, item.TrashPool(s)...)
	if !s.MaiamaiMadness {
		// Outside maiamai madness the maiamai are bound by pre-placement
		// rather than drawn from the progression pool.
		universe = append(universe, item.Maiamai...)
	}
	return canonicalCounts(universe)
}

func TestRunPlacesExactlyOneItemPerDeclaredCheck(t *testing.T) {
	graph := mustGraph(t)
	s := settings.Default()

	results, err := Run(graph, &s, 1, nil)
	require.NoError(t, err)

	assert.Len(t, results, len(graph.AllChecks()))

	seen := make(map[string]bool, len(results))
	for _, r := range results {
		assert.False(t, seen[r.Check], "check %q placed twice", r.Check)
		seen[r.Check] = true
	}
	for _, c := range graph.AllChecks() {
		assert.True(t, seen[c.Name], "check %q never placed", c.Name)
	}
}

func TestRunConservesTheCanonicalItemMultiset(t *testing.T) {
	graph := mustGraph(t)
	s := settings.Default()

	results, err := Run(graph, &s, 2, nil)
	require.NoError(t, err)

	var placed []item.Item
	for _, r := range results {
		placed = append(placed, r.Item)
	}
	assert.Equal(t, expectedUniverse(&s), canonicalCounts(placed))
}

func TestRunIsDeterministicForTheSameSeedAndSettings(t *testing.T) {
	graph := mustGraph(t)
	s := settings.Default()

	a, err := Run(graph, &s, 777, nil)
	require.NoError(t, err)
	b, err := Run(graph, &s, 777, nil)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRunDiffersAcrossSeeds(t *testing.T) {
	graph := mustGraph(t)
	s := settings.Default()

	a, err := Run(graph, &s, 1, nil)
	require.NoError(t, err)
	b, err := Run(graph, &s, 2, nil)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestRunHonoursStaticAndVanillaPrizePlacement(t *testing.T) {
	graph := mustGraph(t)
	s := settings.Default()

	results, err := Run(graph, &s, 3, nil)
	require.NoError(t, err)

	byCheck := make(map[string]item.Item, len(results))
	for _, r := range results {
		byCheck[r.Check] = r.Item
	}

	assert.Equal(t, item.LetterInABottle, byCheck["Shore"])
	assert.Equal(t, item.PendantOfCourage, byCheck["Eastern Palace Prize"])
	assert.Equal(t, item.SageImpa, byCheck["Turtle Rock Prize"])
}

func TestRunRejectsAnUnknownExclusionName(t *testing.T) {
	graph := mustGraph(t)
	s := settings.Default()
	s.Exclusions = []string{"Atlantis"}

	_, err := Run(graph, &s, 1, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Atlantis")
}

func TestRunEmitsLocationInfoForEveryResult(t *testing.T) {
	graph := mustGraph(t)
	s := settings.Default()

	results, err := Run(graph, &s, 1, nil)
	require.NoError(t, err)

	for _, r := range results {
		require.NotNil(t, r.Location, "check %q emitted with no location info", r.Check)
		assert.NotEmpty(t, r.Location.Scene)
	}
}

// TestRunSatisfiesSpecPropertiesAcrossSettings is the property-based sweep:
// for a broad random sample of settings and seeds, every completed run must
// stay total and conserve its canonical item multiset. Settings flags and
// the seed are drawn at random by rapid rather than enumerated.
func TestRunSatisfiesSpecPropertiesAcrossSettings(t *testing.T) {
	graph := mustGraph(t)

	rapid.Check(t, func(rt *rapid.T) {
		s := settings.Default()
		s.SwordlessMode = rapid.Bool().Draw(rt, "swordless")
		s.SuperItems = rapid.Bool().Draw(rt, "superItems")
		s.RandomizeDungeonPrizes = rapid.Bool().Draw(rt, "randomizePrizes")
		s.AssuredWeapon = rapid.Bool().Draw(rt, "assuredWeapon")
		s.BellInShop = rapid.Bool().Draw(rt, "bellInShop")
		s.BowOfLightInCastle = rapid.Bool().Draw(rt, "bowInCastle")
		s.MinigamesExcluded = rapid.Bool().Draw(rt, "minigamesExcluded")
		seed := rapid.Uint64().Draw(rt, "seed")

		results, err := Run(graph, &s, seed, nil)
		if err != nil {
			rt.Fatalf("run failed: %v", err)
		}
		if len(results) != len(graph.AllChecks()) {
			rt.Fatalf("got %d placements, want %d", len(results), len(graph.AllChecks()))
		}

		var placed []item.Item
		for _, r := range results {
			placed = append(placed, r.Item)
		}
		got, want := canonicalCounts(placed), expectedUniverse(&s)
		if len(got) != len(want) {
			rt.Fatalf("placed %d distinct canonical items, want %d", len(got), len(want))
		}
		for it, wantCount := range want {
			if got[it] != wantCount {
				rt.Fatalf("item %s placed %d times, want %d", it, got[it], wantCount)
			}
		}
	})
}

func TestFilterCandidatesConfinesDungeonPrizesToPrizeChecks(t *testing.T) {
	cm := NewCheckMap([]check.Check{{Name: "Eastern Palace Prize"}, {Name: "Hyrule Field Chest 001"}})
	reachable := []check.Check{{Name: "Eastern Palace Prize"}, {Name: "Hyrule Field Chest 001"}}

	out := filterCandidates(reachable, cm, item.PendantOfPower)
	require.Len(t, out, 1)
	assert.Equal(t, "Eastern Palace Prize", out[0].Name)
}

func TestFilterCandidatesConfinesDungeonLocalItemsToTheirTag(t *testing.T) {
	cm := NewCheckMap([]check.Check{{Name: "[EP] Small Key 1"}, {Name: "[HG] Small Key 1"}})
	reachable := []check.Check{{Name: "[EP] Small Key 1"}, {Name: "[HG] Small Key 1"}}

	out := filterCandidates(reachable, cm, item.EasternKeySmall[0])
	require.Len(t, out, 1)
	assert.Equal(t, "[EP] Small Key 1", out[0].Name)
}

func TestFilterCandidatesSkipsAlreadyBoundChecks(t *testing.T) {
	cm := NewCheckMap([]check.Check{{Name: "A"}, {Name: "B"}})
	cm.Bind("A", item.Bow01)
	reachable := []check.Check{{Name: "A"}, {Name: "B"}}

	out := filterCandidates(reachable, cm, item.Hammer01)
	require.Len(t, out, 1)
	assert.Equal(t, "B", out[0].Name)
}
