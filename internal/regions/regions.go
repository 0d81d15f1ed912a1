// Package regions declares the world graph the placement engine runs
// against: locations, their checks, and the guarded paths between them.
// It plays the part of the external collaborator spec.md §9 calls out —
// the region author feeding internal/world.Builder — scaled to a
// representative slice of the full game rather than its every last
// check, but sized so the item catalog's full counts (spec.md §4.1) each
// have exactly as many homes as they need.
package regions

import (
	"fmt"

	"github.com/lorule/randomizer/internal/check"
	"github.com/lorule/randomizer/internal/item"
	"github.com/lorule/randomizer/internal/logic"
	"github.com/lorule/randomizer/internal/prenode"
	"github.com/lorule/randomizer/internal/progress"
	"github.com/lorule/randomizer/internal/world"
)

// Start is the world graph's single entry location.
const Start world.LocationID = "RavioShop"

// builder wraps world.Builder with the bookkeeping regions.Build needs:
// an error sink so a long declarative table can be written as a flat
// sequence of calls without an "if err != nil" after every one, and a
// registry populated on demand as item tags and milestones are first
// referenced.
type builder struct {
	b        *world.Builder
	registry world.Registry
	err      error
	nextAddr int
}

func newBuilder() *builder {
	reg := world.Registry{}
	return &builder{b: world.NewBuilder(Start, reg), registry: reg}
}

func (rb *builder) fail(err error) {
	if rb.err == nil {
		rb.err = err
	}
}

func (rb *builder) loc(id world.LocationID) {
	if rb.err != nil {
		return
	}
	rb.fail(rb.b.Location(id))
}

func (rb *builder) path(from, to world.LocationID, expr *prenode.Prenode) {
	if rb.err != nil {
		return
	}
	rb.fail(rb.b.Path(from, to, expr))
}

// check declares a check, stamping in the location-info the patcher
// addresses it by. Course is the owning location's own ID and Scene is
// the check's own name — this fixture has no finer-grained scene/course
// split than "which location, which check" — and Index is a simple
// per-graph counter, mirroring the course/scene/index addressing
// original_source's region tables spell out as @Kind(Scene N[Index]).
func (rb *builder) check(loc world.LocationID, name string, c check.Check, expr *prenode.Prenode) {
	if rb.err != nil {
		return
	}
	c.Location = &check.LocationInfo{Course: string(loc), Scene: name, Index: rb.nextAddr}
	rb.nextAddr++
	rb.fail(rb.b.Check(loc, name, c, expr))
}

// milestone registers a guard directly under key, for named prerequisites
// with no single backing item tag (wall-merge ability, Lorule Castle's
// portrait requirement).
func (rb *builder) milestone(key string, g logic.Guard) *prenode.Prenode {
	rb.registry[key] = g
	return prenode.Ref(key)
}

// has registers (if not already present) and references the guard for
// holding a single item tag.
func (rb *builder) has(it item.Item) *prenode.Prenode {
	key := string(it)
	if _, ok := rb.registry[key]; !ok {
		rb.registry[key] = logic.Has(it)
	}
	return prenode.Ref(key)
}

func (rb *builder) hasAll(items ...item.Item) *prenode.Prenode {
	key := "all:" + fmt.Sprint(items)
	if _, ok := rb.registry[key]; !ok {
		rb.registry[key] = logic.HasAll(items...)
	}
	return prenode.Ref(key)
}

// Build assembles the full world graph: Ravio's shop, the overworld, ten
// main dungeons, Lorule Castle, and a generic-chest fill covering the
// remainder of the progression and trash pools' total size so spec.md
// §4.1's guarantee (every progression and trash item has exactly one
// home, and every check gets exactly one item) holds for this fixture.
func Build() (*world.Graph, error) {
	rb := newBuilder()

	rb.loc(Start)
	rb.loc("Hyrule")
	rb.loc("Lorule")
	for _, d := range dungeons {
		rb.loc(d.location)
	}
	rb.loc("LoruleCastle")

	buildShop(rb)
	buildHyrule(rb)
	buildLorule(rb)
	buildMaiamai(rb)
	for _, d := range dungeons {
		buildDungeon(rb, d)
	}
	buildLoruleCastle(rb)

	rb.path(Start, "Hyrule", nil)
	rb.path("Hyrule", "Lorule", rb.milestone("merge", func(p *progress.Progress) bool { return p.HasMerge() }))
	rb.path("Lorule", "LoruleCastle", rb.milestone("lc-entry", func(p *progress.Progress) bool {
		return p.PortraitCount() >= p.Settings().LCRequirement
	}))
	for _, d := range dungeons {
		if d.fromLorule {
			rb.path("Lorule", d.location, nil)
		} else {
			rb.path("Hyrule", d.location, nil)
		}
	}

	if rb.err != nil {
		return nil, fmt.Errorf("regions: %w", rb.err)
	}
	return rb.b.Build()
}

// buildShop declares Ravio's six rental-item slots. Slot 6 is excluded
// from the assured-weapon/bell/pouch/boots eligible set by the same
// "name contains 6" rule the original shop table used — here that's the
// fill engine's job, not the graph's, so the slot itself is declared
// exactly like the other five.
func buildShop(rb *builder) {
	for i := 1; i <= 6; i++ {
		name := fmt.Sprintf("Ravio's Shop (%d)", i)
		rb.check(Start, name, check.Check{}, nil)
	}
}

// buildHyrule declares the Hyrule-side overworld: the two named static
// quest-item checks, the three Hyrule-side minigames, the Hyrule
// sanctuary small key, and a run of unguarded chests that soak up the
// remainder of the progression/trash pools.
func buildHyrule(rb *builder) {
	rb.check("Hyrule", "Shore", check.Check{}, nil)
	rb.check("Hyrule", "Cucco Dungeon", check.Check{}, nil)
	rb.check("Hyrule", "Cucco Ranch", check.Check{}, nil)
	rb.check("Hyrule", "Hyrule Hotfoot", check.Check{}, nil)
	rb.check("Hyrule", "Rupee Rush (Hyrule)", check.Check{}, nil)
	rb.check("Hyrule", "[HS] Sanctuary Key Chest", check.Check{}, nil)

	for i := 1; i <= hyruleGenericChests; i++ {
		name := fmt.Sprintf("Hyrule Field Chest %03d", i)
		rb.check("Hyrule", name, check.Check{}, nil)
	}
}

// buildLorule declares the Lorule-side overworld, mirroring buildHyrule.
func buildLorule(rb *builder) {
	rb.check("Lorule", "Rupee Rush (Lorule)", check.Check{}, nil)
	rb.check("Lorule", "Octoball Derby", check.Check{}, nil)
	rb.check("Lorule", "Treacherous Tower (Intermediate)", check.Check{}, nil)
	rb.check("Lorule", "[LS] Sanctuary Key Chest", check.Check{}, nil)

	for i := 1; i <= loruleGenericChests; i++ {
		name := fmt.Sprintf("Lorule Field Chest %03d", i)
		rb.check("Lorule", name, check.Check{}, nil)
	}
}

// buildMaiamai declares all 100 maiamai checks, split evenly between
// Hyrule and Lorule, with the two rupee-rush-wall maiamai named for the
// minigame-exclusion pre-placement step (spec.md §4.7) to reference.
func buildMaiamai(rb *builder) {
	rb.check("Hyrule", "[Mai] Hyrule Rupee Rush Wall", check.Check{}, nil)
	for i := 2; i <= 50; i++ {
		name := fmt.Sprintf("[Mai] Hyrule Spot %03d", i)
		rb.check("Hyrule", name, check.Check{}, nil)
	}

	rb.check("Lorule", "[Mai] Lorule Rupee Rush Wall", check.Check{}, rb.milestone("merge", func(p *progress.Progress) bool { return p.HasMerge() }))
	for i := 2; i <= 50; i++ {
		name := fmt.Sprintf("[Mai] Lorule Spot %03d", i)
		rb.check("Lorule", name, check.Check{}, rb.milestone("merge", func(p *progress.Progress) bool { return p.HasMerge() }))
	}
}

// hyruleGenericChests and loruleGenericChests are sized so that, summed
// with every other check declared anywhere in the graph, the total count
// of non-maiamai checks equals the combined size of the progression
// (minus maiamai) and trash pools at their default settings: 177 + 88 =
// 265 — invariant in total regardless of settings, since every
// settings-conditional swap (swordless's four swords for four Empties,
// super items' two extra rest items for two fewer trash tails) trades
// one pool for the other in lockstep.
const (
	hyruleGenericChests = 100
	loruleGenericChests = 78
)

// dungeonSpec describes one main dungeon's check layout: a chain of
// small keys (each gating the next), a compass gated on holding every
// small key, a big key gated on the compass, and a prize gated on the
// big key — a shallow but genuine reachability chain, not a single
// ungated bag of items.
type dungeonSpec struct {
	location     world.LocationID
	tag          item.Dungeon
	fromLorule   bool
	smallKeys    []item.Item
	compass      item.Item
	bigKey       item.Item
	prizeCheck   string
	extraStatics []struct {
		name string
		it   item.Item
	}
}

var dungeons = []dungeonSpec{
	{
		location: "EasternPalace", tag: item.DungeonEastern, fromLorule: false,
		smallKeys: item.EasternKeySmall, compass: item.EasternCompass, bigKey: item.EasternKeyBig,
		prizeCheck: "Eastern Palace Prize",
	},
	{
		location: "HouseOfGales", tag: item.DungeonGales, fromLorule: false,
		smallKeys: item.GalesKeySmall, compass: item.GalesCompass, bigKey: item.GalesKeyBig,
		prizeCheck: "House of Gales Prize",
	},
	{
		location: "TowerOfHera", tag: item.DungeonHera, fromLorule: false,
		smallKeys: item.HeraKeySmall, compass: item.HeraCompass, bigKey: item.HeraKeyBig,
		prizeCheck: "Tower of Hera Prize",
	},
	{
		location: "DarkPalace", tag: item.DungeonDark, fromLorule: true,
		smallKeys: item.DarkKeySmall, compass: item.DarkCompass, bigKey: item.DarkKeyBig,
		prizeCheck: "Dark Palace Prize",
		extraStatics: []struct {
			name string
			it   item.Item
		}{{"[PD] (2F) South Hidden Room", item.RupeeGold[9]}},
	},
	{
		location: "SwampPalace", tag: item.DungeonSwamp, fromLorule: true,
		smallKeys: item.SwampKeySmall, compass: item.SwampCompass, bigKey: item.SwampKeyBig,
		prizeCheck: "Swamp Palace Prize",
	},
	{
		location: "SkullWoods", tag: item.DungeonSkull, fromLorule: true,
		smallKeys: item.SkullKeySmall, compass: item.SkullCompass, bigKey: item.SkullKeyBig,
		prizeCheck: "Skull Woods Prize",
	},
	{
		location: "ThievesHideout", tag: item.DungeonThieves, fromLorule: false,
		smallKeys: []item.Item{item.ThievesKeySmall}, compass: item.ThievesCompass, bigKey: item.ThievesKeyBig,
		prizeCheck: "Thieves' Hideout Prize",
	},
	{
		location: "IceRuins", tag: item.DungeonIce, fromLorule: true,
		smallKeys: item.IceKeySmall, compass: item.IceCompass, bigKey: item.IceKeyBig,
		prizeCheck: "Ice Ruins Prize",
	},
	{
		location: "DesertPalace", tag: item.DungeonDesert, fromLorule: true,
		smallKeys: item.DesertKeySmall, compass: item.DesertCompass, bigKey: item.DesertKeyBig,
		prizeCheck: "Desert Palace Prize",
	},
	{
		location: "TurtleRock", tag: item.DungeonTurtle, fromLorule: true,
		smallKeys: item.TurtleKeySmall, compass: item.TurtleCompass, bigKey: item.TurtleKeyBig,
		prizeCheck: "Turtle Rock Prize",
		extraStatics: []struct {
			name string
			it   item.Item
		}{
			{"[TR] (1F) Under Center", item.RupeeSilver[39]},
			{"[TR] (B1) Under Center", item.RupeeGold[8]},
		},
	},
}

func buildDungeon(rb *builder, d dungeonSpec) {
	var prevKeys []item.Item
	for i, key := range d.smallKeys {
		name := fmt.Sprintf("%s Small Key %d", d.tag, i+1)
		var expr *prenode.Prenode
		if len(prevKeys) > 0 {
			expr = rb.hasAll(prevKeys...)
		}
		rb.check(d.location, name, check.Check{}, expr)
		prevKeys = append(prevKeys, key)
	}

	compassName := fmt.Sprintf("%s Compass", d.tag)
	rb.check(d.location, compassName, check.Check{}, rb.hasAll(d.smallKeys...))

	bigKeyName := fmt.Sprintf("%s Big Key", d.tag)
	rb.check(d.location, bigKeyName, check.Check{}, rb.has(d.compass))

	rb.check(d.location, d.prizeCheck, check.Check{}, rb.has(d.bigKey))

	for _, extra := range d.extraStatics {
		rb.check(d.location, extra.name, check.Check{}, nil)
	}
}

// buildLoruleCastle declares the final dungeon: five small keys, one
// compass, and the "Zelda" check, which together with the "[LC]" checks
// forms the candidate set of spec.md §4.7's bow-of-light pre-placement
// step. Lorule Castle has no big key or dungeon prize of its own.
func buildLoruleCastle(rb *builder) {
	const loc world.LocationID = "LoruleCastle"
	tag := item.DungeonLoruleCastle

	rb.check(loc, "Zelda", check.Check{}, nil)

	var prevKeys []item.Item
	for i, key := range item.LoruleCastleKeySmall {
		name := fmt.Sprintf("%s Small Key %d", tag, i+1)
		var expr *prenode.Prenode
		if len(prevKeys) > 0 {
			expr = rb.hasAll(prevKeys...)
		}
		rb.check(loc, name, check.Check{}, expr)
		prevKeys = append(prevKeys, key)
	}

	rb.check(loc, fmt.Sprintf("%s Compass", tag), check.Check{}, rb.hasAll(item.LoruleCastleKeySmall...))
}
