package fill

import (
	"fmt"
	"strings"

	"github.com/lorule/randomizer/internal/item"
	"github.com/lorule/randomizer/internal/rng"
	"github.com/lorule/randomizer/internal/settings"
)

// staticBind is one of the five checks whose item is fixed by the game
// itself rather than by any randomization setting (spec.md §4.7 step 1).
type staticBind struct {
	check string
	item  item.Item
}

var staticBinds = []staticBind{
	{"Shore", item.LetterInABottle},
	{"Cucco Dungeon", item.RupeeSilver[38]},           // RupeeSilver39
	{"[TR] (1F) Under Center", item.RupeeSilver[39]},  // RupeeSilver40
	{"[TR] (B1) Under Center", item.RupeeGold[8]},     // RupeeGold09
	{"[PD] (2F) South Hidden Room", item.RupeeGold[9]}, // RupeeGold10
}

// vanillaPrizeByCheck is the un-randomized dungeon prize assignment, used
// whenever RandomizeDungeonPrizes is off.
var vanillaPrizeByCheck = map[string]item.Item{
	"Eastern Palace Prize":   item.PendantOfCourage,
	"House of Gales Prize":   item.PendantOfWisdom,
	"Tower of Hera Prize":    item.PendantOfPower,
	"Dark Palace Prize":      item.SageGulley,
	"Swamp Palace Prize":     item.SageOren,
	"Skull Woods Prize":      item.SageSeres,
	"Thieves' Hideout Prize": item.SageOsfala,
	"Ice Ruins Prize":        item.SageRosso,
	"Desert Palace Prize":    item.SageIrene,
	"Turtle Rock Prize":      item.SageImpa,
}

// minigameChecks deliberately excludes the two rupee-rush-wall maiamai:
// outside maiamai madness those are confined to a maiamai tag by
// placeMaiamai, so pulling them into the trash economy here as well would
// draw two trash items the pool was never sized to spare. Under maiamai
// madness excludeMinigames adds them itself.
var minigameChecks = []string{
	"Cucco Ranch", "Hyrule Hotfoot", "Rupee Rush (Hyrule)",
	"Rupee Rush (Lorule)", "Octoball Derby", "Treacherous Tower (Intermediate)",
}

// preplacer carries the mutable state pre-placement steps thread through:
// the categorized progression pool (items get pulled out of Rest or
// Prizes as they're statically bound), the shuffled trash pool (items get
// pulled out as exclusions consume them), and the check map they're both
// bound into.
type preplacer struct {
	cm    *CheckMap
	pool  *item.CategorizedPool
	trash []item.Item
	s     *settings.Settings
	rng   *rng.Source
	log   logger
}

// logger is the minimal logging surface pre-placement and the fill loop
// need; satisfied by *logrus.Entry.
type logger interface {
	Warnf(format string, args ...interface{})
	Infof(format string, args ...interface{})
}

// run executes spec.md §4.7 in its documented order: static
// quest items, vanilla dungeon prizes, bow of light in the castle,
// assured starting weapon, shop extras, minigame exclusion, non-madness
// maiamai, then user exclusions last.
func (p *preplacer) run() error {
	if err := p.placeStatics(); err != nil {
		return err
	}
	if err := p.placeVanillaPrizes(); err != nil {
		return err
	}
	if err := p.placeBowOfLight(); err != nil {
		return err
	}
	if err := p.placeAssuredWeapon(); err != nil {
		return err
	}
	if err := p.placeShopExtras(); err != nil {
		return err
	}
	if err := p.excludeMinigames(); err != nil {
		return err
	}
	if err := p.placeMaiamai(); err != nil {
		return err
	}
	if err := p.excludeUserChecks(); err != nil {
		return err
	}
	return nil
}

func (p *preplacer) placeStatics() error {
	for _, sb := range staticBinds {
		if err := removeOne(&p.pool.Rest, sb.item); err != nil {
			return fmt.Errorf("static placement %s: %w", sb.check, err)
		}
		p.cm.Bind(sb.check, sb.item)
	}
	return nil
}

func (p *preplacer) placeVanillaPrizes() error {
	if p.s.RandomizeDungeonPrizes {
		return nil
	}
	for checkName, it := range vanillaPrizeByCheck {
		if err := removeOne(&p.pool.Prizes, it); err != nil {
			return fmt.Errorf("vanilla prize %s: %w", checkName, err)
		}
		p.cm.Bind(checkName, it)
	}
	return nil
}

// placeBowOfLight honors BowOfLightInCastle by confining the bow to the
// "Zelda" check or a currently-empty Lorule Castle check; otherwise the
// bow stays in the progression pool and is placed like any other item.
func (p *preplacer) placeBowOfLight() error {
	if !p.s.BowOfLightInCastle {
		return nil
	}
	var candidates []string
	if p.cm.IsEmpty("Zelda") {
		candidates = append(candidates, "Zelda")
	}
	for _, name := range p.cm.EmptyNames() {
		if strings.HasPrefix(name, string(item.DungeonLoruleCastle)) {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return fmt.Errorf("bow of light in castle: no empty castle check available")
	}
	if err := removeOne(&p.pool.Rest, item.BowOfLight); err != nil {
		return fmt.Errorf("bow of light in castle: %w", err)
	}
	idx := p.rng.Intn(len(candidates))
	p.cm.Bind(candidates[idx], item.BowOfLight)
	return nil
}

// assuredWeaponCandidates builds spec.md §4.7 step 4's candidate set: the
// base weapons, plus all four swords unless the seed is swordless, plus
// the lamp and net unless logic is Normal (where neither is ever required).
func assuredWeaponCandidates(s *settings.Settings) []item.Item {
	candidates := []item.Item{
		item.Bow01, item.Bombs01, item.FireRod01, item.IceRod01, item.Hammer01,
	}
	if !s.SwordlessMode {
		candidates = append(candidates, item.Sword01, item.Sword02, item.Sword03, item.Sword04)
	}
	if s.Mode != settings.Normal {
		candidates = append(candidates, item.Lamp01, item.Net01)
	}
	return candidates
}

// placeAssuredWeapon guarantees one basic weapon sits in an early shop
// slot, so a seed never strands the player with nothing to clear a path.
func (p *preplacer) placeAssuredWeapon() error {
	if !p.s.AssuredWeapon {
		return nil
	}
	var have []item.Item
	for _, candidate := range assuredWeaponCandidates(p.s) {
		if contains(p.pool.Rest, candidate) {
			have = append(have, candidate)
		}
	}
	if len(have) == 0 {
		return fmt.Errorf("assured weapon: no eligible weapon left in pool")
	}
	chosen := have[p.rng.Intn(len(have))]
	if err := removeOne(&p.pool.Rest, chosen); err != nil {
		return fmt.Errorf("assured weapon: %w", err)
	}
	return p.bindShopSlot(chosen)
}

func (p *preplacer) placeShopExtras() error {
	extras := []struct {
		on bool
		it item.Item
	}{
		{p.s.BellInShop, item.Bell},
		{p.s.PouchInShop, item.Pouch},
		{p.s.BootsInShop, item.PegasusBoots},
	}
	for _, e := range extras {
		if !e.on {
			continue
		}
		if err := removeOne(&p.pool.Rest, e.it); err != nil {
			return fmt.Errorf("shop extra %s: %w", e.it, err)
		}
		if err := p.bindShopSlot(e.it); err != nil {
			return err
		}
	}
	return nil
}

// bindShopSlot binds it into a random empty Ravio's Shop check, excluding
// slot 6 the way the original shop table reserves it.
func (p *preplacer) bindShopSlot(it item.Item) error {
	var candidates []string
	for _, name := range p.cm.EmptyNames() {
		if strings.HasPrefix(name, "Ravio's Shop") && !strings.Contains(name, "6") {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return fmt.Errorf("no empty eligible shop slot for %s", it)
	}
	idx := p.rng.Intn(len(candidates))
	p.cm.Bind(candidates[idx], it)
	return nil
}

// excludeMinigames binds a random trash item to every minigame check
// (including the two rupee-rush maiamai under maiamai madness) when
// MinigamesExcluded is set, so the category can never hold a required
// progression item.
func (p *preplacer) excludeMinigames() error {
	if !p.s.MinigamesExcluded {
		return nil
	}
	names := minigameChecks
	if p.s.MaiamaiMadness {
		names = append(append([]string{}, minigameChecks...),
			"[Mai] Hyrule Rupee Rush Wall", "[Mai] Lorule Rupee Rush Wall")
	}
	for _, name := range names {
		if !p.cm.IsEmpty(name) {
			continue
		}
		it, err := p.drawTrash()
		if err != nil {
			return fmt.Errorf("minigame exclusion %s: %w", name, err)
		}
		p.cm.Bind(name, it)
	}
	return nil
}

// placeMaiamai binds the 100 maiamai items to the 100 maiamai checks in
// graph declaration order, skipping the generic assumed-fill pass
// entirely, unless MaiamaiMadness lets them flow through the ordinary
// progression pool instead.
func (p *preplacer) placeMaiamai() error {
	if p.s.MaiamaiMadness {
		return nil
	}
	var maiChecks []string
	for _, name := range p.cm.order {
		if strings.HasPrefix(name, "[Mai]") && p.cm.IsEmpty(name) {
			maiChecks = append(maiChecks, name)
		}
	}
	if len(maiChecks) > len(item.Maiamai) {
		return fmt.Errorf("maiamai placement: %d empty maiamai checks, only %d maiamai tags available", len(maiChecks), len(item.Maiamai))
	}
	for i, name := range maiChecks {
		p.cm.Bind(name, item.Maiamai[i])
	}
	return nil
}

// excludeUserChecks runs last, per spec.md §4.7: any check named in the
// user's exclusion list that's still empty receives a random trash item.
// Every exclusion name must first name a check that actually exists
// (spec.md §7 #1, §8 scenario 6); an unknown name aborts the run with a
// diagnostic instead of being silently ignored, matching filler.rs's
// handle_exclusions.
func (p *preplacer) excludeUserChecks() error {
	known := make(map[string]bool, len(p.cm.order))
	for _, name := range p.cm.order {
		known[name] = true
	}
	for _, name := range p.s.Exclusions {
		if !known[name] {
			return fmt.Errorf("unknown exclusion name %q", name)
		}
	}

	for _, name := range p.cm.EmptyNames() {
		if !p.s.IsExcluded(name) {
			continue
		}
		it, err := p.drawTrash()
		if err != nil {
			return fmt.Errorf("user exclusion %s: %w", name, err)
		}
		p.cm.Bind(name, it)
	}
	return nil
}

func (p *preplacer) drawTrash() (item.Item, error) {
	if len(p.trash) == 0 {
		return "", fmt.Errorf("trash pool exhausted")
	}
	var it item.Item
	it, p.trash = rng.RemoveRandom(p.rng, p.trash)
	return it, nil
}

func removeOne(items *[]item.Item, it item.Item) error {
	for i, cur := range *items {
		if cur == it {
			*items = append((*items)[:i], (*items)[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("item %s not found in pool", it)
}

func contains(items []item.Item, it item.Item) bool {
	for _, cur := range items {
		if cur == it {
			return true
		}
	}
	return false
}
