package item

import "github.com/lorule/randomizer/internal/settings"

// CategorizedPool is the progression pool partitioned the way spec.md
// §4.8 requires: prizes, big keys, small keys, and compasses each confined
// to their own category, plus everything else. The fill engine shuffles
// each slice independently and concatenates them in this field order.
type CategorizedPool struct {
	Prizes   []Item
	BigKeys  []Item
	SmallKeys []Item
	Compasses []Item
	Rest     []Item
}

// Flatten concatenates the categories in field order (prizes, big keys,
// small keys, compasses, rest) without shuffling them itself; the order
// within each category is whatever the slices already hold.
func (p CategorizedPool) Flatten() []Item {
	out := make([]Item, 0, len(p.Prizes)+len(p.BigKeys)+len(p.SmallKeys)+len(p.Compasses)+len(p.Rest))
	out = append(out, p.Prizes...)
	out = append(out, p.BigKeys...)
	out = append(out, p.SmallKeys...)
	out = append(out, p.Compasses...)
	out = append(out, p.Rest...)
	return out
}

var bigKeys = []Item{
	EasternKeyBig, GalesKeyBig, HeraKeyBig, DarkKeyBig, SwampKeyBig,
	SkullKeyBig, ThievesKeyBig, IceKeyBig, DesertKeyBig, TurtleKeyBig,
}

var prizes = []Item{
	PendantOfCourage, PendantOfWisdom, PendantOfPower,
	SageGulley, SageOren, SageSeres, SageOsfala, SageImpa, SageIrene, SageRosso,
}

var compasses = []Item{
	EasternCompass, GalesCompass, HeraCompass, DarkCompass, SwampCompass,
	SkullCompass, ThievesCompass, IceCompass, DesertCompass, TurtleCompass,
	LoruleCastleCompass,
}

func smallKeys() []Item {
	out := []Item{HyruleSanctuaryKey, LoruleSanctuaryKey}
	out = append(out, EasternKeySmall...)
	out = append(out, GalesKeySmall...)
	out = append(out, HeraKeySmall...)
	out = append(out, DarkKeySmall...)
	out = append(out, SwampKeySmall...)
	out = append(out, SkullKeySmall...)
	out = append(out, ThievesKeySmall)
	out = append(out, IceKeySmall...)
	out = append(out, DesertKeySmall...)
	out = append(out, TurtleKeySmall...)
	out = append(out, LoruleCastleKeySmall...)
	return out
}

func baseProgression() []Item {
	out := []Item{
		Bow01, Boomerang01, Hookshot01, Bombs01, FireRod01, IceRod01, Hammer01,
		SandRod01, TornadoRod01, RaviosBracelet01, RaviosBracelet02, Bell,
		StaminaScroll, BowOfLight, PegasusBoots, Flippers, HylianShield,
		PremiumMilk, SmoothGem, LetterInABottle, Lamp01, Net01, Pouch,
		Bottle01, Bottle02, Bottle03, Bottle04, Bottle05,
		Glove01, Glove02,
		Mail01, Mail02,
		OreYellow, OreGreen, OreBlue, OreRed,
	}
	out = append(out, RupeePurple...)
	out = append(out, RupeeSilver...)
	out = append(out, RupeeGold...)
	return out
}

// ProgressionPool returns the progression items a run should place,
// partitioned by category per spec.md §4.8, with Settings-conditional
// membership applied (swords, super-item upgrades, maiamai).
func ProgressionPool(s *settings.Settings) CategorizedPool {
	rest := baseProgression()
	if s.MaiamaiMadness {
		// Non-madness maiamai never enter this pool at all: they're bound
		// directly to the 100 maiamai checks during pre-placement (spec.md
		// §4.7), so routing them through here first and pulling them back
		// out would be a wasted round trip.
		rest = append(rest, Maiamai...)
	}

	if !s.SwordlessMode {
		rest = append(rest, Sword01, Sword02, Sword03, Sword04)
	}
	if s.SuperItems {
		rest = append(rest, Lamp02, Net02)
	}

	return CategorizedPool{
		Prizes:    append([]Item{}, prizes...),
		BigKeys:   append([]Item{}, bigKeys...),
		SmallKeys: smallKeys(),
		Compasses: append([]Item{}, compasses...),
		Rest:      rest,
	}
}

// TrashPool returns the filler items a run should place, in the fixed
// declaration order of spec.md §4.1. The fill engine shuffles this slice
// once before any placement draws are made (see internal/fill).
func TrashPool(s *settings.Settings) []Item {
	out := []Item{HintGlasses}
	out = append(out, repeat(RupeeGreen, 2)...)
	out = append(out, repeat(RupeeBlue, 8)...)
	out = append(out, repeat(RupeeRed, 19)...)
	out = append(out, repeat(MonsterTail, 4)...)
	out = append(out, repeat(MonsterHorn, 3)...)
	out = append(out, repeat(MonsterGuts, 11)...)
	out = append(out, HeartPieces...)
	out = append(out, HeartContainers...)

	if s.Mode == settings.GlitchHell {
		out = append(out, MonsterHorn)
	} else {
		out = append(out, BeeBadge)
	}

	if s.SwordlessMode {
		out = append(out, Empty, Empty, Empty, Empty)
	}
	if !s.SuperItems {
		out = append(out, MonsterTail, MonsterTail)
	}

	return out
}

func repeat(it Item, n int) []Item {
	out := make([]Item, n)
	for i := range out {
		out[i] = it
	}
	return out
}
