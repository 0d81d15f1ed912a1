package item

import (
	"strconv"
	"strings"
)

// collapsiblePrefixes lists tag families where every numbered copy is the
// same real game item — five physical bottles, forty silver rupees, a
// hundred maiamai, and so on. Progressive-upgrade families (swords,
// gloves, the lamp/net super copies, Ravio's bracelet) are deliberately
// absent: FillerItem copies there are distinct real items, not duplicate
// placements of one item.
var collapsiblePrefixes = []string{
	"RupeePurple", "RupeeSilver", "RupeeGold", "Maiamai",
	"HeartPiece", "HeartContainer", "Bottle",
	"EasternKeySmall", "GalesKeySmall", "HeraKeySmall", "DarkKeySmall",
	"SwampKeySmall", "SkullKeySmall", "IceKeySmall", "DesertKeySmall",
	"TurtleKeySmall", "LoruleCastleKeySmall",
}

// Canonical collapses a placement tag to the game's own item identity —
// the conversion spec.md §4.11 calls "many placement tags map to the same
// game item". Tags outside collapsiblePrefixes are already 1:1 with a
// game item and pass through unchanged.
func Canonical(it Item) Item {
	s := string(it)
	for _, prefix := range collapsiblePrefixes {
		if !strings.HasPrefix(s, prefix) {
			continue
		}
		suffix := s[len(prefix):]
		if suffix == "" {
			continue
		}
		if _, err := strconv.Atoi(suffix); err == nil {
			return Item(prefix)
		}
	}
	return it
}
