package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorule/randomizer/internal/settings"
)

func TestCategoryPredicatesAreMutuallyExclusive(t *testing.T) {
	s := settings.Default()
	pool := ProgressionPool(&s)
	trash := TrashPool(&s)

	for _, it := range pool.Flatten() {
		assert.True(t, IsProgression(it), "%s should be progression", it)
		assert.False(t, IsTrash(it), "%s should not be trash", it)
	}
	for _, it := range trash {
		assert.True(t, IsTrash(it), "%s should be trash", it)
		assert.False(t, IsProgression(it), "%s should not be progression", it)
	}
}

func TestDungeonPrizesAreExactlyTen(t *testing.T) {
	s := settings.Default()
	pool := ProgressionPool(&s)
	assert.Len(t, pool.Prizes, 10)
	for _, it := range pool.Prizes {
		assert.True(t, IsDungeonPrize(it))
	}
}

func TestDungeonLocalItemsMapToTheirOwnDungeon(t *testing.T) {
	d, ok := IsDungeonLocal(EasternKeySmall[0])
	require.True(t, ok)
	assert.Equal(t, DungeonEastern, d)

	d, ok = IsDungeonLocal(ThievesKeySmall)
	require.True(t, ok)
	assert.Equal(t, DungeonThieves, d)

	_, ok = IsDungeonLocal(Bow01)
	assert.False(t, ok)
}

func TestCanonicalCollapsesDuplicateTagsOnly(t *testing.T) {
	assert.Equal(t, Item("RupeeSilver"), Canonical(RupeeSilver[0]))
	assert.Equal(t, Item("Maiamai"), Canonical(Maiamai[99]))

	// Progressive-upgrade families must stay distinct.
	assert.Equal(t, Sword01, Canonical(Sword01))
	assert.Equal(t, Sword02, Canonical(Sword02))
	assert.Equal(t, RaviosBracelet01, Canonical(RaviosBracelet01))
	assert.Equal(t, Lamp02, Canonical(Lamp02))
}

func TestMaiamaiNeverEntersProgressionPoolUnlessMadness(t *testing.T) {
	normal := settings.Default()
	pool := ProgressionPool(&normal)
	for _, it := range pool.Flatten() {
		assert.NotContains(t, Maiamai, it)
	}

	madness := settings.Default()
	madness.MaiamaiMadness = true
	pool = ProgressionPool(&madness)
	assert.Contains(t, pool.Rest, Maiamai[0])
}

func TestPoolSizeInvariantAcrossSettings(t *testing.T) {
	total := func(s *settings.Settings) int {
		pool := ProgressionPool(s)
		return len(pool.Flatten()) + len(TrashPool(s))
	}

	base := settings.Default()
	baseTotal := total(&base)

	swordless := settings.Default()
	swordless.SwordlessMode = true
	assert.Equal(t, baseTotal, total(&swordless))

	super := settings.Default()
	super.SuperItems = true
	assert.Equal(t, baseTotal, total(&super))
}
