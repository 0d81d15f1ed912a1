package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lorule/randomizer/internal/item"
	"github.com/lorule/randomizer/internal/settings"
)

func TestHasReflectsAdds(t *testing.T) {
	s := settings.Default()
	p := New(&s)

	assert.False(t, p.Has(item.Lamp01))
	p.Add(item.Lamp01)
	assert.True(t, p.Has(item.Lamp01))
}

func TestHasAnyMatchesAnyHeldItem(t *testing.T) {
	s := settings.Default()
	p := New(&s)
	p.Add(item.RaviosBracelet02)

	assert.True(t, p.HasAny(item.RaviosBracelet01, item.RaviosBracelet02))
	assert.False(t, p.HasAny(item.Bow01, item.Hammer01))
}

func TestHasMergeAcceptsEitherBraceletCopy(t *testing.T) {
	s := settings.Default()
	p := New(&s)
	assert.False(t, p.HasMerge())

	p.Add(item.RaviosBracelet01)
	assert.True(t, p.HasMerge())
}

func TestSwordLevelCountsHeldCopies(t *testing.T) {
	s := settings.Default()
	p := New(&s)
	assert.Equal(t, 0, p.SwordLevel())

	p.Add(item.Sword01)
	p.Add(item.Sword02)
	assert.Equal(t, 2, p.SwordLevel())
}

func TestPortraitCountIgnoresPendants(t *testing.T) {
	s := settings.Default()
	p := New(&s)
	p.Add(item.PendantOfCourage)
	assert.Equal(t, 0, p.PortraitCount())

	p.Add(item.SageGulley)
	p.Add(item.SageOren)
	assert.Equal(t, 2, p.PortraitCount())
}

func TestBottleCountUsesPrefixMatch(t *testing.T) {
	s := settings.Default()
	p := New(&s)
	p.Add(item.Bottle01)
	p.Add(item.Bottle03)
	assert.Equal(t, 2, p.BottleCount())
}

func TestDifferenceReturnsOnlyItemsMissingFromOther(t *testing.T) {
	s := settings.Default()
	a := New(&s)
	b := New(&s)

	a.Add(item.Bow01)
	a.Add(item.Hammer01)
	b.Add(item.Bow01)

	diff := a.Difference(b)
	assert.ElementsMatch(t, []item.Item{item.Hammer01}, diff)
}

func TestSettingsReturnsTheBoundRecord(t *testing.T) {
	s := settings.Default()
	s.SwordlessMode = true
	p := New(&s)
	assert.True(t, p.Settings().SwordlessMode)
}
