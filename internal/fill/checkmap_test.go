package fill

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lorule/randomizer/internal/check"
	"github.com/lorule/randomizer/internal/item"
)

func sampleChecks() []check.Check {
	return []check.Check{
		{Name: "A"},
		{Name: "B", Quest: item.HyruleSanctuaryKey},
		{Name: "C"},
	}
}

func TestNewCheckMapBindsQuestItemsImmediately(t *testing.T) {
	cm := NewCheckMap(sampleChecks())

	it, ok := cm.Get("B")
	assert.True(t, ok)
	assert.Equal(t, item.HyruleSanctuaryKey, it)

	assert.True(t, cm.IsEmpty("A"))
	assert.False(t, cm.IsEmpty("B"))
}

func TestBindPanicsOnDoubleBind(t *testing.T) {
	cm := NewCheckMap(sampleChecks())
	cm.Bind("A", item.Bow01)

	assert.Panics(t, func() {
		cm.Bind("A", item.Hammer01)
	})
}

func TestEmptyNamesPreservesDeclarationOrder(t *testing.T) {
	cm := NewCheckMap(sampleChecks())
	assert.Equal(t, []string{"A", "C"}, cm.EmptyNames())

	cm.Bind("A", item.Bow01)
	assert.Equal(t, []string{"C"}, cm.EmptyNames())
}

func TestGetReportsAbsentForUnboundSlot(t *testing.T) {
	cm := NewCheckMap(sampleChecks())
	_, ok := cm.Get("A")
	assert.False(t, ok)
}
