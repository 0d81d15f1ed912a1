package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministicForASeed(t *testing.T) {
	a := New(12345)
	b := New(12345)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestShufflePreservesMultiset(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 5, 6}
	out := Shuffle(New(1), items)

	assert.ElementsMatch(t, items, out)
	assert.Len(t, out, len(items))
}

func TestShuffleIsDeterministicForASeed(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	a := Shuffle(New(99), items)
	b := Shuffle(New(99), items)
	assert.Equal(t, a, b)
}

func TestRemoveRandomShrinksByExactlyOne(t *testing.T) {
	items := []int{10, 20, 30}
	s := New(7)

	picked, rest := RemoveRandom(s, items)
	assert.Len(t, rest, len(items)-1)
	assert.Contains(t, items, picked)
	assert.NotContains(t, rest, picked)
}

func TestRemoveRandomExhaustsAllElements(t *testing.T) {
	items := []int{1, 2, 3, 4}
	s := New(42)

	var drawn []int
	for len(items) > 0 {
		var picked int
		picked, items = RemoveRandom(s, items)
		drawn = append(drawn, picked)
	}
	assert.ElementsMatch(t, []int{1, 2, 3, 4}, drawn)
}
