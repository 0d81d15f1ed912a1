package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTripsAScalarNode(t *testing.T) {
	for _, n := range []*Node{
		String("hello"),
		Integer(-42),
		Float(3.5),
		Boolean(true),
		Null(),
	} {
		data, err := Encode(n)
		require.NoError(t, err)

		got, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, n.Kind, got.Kind)

		switch n.Kind {
		case KindString:
			assert.Equal(t, n.Str, got.Str)
		case KindInteger:
			assert.Equal(t, n.Int, got.Int)
		case KindFloat:
			assert.Equal(t, n.Float, got.Float)
		case KindBoolean:
			assert.Equal(t, n.Bool, got.Bool)
		}
	}
}

func TestEncodeDecodeRoundTripsAMapOfMixedNodes(t *testing.T) {
	root := NewMap()
	root.Set("Shore", String("LetterInABottle"))
	root.Set("count", Integer(7))
	root.Set("ratio", Float(0.25))
	root.Set("flag", Boolean(true))
	root.Set("nothing", Null())
	root.Set("list", Array(String("a"), String("b"), Integer(3)))

	data, err := Encode(root)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, root.Keys(), got.Keys())

	shore, ok := got.Get("Shore")
	require.True(t, ok)
	assert.Equal(t, "LetterInABottle", shore.Str)

	list, ok := got.Get("list")
	require.True(t, ok)
	require.Len(t, list.Arr, 3)
	assert.Equal(t, "a", list.Arr[0].Str)
	assert.Equal(t, int32(3), list.Arr[2].Int)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	data, err := Encode(NewMap())
	require.NoError(t, err)
	data[0] = 'X'

	_, err = Decode(data)
	assert.Error(t, err)
}

func TestDecodeRejectsTruncatedInput(t *testing.T) {
	_, err := Decode([]byte{0, 1, 2})
	assert.Error(t, err)
}

func TestDecodeRejectsUnsupportedVersion(t *testing.T) {
	data, err := Encode(NewMap())
	require.NoError(t, err)
	data[2] = 0xFF
	data[3] = 0xFF

	_, err = Decode(data)
	assert.Error(t, err)
}

func TestStringPoolDeduplicatesRepeatedStrings(t *testing.T) {
	root := NewMap()
	root.Set("a", String("same"))
	root.Set("b", String("same"))

	data, err := Encode(root)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	a, _ := got.Get("a")
	b, _ := got.Get("b")
	assert.Equal(t, "same", a.Str)
	assert.Equal(t, "same", b.Str)
}

func TestSetReplacesAnExistingKeyInPlace(t *testing.T) {
	root := NewMap()
	root.Set("k", Integer(1))
	root.Set("k", Integer(2))

	assert.Len(t, root.Keys(), 1)
	v, ok := root.Get("k")
	require.True(t, ok)
	assert.Equal(t, int32(2), v.Int)
}

func TestSetPanicsOnNonMapNode(t *testing.T) {
	n := String("x")
	assert.Panics(t, func() { n.Set("k", Integer(1)) })
}
