package deepaccess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverrideValidation(t *testing.T) {
	root := map[string]any{"a": 1}

	t.Run("NoDiscriminant", func(t *testing.T) {
		_, err := Exists(root, Override{})
		assert.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("MultipleDiscriminants", func(t *testing.T) {
		two := 2
		_, err := Exists(root, Override{MappingKey: "a", SequenceIndex: &two})
		assert.ErrorIs(t, err, ErrConfiguration)

		_, err = Exists(root, Override{MethodName: "A", LvalueMethodName: "B"})
		assert.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("SingleDiscriminant", func(t *testing.T) {
		ok, err := Exists(root, Override{MappingKey: "a"})
		require.NoError(t, err)
		assert.True(t, ok)

		zero := 0
		ok, err = Exists([]any{"x"}, Override{SequenceIndex: &zero})
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = Exists(&account{}, Override{MethodName: "ID"})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("PointerDescriptor", func(t *testing.T) {
		ok, err := Exists(root, &Override{MappingKey: "a"})
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestSegmentConstructors(t *testing.T) {
	assert.Equal(t, KindInferred, Key("x").Kind())
	assert.Equal(t, KindMapping, MapKey("x").Kind())
	assert.Equal(t, KindSequence, Index(3).Kind())
	assert.Equal(t, KindMethod, Method("M").Kind())
	assert.Equal(t, KindLvalueMethod, LvalueMethod("M").Kind())

	assert.Equal(t, "x", Key("x").Value())
	assert.Equal(t, 3, Index(3).Value())
}

func TestNormalizePath(t *testing.T) {
	segs, err := normalizePath([]any{"a", Index(2), Override{MappingKey: "b"}, 7})
	require.NoError(t, err)
	assert.Equal(t, []Segment{Key("a"), Index(2), MapKey("b"), Key(7)}, segs)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "mapping", KindMapping.String())
	assert.Equal(t, "sequence", KindSequence.String())
	assert.Equal(t, "method", KindMethod.String())
	assert.Equal(t, "lvalue-method", KindLvalueMethod.String())
	assert.Equal(t, "undefined", KindUndefined.String())
	assert.Equal(t, "scalar", KindScalar.String())
}
