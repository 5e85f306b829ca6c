package deepaccess

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferKind(t *testing.T) {
	cases := []struct {
		name string
		node any
		want Kind
	}{
		{"Nil", nil, KindUndefined},
		{"Absent", Absent, KindUndefined},
		{"Map", map[string]any{}, KindMapping},
		{"TypedMap", map[int]string{}, KindMapping},
		{"Slice", []any{}, KindSequence},
		{"Array", [2]int{}, KindSequence},
		{"PointerToMap", &map[string]any{}, KindMapping},
		{"String", "hi", KindScalar},
		{"Int", 7, KindScalar},
		{"PlainStruct", struct{ X int }{}, KindScalar},
		{"ObjectBeforeMapping", registry{}, KindMethod},
		{"Object", &account{}, KindMethod},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inferKind(reflect.ValueOf(tc.node)))
		})
	}
}

func TestCoerceMapKey(t *testing.T) {
	stringKey := reflect.TypeOf("")
	intKey := reflect.TypeOf(0)

	t.Run("Direct", func(t *testing.T) {
		k, err := coerceMapKey("a", stringKey)
		require.NoError(t, err)
		assert.Equal(t, "a", k.Interface())
	})

	t.Run("StringifyScalar", func(t *testing.T) {
		k, err := coerceMapKey(5, stringKey)
		require.NoError(t, err)
		assert.Equal(t, "5", k.Interface())

		k, err = coerceMapKey(true, stringKey)
		require.NoError(t, err)
		assert.Equal(t, "true", k.Interface())
	})

	t.Run("ParseNumericString", func(t *testing.T) {
		k, err := coerceMapKey("12", intKey)
		require.NoError(t, err)
		assert.Equal(t, 12, k.Interface())
	})

	t.Run("Overflow", func(t *testing.T) {
		_, err := coerceMapKey(300, reflect.TypeOf(int8(0)))
		assert.ErrorIs(t, err, ErrTraversal)
	})

	t.Run("Incompatible", func(t *testing.T) {
		_, err := coerceMapKey("nope", intKey)
		assert.ErrorIs(t, err, ErrTraversal)

		_, err = coerceMapKey(nil, stringKey)
		assert.ErrorIs(t, err, ErrTraversal)
	})
}

func TestCoerceIndex(t *testing.T) {
	i, err := coerceIndex(3)
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	i, err = coerceIndex("7")
	require.NoError(t, err)
	assert.Equal(t, 7, i)

	i, err = coerceIndex(uint8(2))
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	_, err = coerceIndex("x")
	assert.ErrorIs(t, err, ErrTraversal)

	_, err = coerceIndex(3.5)
	assert.ErrorIs(t, err, ErrTraversal)
}

func TestCoerceAssign(t *testing.T) {
	t.Run("NilIntoInterface", func(t *testing.T) {
		v, err := coerceAssign(nil, anyType)
		require.NoError(t, err)
		assert.True(t, v.IsZero())
	})

	t.Run("NilIntoValueType", func(t *testing.T) {
		_, err := coerceAssign(nil, reflect.TypeOf(0))
		assert.ErrorIs(t, err, ErrTraversal)
	})

	t.Run("NumericConversion", func(t *testing.T) {
		v, err := coerceAssign(1, reflect.TypeOf(float64(0)))
		require.NoError(t, err)
		assert.Equal(t, float64(1), v.Interface())
	})

	t.Run("NoRuneConversion", func(t *testing.T) {
		// int -> string conversion would produce a rune string; reject it.
		_, err := coerceAssign(65, reflect.TypeOf(""))
		assert.ErrorIs(t, err, ErrTraversal)
	})
}

func TestGrowSequence(t *testing.T) {
	t.Run("FillsAbsent", func(t *testing.T) {
		s := growSequence(reflect.ValueOf([]any{"a"}), 4)
		require.Equal(t, 4, s.Len())
		assert.True(t, isAbsentValue(s.Index(1)))
		assert.True(t, isAbsentValue(s.Index(3)))
		assert.Equal(t, "a", s.Index(0).Interface())
	})

	t.Run("TypedSliceFillsZero", func(t *testing.T) {
		s := growSequence(reflect.ValueOf([]int{1}), 3)
		require.Equal(t, 3, s.Len())
		assert.Equal(t, 0, s.Index(1).Interface())
	})
}
