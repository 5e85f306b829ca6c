package deepaccess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	cases := []struct {
		name string
		path string
		want []Segment
	}{
		{"SingleKey", "foo", []Segment{Key("foo")}},
		{"DottedKeys", "foo.bar.baz", []Segment{Key("foo"), Key("bar"), Key("baz")}},
		{"NumericKeyStaysInferred", "foo.2", []Segment{Key("foo"), Key("2")}},
		{"IndexSuffix", "a[2]", []Segment{Key("a"), Index(2)}},
		{"ChainedIndexes", "a[1][2]", []Segment{Key("a"), Index(1), Index(2)}},
		{"LeadingIndex", "[0].x", []Segment{Index(0), Key("x")}},
		{"NegativeIndex", "a[-1]", []Segment{Key("a"), Index(-1)}},
		{"MethodCall", "cfg.Labels()", []Segment{Key("cfg"), Method("Labels")}},
		{"LvalueMethodCall", "Name()=", []Segment{LvalueMethod("Name")}},
		{"EscapedDot", `a\.b.c`, []Segment{Key("a.b"), Key("c")}},
		{"EscapedBracket", `a\[2]`, []Segment{Key("a[2]")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			segs, err := ParsePath(tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, segs)
		})
	}
}

func TestParsePathErrors(t *testing.T) {
	cases := []struct {
		name string
		path string
	}{
		{"Empty", ""},
		{"EmptySegment", "a..b"},
		{"NonIntegerIndex", "a[x]"},
		{"UnterminatedIndex", "a[1"},
		{"IndexAfterMethod", "m()[0]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePath(tc.path)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestParsePathCache(t *testing.T) {
	first, err := ParsePath("cache.hit[1]")
	require.NoError(t, err)
	second, err := ParsePath("cache.hit[1]")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMustParsePath(t *testing.T) {
	assert.Equal(t, []Segment{Key("a"), Index(0)}, MustParsePath("a[0]"))
	assert.Panics(t, func() { MustParsePath("a[") })
}

func TestParsePathAgainstData(t *testing.T) {
	root := map[string]any{
		"users": []any{
			map[string]any{"name": "ada"},
			map[string]any{"name": "brin"},
		},
	}

	segs := MustParsePath("users.1.name")
	v, ok, err := Get(root, pathArgs(segs)...)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "brin", v)

	segs = MustParsePath("users[0].name")
	v, ok, err = Get(root, pathArgs(segs)...)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ada", v)
}
